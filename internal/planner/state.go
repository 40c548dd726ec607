package planner

import "errors"

var ErrCourseRequired = errors.New("切换课组时必须提供所属课程")

// State 学生当前的选课状态。
// 只能通过 SelectCourse / ToggleSession / Clear / SetMode 修改；
// 冲突被拒绝时状态保持不变。
type State struct {
	mode    Mode
	order   []string             // 已选课程编号（插入顺序，用于配色）
	entries map[string][]Session // 课程编号 → 已选课组
}

// NewState 创建空状态
func NewState(mode Mode) *State {
	if mode != ModeFreeForm {
		mode = ModeBundled
	}
	return &State{mode: mode, entries: make(map[string][]Session)}
}

// Mode 当前模式
func (s *State) Mode() Mode { return s.mode }

// SetMode 切换模式。已有选择不做任何调整，只影响之后的 ToggleSession。
func (s *State) SetMode(m Mode) {
	if m == ModeBundled || m == ModeFreeForm {
		s.mode = m
	}
}

// Policy 当前模式对应的策略
func (s *State) Policy() SelectionPolicy { return PolicyFor(s.mode) }

// IsSelected 课程是否已选（可能尚未选任何课组）
func (s *State) IsSelected(courseID string) bool {
	for _, id := range s.order {
		if id == courseID {
			return true
		}
	}
	return false
}

// SelectedCourseIDs 已选课程编号（插入顺序）
func (s *State) SelectedCourseIDs() []string {
	return append([]string(nil), s.order...)
}

// Sessions 某课程已选课组的副本
func (s *State) Sessions(courseID string) []Session {
	return append([]Session(nil), s.entries[courseID]...)
}

// IsSessionSelected 某课组是否已选
func (s *State) IsSessionSelected(courseID string, id SessionID) bool {
	return containsSession(s.entries[courseID], id)
}

// SessionCount 所有课程的已选课组总数
func (s *State) SessionCount() int {
	n := 0
	for _, list := range s.entries {
		n += len(list)
	}
	return n
}

// SelectCourse 切换课程的选中状态，返回切换后是否为选中。
// 取消选中时连同其全部课组一并移除。
func (s *State) SelectCourse(courseID string) bool {
	if s.IsSelected(courseID) {
		s.removeCourse(courseID)
		return false
	}
	s.order = append(s.order, courseID)
	s.entries[courseID] = nil
	return true
}

func (s *State) removeCourse(courseID string) {
	out := s.order[:0:0]
	for _, id := range s.order {
		if id != courseID {
			out = append(out, id)
		}
	}
	s.order = out
	delete(s.entries, courseID)
}

// ToggleResult 一次成功切换的结果
type ToggleResult struct {
	Deselected bool
	Added      []Session
	Removed    []Session
}

// ToggleSession 状态机核心操作：按当前模式的策略选择或取消课组。
// 冲突时返回 *ConflictError（errors.Is(err, ErrTimeConflict)），状态不变。
func (s *State) ToggleSession(course *Course, clicked Session) (ToggleResult, error) {
	if course == nil {
		return ToggleResult{}, ErrCourseRequired
	}

	current := s.entries[course.ID]
	change := s.Policy().Plan(current, course, clicked)

	if !change.Deselect {
		if conflicts := FindConflicts(change.Candidates, course.ID, s); len(conflicts) > 0 {
			return ToggleResult{}, &ConflictError{Conflicts: conflicts}
		}
	}

	result := ToggleResult{Deselected: change.Deselect}
	for _, n := range change.Next {
		if !containsSession(current, n.ID) {
			result.Added = append(result.Added, n)
		}
	}
	for _, c := range current {
		if !containsSession(change.Next, c.ID) {
			result.Removed = append(result.Removed, c)
		}
	}

	if !s.IsSelected(course.ID) {
		s.order = append(s.order, course.ID)
	}
	s.entries[course.ID] = change.Next
	return result, nil
}

// Clear 清空所有选择，保留模式
func (s *State) Clear() {
	s.order = nil
	s.entries = make(map[string][]Session)
}

// Clone 深拷贝
func (s *State) Clone() *State {
	c := &State{
		mode:    s.mode,
		order:   append([]string(nil), s.order...),
		entries: make(map[string][]Session, len(s.entries)),
	}
	for id, list := range s.entries {
		c.entries[id] = append([]Session(nil), list...)
	}
	return c
}

// Equal 结构相等：模式、课程顺序、每门课的课组顺序均相同
func (s *State) Equal(o *State) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.mode != o.mode || len(s.order) != len(o.order) {
		return false
	}
	for i := range s.order {
		if s.order[i] != o.order[i] {
			return false
		}
		a, b := s.entries[s.order[i]], o.entries[o.order[i]]
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if a[j] != b[j] {
				return false
			}
		}
	}
	return true
}

// place 供解码使用：直接写入课组，不做冲突检测
func (s *State) place(courseID string, sessions []Session) {
	if !s.IsSelected(courseID) {
		s.order = append(s.order, courseID)
	}
	s.entries[courseID] = appendUnique(s.entries[courseID], sessions...)
}
