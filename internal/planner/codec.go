package planner

// EncodedCourse 可分享的选课表示，JSON 字段与已持久化的数据保持一致
type EncodedCourse struct {
	CourseID   string   `json:"courseCode"`
	SessionIDs []string `json:"groups"`
}

// DroppedSession 解码时无法解析的课组引用
type DroppedSession struct {
	CourseID  string `json:"course_code"`
	SessionID string `json:"group_code"`
}

// DecodeReport 解码时被丢弃的引用
type DecodeReport struct {
	DroppedCourses  []string         `json:"dropped_courses,omitempty"`
	DroppedSessions []DroppedSession `json:"dropped_groups,omitempty"`
}

// Empty 是否没有任何丢弃
func (r DecodeReport) Empty() bool {
	return len(r.DroppedCourses) == 0 && len(r.DroppedSessions) == 0
}

// Encode 每门至少选了一个课组的课程输出一项，顺序同选中顺序
func Encode(st *State) []EncodedCourse {
	out := make([]EncodedCourse, 0, len(st.order))
	for _, courseID := range st.order {
		sessions := st.entries[courseID]
		if len(sessions) == 0 {
			continue
		}
		ids := make([]string, 0, len(sessions))
		for _, s := range sessions {
			ids = append(ids, s.ID.String())
		}
		out = append(out, EncodedCourse{CourseID: courseID, SessionIDs: ids})
	}
	return out
}

// Decode 按目录还原选课状态。
// 目录中找不到的课程或课组静默跳过并记入报告；不做冲突校验。
func Decode(encoded []EncodedCourse, cat *Catalog, mode Mode) (*State, DecodeReport) {
	return Restore(nil, encoded, cat, mode)
}

// Restore 与 Decode 相同，但先按 order 恢复已选课程（包括尚未选课组的课程），
// 用于保留客户端的课程顺序与配色。
func Restore(order []string, encoded []EncodedCourse, cat *Catalog, mode Mode) (*State, DecodeReport) {
	st := NewState(mode)
	var report DecodeReport
	dropped := make(map[string]bool)

	dropCourse := func(id string) {
		if !dropped[id] {
			dropped[id] = true
			report.DroppedCourses = append(report.DroppedCourses, id)
		}
	}

	for _, courseID := range order {
		if _, ok := cat.Course(courseID); !ok {
			dropCourse(courseID)
			continue
		}
		if !st.IsSelected(courseID) {
			st.place(courseID, nil)
		}
	}

	for _, ec := range encoded {
		course, ok := cat.Course(ec.CourseID)
		if !ok {
			dropCourse(ec.CourseID)
			continue
		}
		sessions := make([]Session, 0, len(ec.SessionIDs))
		for _, raw := range ec.SessionIDs {
			s, found := course.SessionByCode(raw)
			if !found {
				report.DroppedSessions = append(report.DroppedSessions, DroppedSession{CourseID: ec.CourseID, SessionID: raw})
				continue
			}
			sessions = append(sessions, s)
		}
		st.place(ec.CourseID, sessions)
	}
	return st, report
}
