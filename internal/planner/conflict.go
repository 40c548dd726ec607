package planner

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTimeConflict 所选课组与其他课程的已选课组时间重叠
var ErrTimeConflict = errors.New("所选课组与已选课程时间冲突")

// Conflict 一对冲突的课组
type Conflict struct {
	Candidate Session
	CourseID  string
	With      Session
}

// ConflictError 携带冲突明细，errors.Is(err, ErrTimeConflict) 为 true
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("%s 与 %s/%s", c.Candidate.ID, c.CourseID, c.With.ID))
	}
	return fmt.Sprintf("%s: %s", ErrTimeConflict.Error(), strings.Join(parts, ", "))
}

func (e *ConflictError) Unwrap() error { return ErrTimeConflict }

// FindConflicts 找出候选课组与其他课程已选课组之间的全部重叠。
// 同一课程内部的课组互不检查（讲座与其练习允许并存）。
func FindConflicts(candidates []Session, excludeCourseID string, st *State) []Conflict {
	if st == nil || len(candidates) == 0 {
		return nil
	}

	// 按星期分桶，只比较同一天的课组
	byDay := make(map[int][]Session, len(candidates))
	for _, c := range candidates {
		byDay[c.Slot.Day] = append(byDay[c.Slot.Day], c)
	}

	var out []Conflict
	for _, courseID := range st.order {
		if courseID == excludeCourseID {
			continue
		}
		for _, s := range st.entries[courseID] {
			for _, c := range byDay[s.Slot.Day] {
				if Overlaps(c.Slot, s.Slot) {
					out = append(out, Conflict{Candidate: c, CourseID: courseID, With: s})
				}
			}
		}
	}
	return out
}

// HasConflict 纯函数：候选集合是否与其他课程的已选课组重叠
func HasConflict(candidates []Session, excludeCourseID string, st *State) bool {
	return len(FindConflicts(candidates, excludeCourseID, st)) > 0
}
