package planner

import (
	"errors"
	"fmt"
)

// Mode 选课模式
type Mode string

const (
	// ModeBundled 讲座与其配对练习作为一个整体选择/移除
	ModeBundled Mode = "bundled"
	// ModeFreeForm 讲座与练习按类型各自独立互斥
	ModeFreeForm Mode = "free_form"
)

var ErrInvalidMode = errors.New("选课模式无效")

// ParseMode 解析模式字符串，空串返回 def
func ParseMode(s string, def Mode) (Mode, error) {
	switch Mode(s) {
	case "":
		return def, nil
	case ModeBundled, ModeFreeForm:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Change 一次点击的计划结果：状态机在冲突检测通过后才应用 Next
type Change struct {
	// Deselect 为 true 时无需冲突检测
	Deselect bool
	// Candidates 需要与其他课程做冲突检测的课组
	Candidates []Session
	// Next 该课程新的已选课组集合
	Next []Session
}

// SelectionPolicy 描述一种模式下的选择/取消/互斥规则
type SelectionPolicy interface {
	Mode() Mode
	Plan(current []Session, course *Course, clicked Session) Change
}

// PolicyFor 按模式选择策略
func PolicyFor(m Mode) SelectionPolicy {
	if m == ModeFreeForm {
		return freeFormPolicy{}
	}
	return bundledPolicy{}
}

// ── 捆绑模式 ──

type bundledPolicy struct{}

func (bundledPolicy) Mode() Mode { return ModeBundled }

func (bundledPolicy) Plan(current []Session, course *Course, clicked Session) Change {
	base := clicked.ID.Base
	inBase := func(s Session) bool { return s.ID.Base == base }

	// 已选中同一基础组的任意课组 → 整组移除
	for _, s := range current {
		if inBase(s) {
			return Change{Deselect: true, Next: filterSessions(current, inBase)}
		}
	}

	bundle := course.BaseGroup(base)
	if len(bundle) == 0 {
		bundle = []Session{clicked}
	}
	// 每门课最多一个活动组合；未识别类型的课组既不替换别人也不被替换
	next := append([]Session(nil), current...)
	for _, s := range bundle {
		if s.Kind.Known() {
			next = filterSessions(current, func(s Session) bool { return s.Kind.Known() })
			break
		}
	}
	return Change{Candidates: bundle, Next: appendUnique(next, bundle...)}
}

// ── 自由模式 ──

type freeFormPolicy struct{}

func (freeFormPolicy) Mode() Mode { return ModeFreeForm }

func (freeFormPolicy) Plan(current []Session, course *Course, clicked Session) Change {
	switch clicked.Kind {
	case KindPractice:
		if containsSession(current, clicked.ID) {
			return Change{Deselect: true, Next: filterSessions(current, func(s Session) bool { return s.ID == clicked.ID })}
		}
		next := filterSessions(current, func(s Session) bool { return s.Kind == KindPractice })
		return Change{Candidates: []Session{clicked}, Next: append(next, clicked)}

	case KindLecture:
		base := clicked.ID.Base
		sameBaseLecture := func(s Session) bool { return s.Kind == KindLecture && s.ID.Base == base }
		for _, s := range current {
			if sameBaseLecture(s) {
				return Change{Deselect: true, Next: filterSessions(current, sameBaseLecture)}
			}
		}
		var lectures []Session
		for _, s := range course.BaseGroup(base) {
			if s.Kind == KindLecture {
				lectures = append(lectures, s)
			}
		}
		if len(lectures) == 0 {
			lectures = []Session{clicked}
		}
		next := filterSessions(current, func(s Session) bool { return s.Kind == KindLecture })
		return Change{Candidates: lectures, Next: appendUnique(next, lectures...)}

	default:
		// 未识别类型：单独切换，不替换任何课组
		if containsSession(current, clicked.ID) {
			return Change{Deselect: true, Next: filterSessions(current, func(s Session) bool { return s.ID == clicked.ID })}
		}
		return Change{Candidates: []Session{clicked}, Next: appendUnique(append([]Session(nil), current...), clicked)}
	}
}
