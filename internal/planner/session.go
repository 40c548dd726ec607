package planner

import "strings"

// Kind 课组类型，取值与目录数据的 lectureType 一致
type Kind int

const (
	KindLecture  Kind = 0
	KindPractice Kind = 1
)

// Known 是否为可识别的类型；未识别的类型不参与任何互斥替换
func (k Kind) Known() bool {
	return k == KindLecture || k == KindPractice
}

func (k Kind) String() string {
	switch k {
	case KindLecture:
		return "lecture"
	case KindPractice:
		return "practice"
	default:
		return "unknown"
	}
}

// SessionID 结构化课组编号。
// 目录中的原始编号形如 "61123"、"61123/2"、"61123_2"，在数据入口处解析一次，
// 之后一律按 Base 判断是否属于同一基础组。
type SessionID struct {
	Base    string
	Variant string
	sep     string
}

// ParseSessionID 拆分末尾的 "/N" 或 "_N" 变体后缀（N 为纯数字）
func ParseSessionID(raw string) SessionID {
	i := strings.LastIndexAny(raw, "/_")
	if i <= 0 || i == len(raw)-1 {
		return SessionID{Base: raw}
	}
	suffix := raw[i+1:]
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return SessionID{Base: raw}
		}
	}
	return SessionID{Base: raw[:i], Variant: suffix, sep: raw[i : i+1]}
}

// String 还原为目录中的原始编号
func (id SessionID) String() string {
	if id.Variant == "" {
		return id.Base
	}
	return id.Base + id.sep + id.Variant
}

// Session 课程的一个具体课组（讲座或练习），来自目录，只读
type Session struct {
	ID         SessionID
	Kind       Kind
	Slot       Interval
	Room       string
	Instructor string
}

// containsSession 按编号判断集合成员
func containsSession(list []Session, id SessionID) bool {
	for _, s := range list {
		if s.ID == id {
			return true
		}
	}
	return false
}

// filterSessions 返回不满足 drop 的会话，保持原有顺序
func filterSessions(list []Session, drop func(Session) bool) []Session {
	out := make([]Session, 0, len(list))
	for _, s := range list {
		if !drop(s) {
			out = append(out, s)
		}
	}
	return out
}

// appendUnique 追加尚未出现的会话
func appendUnique(list []Session, add ...Session) []Session {
	for _, s := range add {
		if !containsSession(list, s.ID) {
			list = append(list, s)
		}
	}
	return list
}
