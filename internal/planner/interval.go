package planner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidClock    = errors.New("时间格式无效，应为 HH:MM")
	ErrInvalidInterval = errors.New("结束时间必须晚于开始时间")
	ErrInvalidDay      = errors.New("星期取值必须在 0-5 之间")
)

// 星期取值：0 = 周日 … 5 = 周五
const (
	MinDay = 0
	MaxDay = 5
)

// Clock 当天零点起的分钟数。所有时间比较都在该整数上进行，避免 "9:00" > "10:00" 的字典序问题。
type Clock int

// ParseClock 解析 "H:MM" / "HH:MM"（可带秒，秒被忽略）
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 24 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if h == 24 && m != 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return Clock(h*60 + m), nil
}

// MustClock 仅用于常量与测试数据
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String 格式化为 HH:MM
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Interval 某一天内的半开时间区间 [Start, End)
type Interval struct {
	Day   int
	Start Clock
	End   Clock
}

// NewInterval 创建并校验区间；start >= end 属于目录数据违约
func NewInterval(day int, start, end Clock) (Interval, error) {
	if day < MinDay || day > MaxDay {
		return Interval{}, fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}
	if start >= end {
		return Interval{}, fmt.Errorf("%w: %s-%s", ErrInvalidInterval, start, end)
	}
	return Interval{Day: day, Start: start, End: end}, nil
}

// Duration 区间时长（分钟）
func (iv Interval) Duration() int {
	return int(iv.End - iv.Start)
}

// Overlaps 同一天且区间相交即重叠；首尾相接不算冲突
func Overlaps(a, b Interval) bool {
	return a.Day == b.Day && a.Start < b.End && a.End > b.Start
}
