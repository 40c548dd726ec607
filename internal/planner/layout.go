package planner

import "sort"

// Block 日历上待渲染的一个课组
type Block struct {
	CourseID string
	Session  Session
	Selected bool
}

// PositionedBlock 带几何信息的课组块。
// Left / Width 为百分比，Top / Height 为像素。
type PositionedBlock struct {
	Block
	ColumnIndex int
	ColumnCount int
	Left        float64
	Width       float64
	Top         float64
	Height      float64
}

// DayLayout 某一天的布局结果
type DayLayout struct {
	Day    int
	Blocks []PositionedBlock
}

// LayoutConfig 布局常量
type LayoutConfig struct {
	DayStart        Clock
	PixelsPerMinute float64
	UsableWidth     float64 // 百分比
	Margin          float64 // 左侧留白百分比
}

// DefaultLayoutConfig 08:00 起，每分钟 1 像素，可用宽度 95%，左留白 2.5%
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		DayStart:        8 * 60,
		PixelsPerMinute: 1,
		UsableWidth:     95,
		Margin:          2.5,
	}
}

// LayoutDay 计算同一天内课组块的列位置。
// 每个块的重叠组只包含与它自身重叠的块（不做传递合并），
// 组内按课组编号、课程编号、输入顺序排序后取名次作为列号。
func (cfg LayoutConfig) LayoutDay(blocks []Block) []PositionedBlock {
	out := make([]PositionedBlock, len(blocks))
	for i, b := range blocks {
		group := []int{i}
		for j, o := range blocks {
			if j != i && Overlaps(b.Session.Slot, o.Session.Slot) {
				group = append(group, j)
			}
		}
		sort.SliceStable(group, func(x, y int) bool {
			return blockLess(blocks, group[x], group[y])
		})

		rank := 0
		for k, idx := range group {
			if idx == i {
				rank = k
				break
			}
		}

		count := len(group)
		width := cfg.UsableWidth / float64(count)
		slot := b.Session.Slot
		out[i] = PositionedBlock{
			Block:       b,
			ColumnIndex: rank,
			ColumnCount: count,
			Left:        cfg.Margin + float64(rank)*width,
			Width:       width,
			Top:         float64(slot.Start-cfg.DayStart) * cfg.PixelsPerMinute,
			Height:      float64(slot.Duration()) * cfg.PixelsPerMinute,
		}
	}
	return out
}

func blockLess(blocks []Block, a, b int) bool {
	sa, sb := blocks[a].Session.ID.String(), blocks[b].Session.ID.String()
	if sa != sb {
		return sa < sb
	}
	if blocks[a].CourseID != blocks[b].CourseID {
		return blocks[a].CourseID < blocks[b].CourseID
	}
	return a < b
}

// LayoutWeek 按星期拆分后逐日布局，始终返回周日到周五六天
func (cfg LayoutConfig) LayoutWeek(blocks []Block) []DayLayout {
	byDay := make(map[int][]Block)
	for _, b := range blocks {
		byDay[b.Session.Slot.Day] = append(byDay[b.Session.Slot.Day], b)
	}
	week := make([]DayLayout, 0, MaxDay-MinDay+1)
	for d := MinDay; d <= MaxDay; d++ {
		week = append(week, DayLayout{Day: d, Blocks: cfg.LayoutDay(byDay[d])})
	}
	return week
}

// BuildBlocks 收集待渲染的课组：所有已选课组，
// 以及（selectedOnly 为 false 时）已选课程中尚未选中的其他课组。
func BuildBlocks(st *State, cat *Catalog, selectedOnly bool) []Block {
	var blocks []Block
	for _, courseID := range st.order {
		chosen := st.entries[courseID]
		for _, s := range chosen {
			blocks = append(blocks, Block{CourseID: courseID, Session: s, Selected: true})
		}
		if selectedOnly {
			continue
		}
		course, ok := cat.Course(courseID)
		if !ok {
			continue
		}
		for _, s := range course.Sessions {
			if !st.IsSessionSelected(courseID, s.ID) {
				blocks = append(blocks, Block{CourseID: courseID, Session: s})
			}
		}
	}
	return blocks
}
