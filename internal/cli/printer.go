package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/RoySegal1/Calander-V1/internal/dto"
	"github.com/RoySegal1/Calander-V1/internal/planner"
)

var dayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// 终端 16 色的近似 RGB，用于把课程颜色映射到最接近的前景色
var terminalColors = []struct {
	attr color.Attribute
	rgb  colorful.Color
}{
	{color.FgRed, colorful.Color{R: 0.8, G: 0.1, B: 0.1}},
	{color.FgGreen, colorful.Color{R: 0.1, G: 0.7, B: 0.1}},
	{color.FgYellow, colorful.Color{R: 0.8, G: 0.7, B: 0.1}},
	{color.FgBlue, colorful.Color{R: 0.2, G: 0.2, B: 0.8}},
	{color.FgMagenta, colorful.Color{R: 0.7, G: 0.1, B: 0.7}},
	{color.FgCyan, colorful.Color{R: 0.1, G: 0.7, B: 0.7}},
	{color.FgHiRed, colorful.Color{R: 1, G: 0.4, B: 0.4}},
	{color.FgHiGreen, colorful.Color{R: 0.5, G: 0.9, B: 0.2}},
	{color.FgHiYellow, colorful.Color{R: 1, G: 0.8, B: 0.3}},
	{color.FgHiBlue, colorful.Color{R: 0.3, G: 0.6, B: 1}},
	{color.FgHiMagenta, colorful.Color{R: 0.9, G: 0.3, B: 0.9}},
	{color.FgHiCyan, colorful.Color{R: 0.3, G: 0.9, B: 0.9}},
	{color.FgWhite, colorful.Color{R: 0.6, G: 0.6, B: 0.6}},
}

// nearestAttr 按 Lab 距离选择最接近的终端颜色
func nearestAttr(c colorful.Color) color.Attribute {
	best, bestDist := color.FgWhite, -1.0
	for _, tc := range terminalColors {
		if d := c.DistanceLab(tc.rgb); bestDist < 0 || d < bestDist {
			best, bestDist = tc.attr, d
		}
	}
	return best
}

type printer struct {
	out io.Writer
}

func newPrinter(out io.Writer) *printer {
	return &printer{out: out}
}

// Day 打印一天的布局表
func (p *printer) Day(day planner.DayLayout, cat *planner.Catalog, colors map[string]planner.Color) {
	title := color.New(color.Bold, color.Underline)
	faint := color.New(color.Faint, color.Italic)

	_, _ = fmt.Fprintln(p.out, title.Sprint(dayNames[day.Day]))
	if len(day.Blocks) == 0 {
		_, _ = fmt.Fprintln(p.out, faint.Sprint(" none"))
		_, _ = fmt.Fprintln(p.out)
		return
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Time"), bold.Sprint("Course"), bold.Sprint("Group"), bold.Sprint("Kind"),
		bold.Sprint("Column"), bold.Sprint("Left%"), bold.Sprint("Width%"))

	for _, b := range day.Blocks {
		name := b.CourseID
		if c, ok := cat.Course(b.CourseID); ok && c.Name != "" {
			name = b.CourseID + " " + c.Name
		}
		style := color.New(nearestAttr(planner.ColorOf(colors, b.CourseID).Base))
		if !b.Selected {
			style = faint
		}
		slot := b.Session.Slot
		tbl.AddRow(
			fmt.Sprintf("%s-%s", slot.Start, slot.End),
			style.Sprint(name),
			b.Session.ID.String(),
			b.Session.Kind.String(),
			fmt.Sprintf("%d/%d", b.ColumnIndex+1, b.ColumnCount),
			fmt.Sprintf("%.2f", b.Left),
			fmt.Sprintf("%.2f", b.Width),
		)
	}
	_, _ = fmt.Fprintln(p.out, tbl)
	_, _ = fmt.Fprintln(p.out)
}

// Dropped 打印解码时丢弃的引用
func (p *printer) Dropped(report planner.DecodeReport) {
	if report.Empty() {
		return
	}
	warn := color.New(color.FgHiYellow)
	for _, c := range report.DroppedCourses {
		_, _ = fmt.Fprintln(p.out, warn.Sprintf("dropped course %s: not in catalog", c))
	}
	for _, s := range report.DroppedSessions {
		_, _ = fmt.Fprintln(p.out, warn.Sprintf("dropped group %s/%s: not in catalog", s.CourseID, s.SessionID))
	}
}

// Skipped 打印目录中被跳过的违约课组
func (p *printer) Skipped(skipped []dto.SkippedGroup) {
	warn := color.New(color.FgRed, color.Faint)
	for _, s := range skipped {
		_, _ = fmt.Fprintln(p.out, warn.Sprintf("skipped catalog group %s/%s: %s", s.CourseCode, s.GroupCode, s.Reason))
	}
}
