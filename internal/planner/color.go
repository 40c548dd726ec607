package planner

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color 课程配色
type Color struct {
	Name string
	Base colorful.Color
}

// rgb255 由 0-255 分量构造颜色
func rgb255(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// DefaultPalette 默认调色板，按课程选中顺序循环使用
var DefaultPalette = []Color{
	{Name: "indigo", Base: rgb255(79, 70, 229)},
	{Name: "teal", Base: rgb255(20, 184, 166)},
	{Name: "amber", Base: rgb255(245, 158, 11)},
	{Name: "rose", Base: rgb255(225, 29, 72)},
	{Name: "emerald", Base: rgb255(16, 185, 129)},
	{Name: "violet", Base: rgb255(139, 92, 246)},
	{Name: "cyan", Base: rgb255(6, 182, 212)},
	{Name: "fuchsia", Base: rgb255(192, 38, 211)},
	{Name: "lime", Base: rgb255(132, 204, 22)},
	{Name: "sky", Base: rgb255(14, 165, 233)},
}

// FallbackColor 未选课程或调色板为空时使用的灰色
var FallbackColor = Color{Name: "gray", Base: rgb255(156, 163, 175)}

// Hex 基色的 #rrggbb 形式
func (c Color) Hex() string { return c.Base.Hex() }

// Background 实心背景 rgba(r, g, b, 1)
func (c Color) Background() string { return c.rgba(1) }

// BackgroundLight 浅色背景 rgba(r, g, b, 0.2)
func (c Color) BackgroundLight() string { return c.rgba(0.2) }

// Text 文字颜色 rgb(r, g, b)
func (c Color) Text() string {
	r, g, b := c.Base.RGB255()
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

// LightHex 与白色混合后的不透明浅色，用于不支持透明度的场景（如表格单元格填充）
func (c Color) LightHex() string {
	white := colorful.Color{R: 1, G: 1, B: 1}
	return c.Base.BlendRgb(white, 0.8).Clamped().Hex()
}

func (c Color) rgba(alpha float64) string {
	r, g, b := c.Base.RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", r, g, b, alpha)
}

// AssignColors 按有序课程列表分配颜色：第 i 门课取 palette[i % N]。
// 每次根据当前列表重新推导，不单独持久化。
func AssignColors(order []string, palette []Color) map[string]Color {
	out := make(map[string]Color, len(order))
	for i, id := range order {
		if len(palette) == 0 {
			out[id] = FallbackColor
			continue
		}
		out[id] = palette[i%len(palette)]
	}
	return out
}

// ColorOf 查询课程颜色，未分配时返回 FallbackColor
func ColorOf(colors map[string]Color, courseID string) Color {
	if c, ok := colors[courseID]; ok {
		return c
	}
	return FallbackColor
}
