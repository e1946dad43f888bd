package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/thryce/site/pkg/components"
)

// magneticMarkRadius 磁吸光晕上旋转标记点的半径
const magneticMarkRadius = 2

// DrawCursor 按顺序（从下到上）绘制光标叠加层
//
// 缩放或不透明度为 0 的层不可见；Fill/Stroke 的 Alpha 为 0 时跳过对应的绘制。
func DrawCursor(dst *ebiten.Image, layers []components.CursorLayer) {
	for _, l := range layers {
		r := float32(l.EffectiveRadius())
		if r <= 0 || l.Opacity <= 0 {
			continue
		}
		cx, cy := float32(l.CenterX), float32(l.CenterY)
		fill, stroke := fade(l.Fill, l.Opacity), fade(l.Stroke, l.Opacity)
		if fill.A > 0 {
			vector.DrawFilledCircle(dst, cx, cy, r, fill, true)
		}
		if stroke.A > 0 && l.StrokeWidth > 0 {
			vector.StrokeCircle(dst, cx, cy, r, float32(l.StrokeWidth), stroke, true)
		}
		if l.Kind == components.CursorLayerMagnetic && fill.A > 0 {
			// 直径两端各一个标记点，随 Rotation 转动
			mark := fade(l.Fill, math.Min(1, l.Opacity*4))
			dx := float32(math.Cos(l.Rotation)) * r
			dy := float32(math.Sin(l.Rotation)) * r
			vector.DrawFilledCircle(dst, cx+dx, cy+dy, magneticMarkRadius, mark, true)
			vector.DrawFilledCircle(dst, cx-dx, cy-dy, magneticMarkRadius, mark, true)
		}
	}
}

// fade 按不透明度缩放预乘颜色
func fade(c color.RGBA, opacity float64) color.RGBA {
	if opacity >= 1 {
		return c
	}
	scale := func(v uint8) uint8 { return uint8(math.Round(float64(v) * opacity)) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: scale(c.A)}
}
