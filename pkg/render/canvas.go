// Package render 负责把粒子场、光标叠加层和页面标记绘制到 ebiten 图像上
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ImageCanvas 以离屏 ebiten.Image 实现 systems.Canvas
//
// 粒子场每帧在这里清空并重绘，场景 Draw 时再把整张图合成到屏幕最底层。
type ImageCanvas struct {
	img *ebiten.Image
}

// NewImageCanvas 创建空画布，尺寸在第一次 Resize 时确定
func NewImageCanvas() *ImageCanvas {
	return &ImageCanvas{}
}

// Resize 调整画布尺寸
// 尺寸为 0 时释放图像（ebiten 不允许 0 尺寸图像）
func (c *ImageCanvas) Resize(width, height int) {
	if c.img != nil {
		b := c.img.Bounds()
		if b.Dx() == width && b.Dy() == height {
			return
		}
		c.img.Deallocate()
		c.img = nil
	}
	if width <= 0 || height <= 0 {
		return
	}
	c.img = ebiten.NewImage(width, height)
}

// Clear 清空画布
func (c *ImageCanvas) Clear() {
	if c.img != nil {
		c.img.Clear()
	}
}

// FillCircle 绘制抗锯齿实心圆
func (c *ImageCanvas) FillCircle(x, y, radius float64, clr color.RGBA) {
	if c.img == nil || radius <= 0 {
		return
	}
	vector.DrawFilledCircle(c.img, float32(x), float32(y), float32(radius), clr, true)
}

// Image 返回底层图像，未分配时为 nil
func (c *ImageCanvas) Image() *ebiten.Image {
	return c.img
}

// DrawTo 把画布合成到目标图像左上角
func (c *ImageCanvas) DrawTo(dst *ebiten.Image) {
	if c.img == nil {
		return
	}
	dst.DrawImage(c.img, &ebiten.DrawImageOptions{})
}
