// Package terminal 在字符终端里渲染站点背景（tcell）
//
// 粒子场和光标仍然工作在虚拟像素坐标中；每个字符单元对应 CellWidth x CellHeight 个虚拟像素。
package terminal

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// 粒子按半径选择字符
const (
	glyphSmall  = '·'
	glyphMedium = '•'
	glyphLarge  = '●'
)

type cell struct {
	glyph rune
	fg    color.RGBA
	set   bool
}

// CellCanvas 以字符单元实现 systems.Canvas
//
// FillCircle 把圆心所在的单元标记为粒子字符，颜色与背景混合后输出。
type CellCanvas struct {
	cellW, cellH int
	cols, rows   int
	cells        []cell
	background   color.RGBA
}

// NewCellCanvas 创建字符画布
func NewCellCanvas(cellW, cellH int) *CellCanvas {
	if cellW <= 0 {
		cellW = 1
	}
	if cellH <= 0 {
		cellH = 1
	}
	return &CellCanvas{cellW: cellW, cellH: cellH, background: color.RGBA{A: 255}}
}

// Resize 按虚拟像素调整画布
func (c *CellCanvas) Resize(width, height int) {
	cols, rows := 0, 0
	if width > 0 && height > 0 {
		cols, rows = width/c.cellW, height/c.cellH
	}
	c.cols, c.rows = cols, rows
	c.cells = make([]cell, cols*rows)
}

// Clear 清空所有单元
func (c *CellCanvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{}
	}
}

// FillCircle 在圆心所在的单元放置粒子字符
func (c *CellCanvas) FillCircle(x, y, radius float64, clr color.RGBA) {
	if radius <= 0 || x < 0 || y < 0 {
		return
	}
	col, row := int(x)/c.cellW, int(y)/c.cellH
	if col >= c.cols || row >= c.rows {
		return
	}

	glyph := glyphSmall
	switch {
	case radius >= 2:
		glyph = glyphLarge
	case radius >= 1:
		glyph = glyphMedium
	}
	c.cells[row*c.cols+col] = cell{glyph: glyph, fg: over(clr, c.background), set: true}
}

// SetBackground 设置混合用的背景色
func (c *CellCanvas) SetBackground(bg color.RGBA) {
	c.background = bg
}

// Size 返回单元列数和行数
func (c *CellCanvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Cell 返回单元内容；没有粒子时 ok 为 false
func (c *CellCanvas) Cell(col, row int) (glyph rune, fg color.RGBA, ok bool) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return 0, color.RGBA{}, false
	}
	cl := c.cells[row*c.cols+col]
	return cl.glyph, cl.fg, cl.set
}

// Blit 把画布内容写到屏幕上
func (c *CellCanvas) Blit(screen tcell.Screen, bg tcell.Color) {
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			cl := c.cells[row*c.cols+col]
			if !cl.set {
				continue
			}
			style := tcell.StyleDefault.Foreground(toTcell(cl.fg)).Background(bg)
			screen.SetContent(col, row, cl.glyph, nil, style)
		}
	}
}

// over 把预乘 alpha 颜色叠加到不透明背景上
func over(src, dst color.RGBA) color.RGBA {
	inv := 255 - uint32(src.A)
	mix := func(s, d uint8) uint8 {
		return uint8(uint32(s) + (uint32(d)*inv+127)/255)
	}
	return color.RGBA{R: mix(src.R, dst.R), G: mix(src.G, dst.G), B: mix(src.B, dst.B), A: 255}
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
