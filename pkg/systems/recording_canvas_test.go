package systems

import "image/color"

// recordingCanvas 记录绘制调用的内存画布
type recordingCanvas struct {
	width, height int
	resizes       int
	clears        int
	circles       int
	lastColor     color.RGBA
}

func (c *recordingCanvas) Resize(width, height int) {
	c.width, c.height = width, height
	c.resizes++
}

func (c *recordingCanvas) Clear() {
	c.clears++
}

func (c *recordingCanvas) FillCircle(_, _, _ float64, clr color.RGBA) {
	c.circles++
	c.lastColor = clr
}
