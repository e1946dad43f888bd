package render

import (
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thryce/site/pkg/components"
	"github.com/thryce/site/pkg/dom"
	"github.com/thryce/site/pkg/systems"
	"github.com/thryce/site/pkg/types"
)

var _ systems.Canvas = (*ImageCanvas)(nil)

func TestImageCanvasResize(t *testing.T) {
	c := NewImageCanvas()
	assert.Nil(t, c.Image())

	c.Resize(320, 200)
	require.NotNil(t, c.Image())
	assert.Equal(t, 320, c.Image().Bounds().Dx())
	assert.Equal(t, 200, c.Image().Bounds().Dy())

	same := c.Image()
	c.Resize(320, 200)
	assert.Same(t, same, c.Image(), "same size keeps the image")

	c.Resize(0, 200)
	assert.Nil(t, c.Image())

	// 未分配时绘制是无操作
	assert.NotPanics(t, func() {
		c.Clear()
		c.FillCircle(10, 10, 2, types.RGBA(255, 0, 0, 0.5))
		c.DrawTo(ebiten.NewImage(10, 10))
	})
}

func TestImageCanvasDraw(t *testing.T) {
	c := NewImageCanvas()
	c.Resize(64, 64)
	screen := ebiten.NewImage(64, 64)

	assert.NotPanics(t, func() {
		c.Clear()
		c.FillCircle(32, 32, 2, types.RGBA(255, 0, 0, 0.5))
		c.FillCircle(32, 32, 0, types.RGBA(255, 0, 0, 0.5))
		c.DrawTo(screen)
	})
}

func TestDrawCursor(t *testing.T) {
	cursor := systems.NewPointerCursor(systems.CursorOptions{})
	cursor.OnPointerMove(30, 30)
	cursor.OnPointerDown()

	screen := ebiten.NewImage(64, 64)
	assert.NotPanics(t, func() {
		DrawCursor(screen, cursor.Layers())
		DrawCursor(screen, []components.CursorLayer{{Kind: components.CursorLayerDot, Radius: 8, Scale: 0}})
		DrawCursor(screen, []components.CursorLayer{{
			Kind: components.CursorLayerMagnetic, Radius: 30, Scale: 1, Opacity: 0.5, Rotation: 1,
			Fill: types.RGBA(99, 102, 241, 0.1),
		}})
		DrawCursor(screen, nil)
	})
}

func TestFade(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 0, A: 200}
	assert.Equal(t, c, fade(c, 1))
	assert.Equal(t, color.RGBA{R: 100, G: 50, B: 0, A: 100}, fade(c, 0.5))
	assert.Equal(t, color.RGBA{}, fade(c, 0))
}

const testPage = `<main>
  <nav data-rect="0,0,400,40">
    <a href="/team" data-rect="10,10,60,20">Team</a>
    <button data-action="toggle-theme" data-rect="300,10,60,20"><span data-rect="305,12,50,16">Theme</span></button>
  </nav>
  <p data-rect="10,60,300,20">  Hello
     world </p>
  <div>no rect</div>
</main>`

func TestLayoutPage(t *testing.T) {
	doc, err := dom.ParseString(testPage)
	require.NoError(t, err)

	items := LayoutPage(doc)
	require.Len(t, items, 5)

	assert.Equal(t, "", items[0].Text) // nav 只有空白
	assert.False(t, items[0].Interactive)
	assert.Equal(t, "Team", items[1].Text)
	assert.True(t, items[1].Interactive)
	assert.True(t, items[2].Interactive)
	assert.Equal(t, "Theme", items[3].Text)
	assert.True(t, items[3].Interactive, "span inside button inherits interactivity")
	assert.Equal(t, "Hello world", items[4].Text)
	assert.False(t, items[4].Interactive)

	assert.Nil(t, LayoutPage(nil))
}

func TestPageRendererDraw(t *testing.T) {
	doc, err := dom.ParseString(testPage)
	require.NoError(t, err)
	items := LayoutPage(doc)

	pr := NewPageRenderer()
	screen := ebiten.NewImage(400, 100)
	assert.NotPanics(t, func() {
		pr.Draw(screen, items, StyleFor(types.ThemeDark), doc.HitTest(20, 15))
		pr.Draw(screen, items, StyleFor(types.ThemeLight), nil)
	})
}

func TestStyleFor(t *testing.T) {
	dark := StyleFor(types.ThemeDark)
	light := StyleFor(types.ThemeLight)
	assert.NotEqual(t, dark.Background, light.Background)
	assert.Equal(t, uint8(255), dark.Background.A)
	assert.Equal(t, uint8(255), light.Text.A)
}
