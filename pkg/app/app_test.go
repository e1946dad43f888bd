package app

import (
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thryce/site/pkg/config"
	"github.com/thryce/site/pkg/embedded"
	"github.com/thryce/site/pkg/scenes"
	"github.com/thryce/site/pkg/types"
	"github.com/thryce/site/pkg/utils"
)

const navMarkup = `<nav data-rect="0,0,400,40">
  <a href="/services" data-rect="10,10,60,20">Services</a>
  <button data-action="toggle-theme" data-rect="300,10,60,20">Theme</button>
</nav>`

func initPages(t *testing.T) {
	t.Helper()
	files := fstest.MapFS{}
	for _, name := range []string{"home", "services", "projects", "team", "contact"} {
		files["assets/pages/"+name+".html"] = &fstest.MapFile{
			Data: []byte(`<main id="` + name + `" data-title="` + name + `">` + navMarkup + `</main>`),
		}
	}
	embedded.Init(files)
	t.Cleanup(func() { embedded.Init(nil) })
}

// pointerScript 按顺序返回预设的指针采样，用完后重复最后一个
type pointerScript struct {
	samples []utils.PointerSample
}

func (p *pointerScript) next() utils.PointerSample {
	if len(p.samples) == 0 {
		return utils.PointerSample{}
	}
	s := p.samples[0]
	if len(p.samples) > 1 {
		p.samples = p.samples[1:]
	}
	return s
}

func newTestApp(t *testing.T, script *pointerScript) (*App, *[]string) {
	t.Helper()
	initPages(t)

	cfg := config.Default()
	cfg.Window.Width, cfg.Window.Height = 400, 300
	cfg.Field.Population = 10

	var titles []string
	a, err := New(Options{
		Config:   cfg,
		Pointer:  script.next,
		SetTitle: func(s string) { titles = append(titles, s) },
	})
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a, &titles
}

func currentPage(t *testing.T, a *App) *scenes.PageScene {
	t.Helper()
	page, ok := a.SceneManager().GetCurrentScene().(*scenes.PageScene)
	require.True(t, ok)
	return page
}

func TestNew_LoadsStartPage(t *testing.T) {
	a, titles := newTestApp(t, &pointerScript{})

	assert.Equal(t, "/", a.SceneManager().CurrentPath())
	assert.Equal(t, []string{"home · Thryce"}, *titles)
	assert.Len(t, currentPage(t, a).Backdrop().Field().Particles(), 10)
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestNew_InvalidPalette(t *testing.T) {
	initPages(t)
	cfg := config.Default()
	cfg.Field.Palettes["dark"] = []string{"nope"}
	_, err := New(Options{Config: cfg, SetTitle: func(string) {}})
	assert.Error(t, err)
}

func TestLayout_ResizesField(t *testing.T) {
	a, _ := newTestApp(t, &pointerScript{})

	w, h := a.Layout(800, 600)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	fw, fh := currentPage(t, a).Backdrop().Field().Size()
	assert.Equal(t, 800.0, fw)
	assert.Equal(t, 600.0, fh)
}

func TestUpdate_TicksField(t *testing.T) {
	a, _ := newTestApp(t, &pointerScript{})
	before := a.Loop().Frames()

	for i := 0; i < 5; i++ {
		require.NoError(t, a.Update())
	}
	assert.Equal(t, before+5, a.Loop().Frames())
	assert.Equal(t, 1, a.Loop().Pending())
}

func TestUpdate_ClickNavigates(t *testing.T) {
	script := &pointerScript{samples: []utils.PointerSample{
		{X: 20, Y: 15, Present: true},
		{X: 20, Y: 15, Pressed: true, Present: true},
		{X: 20, Y: 15, Present: true},
	}}
	a, titles := newTestApp(t, script)

	require.NoError(t, a.Update()) // move
	require.NoError(t, a.Update()) // down
	require.NoError(t, a.Update()) // up -> navigate

	assert.Equal(t, "/services", a.SceneManager().CurrentPath())
	assert.Equal(t, "services · Thryce", (*titles)[len(*titles)-1])

	// 新页面的光标继承当前指针位置
	state := currentPage(t, a).Backdrop().Cursor().State()
	assert.Equal(t, 20.0, state.X)
	assert.Equal(t, 15.0, state.Y)
	assert.Equal(t, 2, a.Viewport().Subscribers())
}

func TestUpdate_ToggleTheme(t *testing.T) {
	script := &pointerScript{samples: []utils.PointerSample{
		{X: 310, Y: 15, Present: true},
		{X: 310, Y: 15, Pressed: true, Present: true},
		{X: 310, Y: 15, Present: true},
	}}
	a, _ := newTestApp(t, script)
	for i := 0; i < 3; i++ {
		require.NoError(t, a.Update())
	}
	assert.Equal(t, types.ThemeDark, currentPage(t, a).Backdrop().Field().Theme())
}

func TestDraw(t *testing.T) {
	a, _ := newTestApp(t, &pointerScript{})
	require.NoError(t, a.Update())
	assert.NotPanics(t, func() { a.Draw(ebiten.NewImage(400, 300)) })
}

func TestClose_StopsFrames(t *testing.T) {
	a, _ := newTestApp(t, &pointerScript{})
	a.Close()
	assert.Equal(t, 0, a.Loop().Pending())
	assert.Equal(t, 0, a.Viewport().Subscribers())
}
