// Package app 把页面场景、帧循环和视口接到 ebiten 的游戏循环上
package app

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/thryce/site/pkg/config"
	"github.com/thryce/site/pkg/frame"
	"github.com/thryce/site/pkg/game"
	"github.com/thryce/site/pkg/scenes"
	"github.com/thryce/site/pkg/systems"
	"github.com/thryce/site/pkg/utils"
	"github.com/thryce/site/pkg/viewport"
)

// pointerTarget 接收指针输入的场景
type pointerTarget interface {
	PointerMove(x, y float64)
	PointerDown()
	PointerUp()
}

// titled 带标题的场景
type titled interface {
	Title() string
}

// Options 应用参数
type Options struct {
	Config *config.Config
	Themes *game.ThemeStore
	// StartPage 启动页面，为空时使用配置中的 window.start_page
	StartPage string
	Logger    *zap.Logger

	// Pointer 指针采样函数，默认 utils.SamplePointer
	Pointer func() utils.PointerSample
	// SetTitle 设置窗口标题，默认 ebiten.SetWindowTitle
	SetTitle func(string)
}

// App 实现 ebiten.Game
//
// 每个 tick 的顺序：
//  1. 采样指针并转成文档事件
//  2. 更新当前页面（执行导航、主题切换）
//  3. Pump 帧循环（粒子场 Tick）
type App struct {
	cfg          *config.Config
	loop         *frame.Loop
	viewport     *viewport.Adapter
	sceneManager *game.SceneManager
	themes       *game.ThemeStore
	logger       *zap.Logger

	pointer   utils.PointerState
	sample    func() utils.PointerSample
	setTitle  func(string)
	lastScene game.Scene
}

// New 创建应用并加载启动页面
func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("app config is nil")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Themes == nil {
		opts.Themes = game.NewThemeStore(nil, opts.Config.DefaultTheme(), opts.Logger)
	}
	if opts.Pointer == nil {
		opts.Pointer = utils.SamplePointer
	}
	if opts.SetTitle == nil {
		opts.SetTitle = ebiten.SetWindowTitle
	}

	palettes, err := FieldPalettes(opts.Config.Field)
	if err != nil {
		return nil, err
	}

	cfg := opts.Config
	a := &App{
		cfg:          cfg,
		loop:         frame.NewLoop(),
		viewport:     viewport.NewAdapter(cfg.Window.Width, cfg.Window.Height),
		sceneManager: game.NewSceneManager(opts.Logger),
		themes:       opts.Themes,
		logger:       opts.Logger.Named("App"),
		sample:       opts.Pointer,
		setTitle:     opts.SetTitle,
	}

	a.sceneManager.SetSceneFactory(scenes.NewPageFactory(scenes.PageDeps{
		SceneManager: a.sceneManager,
		Themes:       a.themes,
		Field: systems.FieldOptions{
			Population: cfg.Field.Population,
			MinRadius:  cfg.Field.MinRadius,
			MaxRadius:  cfg.Field.MaxRadius,
			MaxSpeed:   cfg.Field.MaxSpeed,
			Palettes:   palettes,
			Scheduler:  a.loop,
			Viewport:   a.viewport,
			Logger:     opts.Logger,
		},
		CursorEnabled: cfg.Cursor.Enabled,
		Logger:        opts.Logger,
	}))

	start := opts.StartPage
	if start == "" {
		start = cfg.Window.StartPage
	}
	a.sceneManager.LoadPage(scenes.ResolveRoute(start))
	if a.sceneManager.GetCurrentScene() == nil {
		return nil, fmt.Errorf("failed to load start page %q", start)
	}
	a.onSceneChanged()
	return a, nil
}

// FieldPalettes 把配置中的调色板转换为粒子场使用的格式
func FieldPalettes(fc config.FieldConfig) (systems.Palettes, error) {
	parsed, err := fc.ParsePalettes()
	if err != nil {
		return nil, err
	}
	if len(parsed) == 0 {
		return nil, nil
	}
	palettes := make(systems.Palettes, len(parsed))
	for theme, colors := range parsed {
		palettes[theme] = systems.Palette(colors)
	}
	return palettes, nil
}

// Update 实现 ebiten.Game
func (a *App) Update() error {
	a.dispatchPointer()
	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	if a.sceneManager.GetCurrentScene() != a.lastScene {
		a.onSceneChanged()
	}
	a.loop.Pump()
	return nil
}

// Draw 实现 ebiten.Game
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 实现 ebiten.Game
// 逻辑尺寸等于窗口尺寸，尺寸变化时通知视口订阅者
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.viewport.Update(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Close 卸载当前页面
func (a *App) Close() {
	a.sceneManager.Close()
	a.lastScene = nil
}

// SceneManager 返回场景管理器
func (a *App) SceneManager() *game.SceneManager {
	return a.sceneManager
}

// Viewport 返回视口
func (a *App) Viewport() *viewport.Adapter {
	return a.viewport
}

// Loop 返回帧循环
func (a *App) Loop() *frame.Loop {
	return a.loop
}

func (a *App) dispatchPointer() {
	change := a.pointer.Advance(a.sample())
	target, ok := a.sceneManager.GetCurrentScene().(pointerTarget)
	if !ok {
		return
	}
	if change.Moved {
		target.PointerMove(float64(change.X), float64(change.Y))
	}
	if change.JustPressed {
		target.PointerDown()
	}
	if change.JustReleased {
		target.PointerUp()
	}
}

// onSceneChanged 新页面挂载后同步窗口标题和指针位置
func (a *App) onSceneChanged() {
	scene := a.sceneManager.GetCurrentScene()
	a.lastScene = scene

	if t, ok := scene.(titled); ok {
		title := a.cfg.Window.Title
		if pageTitle := t.Title(); pageTitle != "" {
			title = fmt.Sprintf("%s · %s", pageTitle, a.cfg.Window.Title)
		}
		a.setTitle(title)
	}

	// 新页面的光标从当前指针位置开始，而不是 (0, 0)
	if target, ok := scene.(pointerTarget); ok {
		if last := a.pointer.Last(); last.Present {
			target.PointerMove(float64(last.X), float64(last.Y))
		}
	}
}

// Run 打开窗口并运行，直到窗口关闭
func Run(opts Options) error {
	a, err := New(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := opts.Config
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.Cursor.Enabled && cfg.Cursor.HideSystem {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}

	a.logger.Info("starting window",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("page", a.sceneManager.CurrentPath()))

	if err := ebiten.RunGame(a); err != nil {
		return fmt.Errorf("game loop: %w", err)
	}
	return nil
}
