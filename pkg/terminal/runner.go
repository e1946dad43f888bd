package terminal

import (
	"context"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/thryce/site/pkg/config"
	"github.com/thryce/site/pkg/dom"
	"github.com/thryce/site/pkg/frame"
	"github.com/thryce/site/pkg/game"
	"github.com/thryce/site/pkg/render"
	"github.com/thryce/site/pkg/scenes"
	"github.com/thryce/site/pkg/systems"
	"github.com/thryce/site/pkg/types"
	"github.com/thryce/site/pkg/viewport"
)

// Options 终端运行参数
type Options struct {
	Terminal config.TerminalConfig
	// Field 粒子场配置；Scheduler 和 Viewport 由 Runner 提供
	Field         systems.FieldOptions
	Themes        *game.ThemeStore
	StartPage     string
	CursorEnabled bool
	Logger        *zap.Logger
}

// cursorRed 光标颜色（red-400）
var cursorRed = color.RGBA{R: 248, G: 113, B: 113, A: 255}

// termPage 终端里的一个页面
type termPage struct {
	route      string
	doc        *dom.Document
	items      []render.PageItem
	dispatcher *dom.Dispatcher
	tracker    *dom.PointerTracker
	backdrop   *systems.Backdrop
	removers   []func()
	downTarget *html.Node
}

// Runner 终端渲染循环
//
// 一个 goroutine 通过 ChannelEvents 转发 tcell 事件，另一个 goroutine 处理事件并按 FPS 绘制；
// 帧循环、页面和光标只在后者上访问。
type Runner struct {
	screen tcell.Screen
	opts   Options
	logger *zap.Logger

	loop     *frame.Loop
	viewport *viewport.Adapter
	canvas   *CellCanvas
	page     *termPage

	pressed     bool
	pendingNav  string
	toggleTheme bool
}

// NewRunner 创建终端渲染器
// screen 必须已经 Init；Runner 不负责 Fini
func NewRunner(screen tcell.Screen, opts Options) *Runner {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Themes == nil {
		opts.Themes = game.NewThemeStore(nil, types.ThemeLight, opts.Logger)
	}
	if opts.Terminal.CellWidth <= 0 {
		opts.Terminal.CellWidth = 8
	}
	if opts.Terminal.CellHeight <= 0 {
		opts.Terminal.CellHeight = 16
	}
	if opts.Terminal.FPS <= 0 {
		opts.Terminal.FPS = 60
	}
	return &Runner{
		screen: screen,
		opts:   opts,
		logger: opts.Logger.Named("Terminal"),
		loop:   frame.NewLoop(),
		canvas: NewCellCanvas(opts.Terminal.CellWidth, opts.Terminal.CellHeight),
	}
}

// Run 运行直到 ctx 取消、按下 q/Esc/Ctrl-C 或屏幕关闭
func (r *Runner) Run(ctx context.Context) error {
	if err := r.start(); err != nil {
		return err
	}
	defer r.stop()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r.screen.ChannelEvents(events, quit)
		return nil
	})
	g.Go(func() error {
		defer close(quit)
		return r.eventLoop(gctx, events)
	})
	return g.Wait()
}

func (r *Runner) start() error {
	r.screen.EnableMouse()
	r.screen.HideCursor()

	cols, rows := r.screen.Size()
	r.viewport = viewport.NewAdapter(cols*r.opts.Terminal.CellWidth, rows*r.opts.Terminal.CellHeight)

	start := r.opts.StartPage
	if start == "" {
		start = scenes.HomeRoute
	}
	if err := r.loadPage(start); err != nil {
		return err
	}
	r.logger.Info("terminal started", zap.Int("cols", cols), zap.Int("rows", rows))
	return nil
}

func (r *Runner) stop() {
	r.unmountPage()
	r.screen.DisableMouse()
	r.logger.Info("terminal stopped")
}

func (r *Runner) eventLoop(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(time.Second / time.Duration(r.opts.Terminal.FPS))
	defer ticker.Stop()

	r.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !r.handleEvent(ev) {
				return nil
			}
			r.applyPending()
		case <-ticker.C:
			r.loop.Pump()
			r.draw()
		}
	}
}

// handleEvent 处理一个 tcell 事件，返回 false 表示退出
func (r *Runner) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 't', 'T':
				r.toggleTheme = true
			default:
				// 数字键按顺序跳转页面
				if i := int(ev.Rune() - '1'); i >= 0 && i < len(scenes.Routes()) {
					r.pendingNav = scenes.Routes()[i]
				}
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := r.cellCenter(col, row)
		pressed := ev.Buttons()&tcell.Button1 != 0
		p := r.page
		p.tracker.Move(x, y)
		if pressed && !r.pressed {
			p.tracker.Down()
		}
		if !pressed && r.pressed {
			p.tracker.Up()
		}
		r.pressed = pressed

	case *tcell.EventResize:
		r.screen.Sync()
		cols, rows := ev.Size()
		r.viewport.Update(cols*r.opts.Terminal.CellWidth, rows*r.opts.Terminal.CellHeight)
	}
	return true
}

// applyPending 事件分发结束后再执行主题切换和导航
func (r *Runner) applyPending() {
	if r.toggleTheme {
		r.toggleTheme = false
		theme, err := r.opts.Themes.Toggle()
		if err != nil {
			r.logger.Warn("failed to persist theme", zap.Error(err))
		}
		r.logger.Debug("theme toggled", zap.String("theme", string(theme)))
	}
	if nav := r.pendingNav; nav != "" {
		r.pendingNav = ""
		if nav != r.page.route {
			if err := r.loadPage(nav); err != nil {
				r.logger.Error("failed to load page", zap.String("route", nav), zap.Error(err))
			}
		}
	}
}

func (r *Runner) loadPage(route string) error {
	route = scenes.ResolveRoute(route)
	doc, err := scenes.LoadPageDocument(route)
	if err != nil {
		return err
	}

	r.unmountPage()

	field := r.opts.Field
	field.Scheduler = r.loop
	field.Viewport = r.viewport
	if field.Logger == nil {
		field.Logger = r.opts.Logger
	}

	p := &termPage{
		route:      route,
		doc:        doc,
		items:      render.LayoutPage(doc),
		dispatcher: dom.NewDispatcher(),
	}
	p.tracker = dom.NewPointerTracker(doc, p.dispatcher)
	p.backdrop = systems.NewBackdrop(systems.BackdropOptions{
		Field:         field,
		Themes:        r.opts.Themes,
		FrameDuration: time.Second / time.Duration(r.opts.Terminal.FPS),
		Logger:        r.opts.Logger,
	})
	p.removers = append(p.removers,
		p.dispatcher.AddListener(dom.PointerDown, func(ev dom.Event) { p.downTarget = ev.Target }),
		p.dispatcher.AddListener(dom.PointerUp, func(ev dom.Event) {
			down := p.downTarget
			p.downTarget = nil
			if ev.Target == nil || ev.Target != down {
				return
			}
			action := scenes.ClickActionFor(ev.Target)
			r.toggleTheme = r.toggleTheme || action.ToggleTheme
			if action.Navigate != "" {
				r.pendingNav = action.Navigate
			}
		}),
	)
	p.backdrop.Mount(r.canvas, p.dispatcher)

	// 新页面的光标从当前指针位置开始
	if old := r.page; old != nil {
		x, y := old.tracker.Position()
		p.tracker.Move(x, y)
	}
	r.page = p
	r.logger.Debug("page loaded", zap.String("route", route))
	return nil
}

func (r *Runner) unmountPage() {
	if r.page == nil {
		return
	}
	r.page.backdrop.Unmount()
	for _, remove := range r.page.removers {
		remove()
	}
	r.page.removers = nil
}

// draw 从下到上绘制：背景、粒子、页面文字、光标
func (r *Runner) draw() {
	style := render.StyleFor(r.opts.Themes.Theme())
	bg := toTcell(style.Background)
	r.canvas.SetBackground(style.Background)

	r.screen.Fill(' ', tcell.StyleDefault.Background(bg))
	r.canvas.Blit(r.screen, bg)
	r.drawPage(style, bg)
	if r.opts.CursorEnabled {
		r.drawCursor(bg)
	}
	r.screen.Show()
}

func (r *Runner) drawPage(style render.PageStyle, bg tcell.Color) {
	text := tcell.StyleDefault.Foreground(toTcell(style.Text)).Background(bg)
	link := tcell.StyleDefault.Foreground(toTcell(over(style.Outline, style.Background))).Background(bg).Underline(true)
	hovered := r.page.tracker.Current()

	for _, it := range r.page.items {
		if it.Text == "" {
			continue
		}
		st := text
		if it.Interactive {
			st = link
			if hovered != nil && hovered == it.Node {
				st = st.Reverse(true)
			}
		}
		col, row := r.cellOf(it.Rect.X, it.Rect.Y)
		for i, ch := range []rune(it.Text) {
			r.screen.SetContent(col+i, row, ch, nil, st)
		}
	}
}

// drawCursor 光标画在所在单元：按下 '•'，悬停 '◎'，否则 '+'
func (r *Runner) drawCursor(bg tcell.Color) {
	state := r.page.backdrop.Cursor().State()
	glyph := '+'
	switch {
	case state.Pressed:
		glyph = '•'
	case state.Hovering:
		glyph = '◎'
	}
	col, row := r.cellOf(state.X, state.Y)
	r.screen.SetContent(col, row, glyph, nil,
		tcell.StyleDefault.Foreground(toTcell(cursorRed)).Background(bg).Bold(true))
}

func (r *Runner) cellCenter(col, row int) (float64, float64) {
	cw, ch := r.opts.Terminal.CellWidth, r.opts.Terminal.CellHeight
	return float64(col*cw + cw/2), float64(row*ch + ch/2)
}

func (r *Runner) cellOf(x, y float64) (int, int) {
	return int(x) / r.opts.Terminal.CellWidth, int(y) / r.opts.Terminal.CellHeight
}

// Page 返回当前页面路由
func (r *Runner) Page() string {
	if r.page == nil {
		return ""
	}
	return r.page.route
}

// Backdrop 返回当前页面的背景装饰
func (r *Runner) Backdrop() *systems.Backdrop {
	if r.page == nil {
		return nil
	}
	return r.page.backdrop
}

// Loop 返回帧循环
func (r *Runner) Loop() *frame.Loop {
	return r.loop
}
