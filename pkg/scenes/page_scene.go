package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/thryce/site/pkg/dom"
	"github.com/thryce/site/pkg/game"
	"github.com/thryce/site/pkg/render"
	"github.com/thryce/site/pkg/systems"
)

// 页面标记中的动作
const (
	actionAttr        = "data-action"
	actionToggleTheme = "toggle-theme"
)

// PageDeps 页面场景共享的依赖
// 同一个应用内所有页面共用这些对象，页面切换时只重建页面自身的状态
type PageDeps struct {
	SceneManager *game.SceneManager
	Themes       *game.ThemeStore
	// Field 粒子场配置（Scheduler 和 Viewport 也在这里）
	Field         systems.FieldOptions
	CursorEnabled bool
	Logger        *zap.Logger
}

// PageScene 一个页面：背景装饰 + 页面内容 + 自定义光标
//
// 指针输入经 PointerTracker 转成文档事件；光标和点击处理都挂在同一个 Dispatcher 上。
// 导航和主题切换在事件回调里只做记录，等到 Update 时再执行，
// 避免在事件分发过程中卸载自己。
type PageScene struct {
	route  string
	deps   PageDeps
	logger *zap.Logger

	doc        *dom.Document
	items      []render.PageItem
	dispatcher *dom.Dispatcher
	tracker    *dom.PointerTracker

	backdrop     *systems.Backdrop
	canvas       *render.ImageCanvas
	pageRenderer *render.PageRenderer

	removers    []func()
	downTarget  *html.Node
	pendingNav  string
	toggleTheme bool
	unmounted   bool
}

// NewPageScene 创建并挂载页面场景
func NewPageScene(route string, doc *dom.Document, deps PageDeps) *PageScene {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	route = ResolveRoute(route)

	s := &PageScene{
		route:        route,
		deps:         deps,
		logger:       deps.Logger.Named("PageScene").With(zap.String("route", route)),
		doc:          doc,
		items:        render.LayoutPage(doc),
		dispatcher:   dom.NewDispatcher(),
		canvas:       render.NewImageCanvas(),
		pageRenderer: render.NewPageRenderer(),
	}
	s.tracker = dom.NewPointerTracker(doc, s.dispatcher)

	var themes systems.ThemeSource
	if deps.Themes != nil {
		themes = deps.Themes
	}
	s.backdrop = systems.NewBackdrop(systems.BackdropOptions{
		Field:  deps.Field,
		Themes: themes,
		Logger: deps.Logger,
	})

	s.removers = append(s.removers,
		s.dispatcher.AddListener(dom.PointerDown, s.onPointerDown),
		s.dispatcher.AddListener(dom.PointerUp, s.onPointerUp),
	)
	s.backdrop.Mount(s.canvas, s.dispatcher)

	s.logger.Debug("page mounted", zap.Int("elements", len(s.items)))
	return s
}

// NewPageFactory 返回按路由创建页面的工厂
// 页面标记读取失败时返回 nil，SceneManager 会保持当前页面
func NewPageFactory(deps PageDeps) game.SceneFactory {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(route string) game.Scene {
		doc, err := LoadPageDocument(route)
		if err != nil {
			logger.Error("failed to load page", zap.String("route", route), zap.Error(err))
			return nil
		}
		return NewPageScene(route, doc, deps)
	}
}

// Route 返回页面路由
func (s *PageScene) Route() string {
	return s.route
}

// Title 返回页面标题（来自根元素的 data-title）
func (s *PageScene) Title() string {
	if s.doc == nil {
		return ""
	}
	for c := s.doc.Body().FirstChild; c != nil; c = c.NextSibling {
		if t := dom.Attr(c, "data-title"); t != "" {
			return t
		}
	}
	return ""
}

// PointerMove 指针移动
func (s *PageScene) PointerMove(x, y float64) {
	if s.unmounted {
		return
	}
	s.tracker.Move(x, y)
}

// PointerDown 指针按下
func (s *PageScene) PointerDown() {
	if s.unmounted {
		return
	}
	s.tracker.Down()
}

// PointerUp 指针抬起
func (s *PageScene) PointerUp() {
	if s.unmounted {
		return
	}
	s.tracker.Up()
}

// Backdrop 返回页面的背景装饰
func (s *PageScene) Backdrop() *systems.Backdrop {
	return s.backdrop
}

// Tracker 返回页面的指针跟踪器
func (s *PageScene) Tracker() *dom.PointerTracker {
	return s.tracker
}

// Update 执行上一帧记录下来的导航和主题切换
func (s *PageScene) Update(deltaTime float64) {
	if s.unmounted {
		return
	}
	if s.toggleTheme {
		s.toggleTheme = false
		if s.deps.Themes != nil {
			theme, err := s.deps.Themes.Toggle()
			if err != nil {
				s.logger.Warn("failed to persist theme", zap.Error(err))
			}
			s.logger.Info("theme toggled", zap.String("theme", string(theme)))
		}
	}
	if nav := s.pendingNav; nav != "" {
		s.pendingNav = ""
		if s.deps.SceneManager != nil {
			s.deps.SceneManager.LoadPage(nav)
		}
	}
}

// Draw 从下到上绘制：背景色、粒子场、页面内容、光标
func (s *PageScene) Draw(screen *ebiten.Image) {
	style := render.StyleFor(s.backdrop.Field().Theme())
	screen.Fill(style.Background)
	s.canvas.DrawTo(screen)
	s.pageRenderer.Draw(screen, s.items, style, s.tracker.Current())
	if s.deps.CursorEnabled {
		render.DrawCursor(screen, s.backdrop.Cursor().Layers())
	}
}

// Unmount 卸载页面：停止粒子场、移除所有监听并释放画布，幂等
func (s *PageScene) Unmount() {
	if s.unmounted {
		return
	}
	s.unmounted = true
	s.backdrop.Unmount()
	for _, remove := range s.removers {
		remove()
	}
	s.removers = nil
	s.canvas.Resize(0, 0)
	s.logger.Debug("page unmounted")
}

func (s *PageScene) onPointerDown(ev dom.Event) {
	s.downTarget = ev.Target
}

// onPointerUp 按下和抬起落在同一个元素上视为一次点击
func (s *PageScene) onPointerUp(ev dom.Event) {
	down := s.downTarget
	s.downTarget = nil
	if ev.Target == nil || ev.Target != down {
		return
	}
	s.click(ev.Target)
}

func (s *PageScene) click(target *html.Node) {
	action := ClickActionFor(target)
	if action.ToggleTheme {
		s.toggleTheme = true
		return
	}
	if action.Navigate != "" {
		s.pendingNav = action.Navigate
		s.logger.Debug("navigate", zap.String("to", s.pendingNav))
	}
}
