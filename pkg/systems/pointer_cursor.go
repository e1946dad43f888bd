package systems

import (
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/thryce/site/pkg/components"
	"github.com/thryce/site/pkg/dom"
	"github.com/thryce/site/pkg/easing"
	"github.com/thryce/site/pkg/frame"
	"github.com/thryce/site/pkg/types"
	"github.com/thryce/site/pkg/viewport"
)

// 光标叠加层的尺寸（像素，半径）
const (
	cursorDotRadius      = 8
	cursorRingRadius     = 20
	cursorPingRadius     = 6
	cursorPulseRadius    = 15
	cursorMagneticRadius = 30
	cursorRippleRadius   = 24
)

// 光标动画时长（秒）
const (
	dotTransition    = 0.2 // 圆点缩放和位置的过渡
	ringTransition   = 0.3 // 外圈缩放和位置的过渡
	pingPeriod       = 1.0 // 悬停扩散点一个周期
	pulsePeriod      = 2.0 // 悬停脉冲圈一个周期
	pulseDelay       = 0.1 // 脉冲圈相对悬停开始的延迟
	magneticPeriod   = 3.0 // 磁吸光晕旋转一圈
	ripplePeriod     = 0.6 // 点击波纹一个周期
	pingPeakFraction = 0.75
)

// DefaultFrameDuration 默认每帧的时长（ebiten 默认 60 TPS）
const DefaultFrameDuration = time.Second / 60

// 光标配色（red-400 / red-300）
var (
	cursorDotFill       = types.RGBA(248, 113, 113, 0.8)
	cursorDotStroke     = types.RGBA(252, 165, 165, 1)
	cursorRingStroke    = types.RGBA(248, 113, 113, 0.4)
	cursorRingHoverLine = types.RGBA(252, 165, 165, 0.6)
	cursorRingHoverFill = types.RGBA(248, 113, 113, 0.1)
	cursorPingFill      = types.RGBA(248, 113, 113, 0.4)
	cursorPulseStroke   = types.RGBA(252, 165, 165, 0.3)
	cursorMagneticFill  = types.RGBA(248, 113, 113, 0.2)
	cursorRippleStroke  = types.RGBA(252, 165, 165, 0.5)
)

// CursorOptions 自定义光标配置
type CursorOptions struct {
	Viewport *viewport.Adapter
	// Scheduler 驱动过渡和循环动画；nil 时只能手动调用 Tick
	Scheduler frame.Scheduler
	// FrameDuration 每次 Tick 推进的时间，<= 0 时使用 DefaultFrameDuration
	FrameDuration time.Duration
	Logger        *zap.Logger
}

// PointerCursor 跟随指针的装饰性光标
//
// 指针移动时更新坐标，按下/抬起切换 Pressed，
// 指针进入/离开可交互元素时切换 Hovering。
// 状态立即更新；叠加层的缩放和位置按帧缓出到新目标，悬停和按下时还有循环动画。
// 只在有动画进行时请求帧，静止的光标不占用帧循环。
// 所有操作都不会失败，最坏情况只是光标样式暂时不正确。
type PointerCursor struct {
	opts   CursorOptions
	logger *zap.Logger
	dt     float64

	state  components.CursorComponent
	layers []components.CursorLayer

	// 过渡
	dotScale, ringScale tween
	dotX, dotY          tween
	ringX, ringY        tween
	positioned          bool

	// 循环动画从悬停/按下开始计时（秒）
	hoverElapsed float64
	pressElapsed float64

	pending      frame.Handle
	tickFn       func()
	removers     []func()
	cancelResize func()
	mounted      bool
	tornDown     bool
}

// NewPointerCursor 创建光标，状态为零值
func NewPointerCursor(opts CursorOptions) *PointerCursor {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.FrameDuration <= 0 {
		opts.FrameDuration = DefaultFrameDuration
	}
	c := &PointerCursor{
		opts:      opts,
		logger:    opts.Logger.Named("PointerCursor"),
		dt:        opts.FrameDuration.Seconds(),
		dotScale:  newTween(1, dotTransition, easing.OutCubic),
		ringScale: newTween(1, ringTransition, easing.OutCubic),
		dotX:      newTween(0, dotTransition, easing.OutCubic),
		dotY:      newTween(0, dotTransition, easing.OutCubic),
		ringX:     newTween(0, ringTransition, easing.OutCubic),
		ringY:     newTween(0, ringTransition, easing.OutCubic),
	}
	c.tickFn = c.Tick
	c.relayout()
	return c
}

// Mount 在文档事件分发器上注册监听，并订阅视口尺寸变化
// 重复调用或 Teardown 之后调用无效果
func (c *PointerCursor) Mount(d *dom.Dispatcher) {
	if c.mounted || c.tornDown || d == nil {
		return
	}
	c.mounted = true

	c.removers = append(c.removers,
		d.AddListener(dom.PointerMove, func(ev dom.Event) { c.OnPointerMove(ev.X, ev.Y) }),
		d.AddListener(dom.PointerDown, func(dom.Event) { c.OnPointerDown() }),
		d.AddListener(dom.PointerUp, func(dom.Event) { c.OnPointerUp() }),
		d.AddListener(dom.PointerOver, func(ev dom.Event) { c.OnHoverEnter(ev.Target) }),
		d.AddListener(dom.PointerOut, func(ev dom.Event) { c.OnHoverLeave(ev.Target) }),
	)
	if c.opts.Viewport != nil {
		c.cancelResize = c.opts.Viewport.Subscribe(c.OnResize)
	}
	c.schedule()
	c.logger.Debug("mounted")
}

// Teardown 取消挂起的帧请求，移除所有监听和尺寸订阅，幂等
func (c *PointerCursor) Teardown() {
	if c.tornDown {
		return
	}
	c.tornDown = true
	if c.opts.Scheduler != nil && c.pending != 0 {
		c.opts.Scheduler.Cancel(c.pending)
	}
	c.pending = 0
	for _, remove := range c.removers {
		remove()
	}
	c.removers = nil
	if c.cancelResize != nil {
		c.cancelResize()
		c.cancelResize = nil
	}
	c.logger.Debug("torn down")
}

// Tick 推进一帧动画；还有动画在进行时请求下一帧
// Teardown 之后是无操作
func (c *PointerCursor) Tick() {
	if c.tornDown {
		return
	}
	// 手动调用时丢弃已挂起的请求，保证最多一个
	if c.opts.Scheduler != nil && c.pending != 0 {
		c.opts.Scheduler.Cancel(c.pending)
	}
	c.pending = 0
	for _, tw := range []*tween{&c.dotScale, &c.ringScale, &c.dotX, &c.dotY, &c.ringX, &c.ringY} {
		tw.advance(c.dt)
	}
	if c.state.Hovering {
		c.hoverElapsed += c.dt
	}
	if c.state.Pressed {
		c.pressElapsed += c.dt
	}
	c.relayout()
	c.schedule()
}

// Animating 是否还有过渡或循环动画在进行
func (c *PointerCursor) Animating() bool {
	if c.state.Hovering || c.state.Pressed {
		return true
	}
	for _, tw := range []*tween{&c.dotScale, &c.ringScale, &c.dotX, &c.dotY, &c.ringX, &c.ringY} {
		if !tw.done() {
			return true
		}
	}
	return false
}

// OnPointerMove 无条件更新坐标
// 第一次移动直接定位，之后叠加层缓出跟随
func (c *PointerCursor) OnPointerMove(x, y float64) {
	if c.tornDown {
		return
	}
	c.state.X, c.state.Y = x, y
	if !c.positioned {
		c.positioned = true
		c.dotX.snap(x)
		c.dotY.snap(y)
		c.ringX.snap(x)
		c.ringY.snap(y)
	}
	c.changed()
}

// OnPointerDown 指针按下，点击波纹从头开始
func (c *PointerCursor) OnPointerDown() {
	if c.tornDown {
		return
	}
	if !c.state.Pressed {
		c.pressElapsed = 0
	}
	c.state.Pressed = true
	c.changed()
}

// OnPointerUp 指针抬起
func (c *PointerCursor) OnPointerUp() {
	if c.tornDown {
		return
	}
	c.state.Pressed = false
	c.changed()
}

// OnHoverEnter 指针进入元素：目标（或其祖先）可交互时 Hovering = true
func (c *PointerCursor) OnHoverEnter(target *html.Node) {
	if c.tornDown || !dom.IsInteractiveElement(target) {
		return
	}
	if !c.state.Hovering {
		c.hoverElapsed = 0
	}
	c.state.Hovering = true
	c.changed()
}

// OnHoverLeave 指针离开元素：目标（或其祖先）可交互时 Hovering = false
func (c *PointerCursor) OnHoverLeave(target *html.Node) {
	if c.tornDown || !dom.IsInteractiveElement(target) {
		return
	}
	c.state.Hovering = false
	c.changed()
}

// OnResize 视口变化时把坐标限制在新视口内
func (c *PointerCursor) OnResize(width, height int) {
	if c.tornDown {
		return
	}
	c.state.X = clamp(c.state.X, 0, float64(width))
	c.state.Y = clamp(c.state.Y, 0, float64(height))
	c.changed()
}

// State 返回当前光标状态
func (c *PointerCursor) State() components.CursorComponent {
	return c.state
}

// Layers 返回当前叠加层（从下到上）
func (c *PointerCursor) Layers() []components.CursorLayer {
	out := make([]components.CursorLayer, len(c.layers))
	copy(out, c.layers)
	return out
}

// changed 状态变化后重新计算叠加层，并在需要时启动帧循环
func (c *PointerCursor) changed() {
	c.relayout()
	c.schedule()
}

// schedule 有动画且没有挂起请求时请求下一帧
func (c *PointerCursor) schedule() {
	if c.opts.Scheduler == nil || !c.mounted || c.tornDown || c.pending != 0 {
		return
	}
	if !c.Animating() {
		return
	}
	c.pending = c.opts.Scheduler.Request(c.tickFn)
}

// relayout 根据状态设置过渡目标，并用当前动画进度生成叠加层
//
// 缩放优先级：按下 > 悬停 > 默认
// 从下到上：磁吸光晕、点击波纹、脉冲圈、扩散点、外圈、圆点
func (c *PointerCursor) relayout() {
	s := c.state

	dotTarget, ringTarget := 1.0, 1.0
	switch {
	case s.Pressed:
		dotTarget, ringTarget = 0.75, 0.5
	case s.Hovering:
		dotTarget, ringTarget = 0, 1.5
	}
	c.dotScale.retarget(dotTarget)
	c.ringScale.retarget(ringTarget)
	c.dotX.retarget(s.X)
	c.dotY.retarget(s.Y)
	c.ringX.retarget(s.X)
	c.ringY.retarget(s.Y)

	layers := c.layers[:0]
	at := func(l components.CursorLayer) components.CursorLayer {
		l.CenterX, l.CenterY = s.X, s.Y
		l.TargetScale = l.Scale
		return l
	}

	if s.Hovering {
		layers = append(layers, at(components.CursorLayer{
			Kind: components.CursorLayerMagnetic, Radius: cursorMagneticRadius, Scale: 1, Opacity: 1,
			Rotation: 2 * math.Pi * easing.Phase(c.hoverElapsed, magneticPeriod),
			Fill:     cursorMagneticFill,
		}))
	}
	if s.Pressed {
		scale, opacity := ping(c.pressElapsed, ripplePeriod)
		layers = append(layers, at(components.CursorLayer{
			Kind: components.CursorLayerRipple, Radius: cursorRippleRadius, Scale: scale, Opacity: opacity,
			Stroke: cursorRippleStroke, StrokeWidth: 2,
		}))
	}
	if s.Hovering {
		scale, opacity := ping(c.hoverElapsed, pingPeriod)
		layers = append(layers,
			at(components.CursorLayer{
				Kind: components.CursorLayerPulse, Radius: cursorPulseRadius, Scale: 1,
				Opacity: pulse(c.hoverElapsed - pulseDelay),
				Stroke:  cursorPulseStroke, StrokeWidth: 1,
			}),
			at(components.CursorLayer{
				Kind: components.CursorLayerPing, Radius: cursorPingRadius, Scale: scale, Opacity: opacity,
				Fill: cursorPingFill,
			}),
		)
	}

	ring := components.CursorLayer{
		Kind: components.CursorLayerRing, Radius: cursorRingRadius,
		CenterX: c.ringX.value(), CenterY: c.ringY.value(),
		Scale: c.ringScale.value(), TargetScale: ringTarget, Opacity: 1,
		Stroke: cursorRingStroke, StrokeWidth: 1,
	}
	if s.Hovering {
		ring.Stroke = cursorRingHoverLine
		ring.Fill = cursorRingHoverFill
	}
	dot := components.CursorLayer{
		Kind: components.CursorLayerDot, Radius: cursorDotRadius,
		CenterX: c.dotX.value(), CenterY: c.dotY.value(),
		Scale: c.dotScale.value(), TargetScale: dotTarget, Opacity: 1,
		Fill: cursorDotFill, Stroke: cursorDotStroke, StrokeWidth: 2,
	}
	c.layers = append(layers, ring, dot)
}

// ping 扩散动画：前 75% 从 1 倍放大到 2 倍并淡出，剩余时间保持不可见
func ping(elapsed, period float64) (scale, opacity float64) {
	p := easing.Phase(elapsed, period) / pingPeakFraction
	if p > 1 {
		p = 1
	}
	e := easing.OutCubic(p)
	return easing.Lerp(1, 2, e), 1 - e
}

// pulse 脉冲动画：不透明度在 1 和 0.5 之间往返，延迟期间保持 1
func pulse(elapsed float64) float64 {
	if elapsed <= 0 {
		return 1
	}
	p := easing.Phase(elapsed, pulsePeriod)
	tri := p * 2
	if p >= 0.5 {
		tri = (1 - p) * 2
	}
	return 1 - 0.5*easing.InOutCubic(tri)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
