package systems

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/thryce/site/pkg/components"
	"github.com/thryce/site/pkg/frame"
	"github.com/thryce/site/pkg/types"
	"github.com/thryce/site/pkg/viewport"
)

// DefaultPopulation 默认粒子数量
const DefaultPopulation = 100

// Canvas is the drawable backing store of a ParticleField.
// The ebiten renderer and the terminal renderer both implement it; tests use
// an in-memory recorder.
type Canvas interface {
	// Resize 调整画布尺寸（像素）
	Resize(width, height int)
	// Clear 清空整个可绘制区域
	Clear()
	// FillCircle 在 (x, y) 绘制实心圆
	FillCircle(x, y, radius float64, clr color.RGBA)
}

// FieldOptions 粒子场配置
type FieldOptions struct {
	// Population 粒子数量，<= 0 时使用 DefaultPopulation
	Population int
	// MinRadius/MaxRadius 半径范围 [MinRadius, MaxRadius)
	MinRadius float64
	MaxRadius float64
	// MaxSpeed 每个轴上的速度范围 [-MaxSpeed, MaxSpeed)（像素/帧）
	MaxSpeed float64
	// Palettes 按主题的调色板，nil 时使用 DefaultPalettes
	Palettes Palettes

	Scheduler frame.Scheduler
	Viewport  *viewport.Adapter
	// Rand 随机源，nil 时使用基于时间的随机源
	Rand   *rand.Rand
	Logger *zap.Logger
}

// withDefaults 填充未设置的选项
func (o FieldOptions) withDefaults() FieldOptions {
	if o.Population <= 0 {
		o.Population = DefaultPopulation
	}
	if o.MaxRadius <= 0 {
		o.MinRadius, o.MaxRadius = 0.5, 2.5
	}
	if o.MinRadius < 0 || o.MinRadius > o.MaxRadius {
		o.MinRadius = 0
	}
	if o.MaxSpeed <= 0 {
		o.MaxSpeed = 0.25
	}
	if o.Palettes == nil {
		o.Palettes = DefaultPalettes()
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// ParticleField renders a continuously animated field of drifting dots as a
// background decoration.
//
// Lifecycle:
//  1. Initialize sizes the canvas to the viewport, seeds the population and
//     requests the first frame
//  2. Tick runs once per frame and re-schedules itself
//  3. OnResize / SetTheme replace the whole population
//  4. Teardown cancels the pending frame and drops the resize subscription
//
// All methods must be called from the goroutine that pumps the scheduler.
type ParticleField struct {
	opts   FieldOptions
	logger *zap.Logger

	canvas    Canvas
	theme     types.Theme
	particles []components.ParticleComponent
	width     float64
	height    float64

	pending      frame.Handle
	cancelResize func()
	initialized  bool
	tornDown     bool
	tickFn       func()
}

// NewParticleField 创建粒子场（尚未挂载）
func NewParticleField(opts FieldOptions) *ParticleField {
	opts = opts.withDefaults()
	f := &ParticleField{
		opts:   opts,
		logger: opts.Logger.Named("ParticleField"),
	}
	// 只创建一次闭包，避免每帧分配
	f.tickFn = f.Tick
	return f
}

// Initialize 挂载粒子场
//
// 画布为 nil（相当于拿不到 2D 上下文）时静默跳过：装饰缺失是可接受的。
// 重复调用无效果；Teardown 之后不能再次初始化。
func (f *ParticleField) Initialize(canvas Canvas, theme types.Theme) {
	if f.initialized || f.tornDown {
		return
	}
	if canvas == nil {
		f.logger.Debug("canvas unavailable, particle field disabled")
		return
	}

	f.canvas = canvas
	f.theme = theme
	f.initialized = true

	width, height := 0, 0
	if f.opts.Viewport != nil {
		width, height = f.opts.Viewport.Size()
		f.cancelResize = f.opts.Viewport.Subscribe(f.OnResize)
	}
	f.resizeAndSeed(width, height)
	f.schedule()

	f.logger.Debug("initialized",
		zap.Int("population", len(f.particles)),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.String("theme", string(theme)))
}

// Tick 执行一帧：清空画布，绘制每个粒子，按速度前进并回绕，然后请求下一帧
//
// Teardown 之后调用是无操作（不修改状态，也不请求新帧）。
func (f *ParticleField) Tick() {
	if !f.initialized || f.tornDown {
		return
	}

	f.canvas.Clear()
	for i := range f.particles {
		p := &f.particles[i]
		f.canvas.FillCircle(p.X, p.Y, p.Radius, p.Color)

		p.X += p.VX
		p.Y += p.VY
		p.X = wrap(p.X, f.width)
		p.Y = wrap(p.Y, f.height)
	}

	f.schedule()
}

// OnResize 视口尺寸变化：调整画布并整体重建粒子
func (f *ParticleField) OnResize(width, height int) {
	if !f.initialized || f.tornDown {
		return
	}
	f.resizeAndSeed(width, height)
	f.logger.Debug("resized", zap.Int("width", width), zap.Int("height", height),
		zap.Int("population", len(f.particles)))
}

// SetTheme 切换主题并用新调色板整体重建粒子
func (f *ParticleField) SetTheme(theme types.Theme) {
	if f.theme == theme {
		return
	}
	f.theme = theme
	if !f.initialized || f.tornDown {
		return
	}
	f.seed()
	f.logger.Debug("theme changed", zap.String("theme", string(theme)))
}

// Teardown 卸载粒子场：取消挂起的帧请求、移除尺寸订阅
// 幂等；初始化前调用也是安全的
func (f *ParticleField) Teardown() {
	if f.tornDown {
		return
	}
	f.tornDown = true

	if f.opts.Scheduler != nil && f.pending != 0 {
		f.opts.Scheduler.Cancel(f.pending)
	}
	f.pending = 0

	if f.cancelResize != nil {
		f.cancelResize()
		f.cancelResize = nil
	}
	f.logger.Debug("torn down")
}

// Particles 返回当前粒子的副本
func (f *ParticleField) Particles() []components.ParticleComponent {
	out := make([]components.ParticleComponent, len(f.particles))
	copy(out, f.particles)
	return out
}

// Size 返回画布尺寸
func (f *ParticleField) Size() (float64, float64) {
	return f.width, f.height
}

// Theme 返回当前主题
func (f *ParticleField) Theme() types.Theme {
	return f.theme
}

// Active 是否已初始化且尚未卸载
func (f *ParticleField) Active() bool {
	return f.initialized && !f.tornDown
}

// schedule 请求下一帧，保证同一时间最多只有一个挂起请求
//
// Tick 既可能由调度器调用，也可能被手动调用；先取消旧请求再申请新请求。
func (f *ParticleField) schedule() {
	if f.opts.Scheduler == nil {
		return
	}
	if f.pending != 0 {
		f.opts.Scheduler.Cancel(f.pending)
	}
	f.pending = f.opts.Scheduler.Request(f.tickFn)
}

func (f *ParticleField) resizeAndSeed(width, height int) {
	f.width = float64(width)
	f.height = float64(height)
	f.canvas.Resize(width, height)
	f.seed()
}

// seed 丢弃现有粒子，重新生成完整的粒子群
// 面积为 0 时没有合法坐标，粒子群为空
func (f *ParticleField) seed() {
	if f.width <= 0 || f.height <= 0 {
		f.particles = f.particles[:0]
		return
	}

	palette := f.opts.Palettes.For(f.theme)
	rng := f.opts.Rand
	particles := make([]components.ParticleComponent, f.opts.Population)
	for i := range particles {
		particles[i] = components.ParticleComponent{
			X:      wrap(rng.Float64()*f.width, f.width),
			Y:      wrap(rng.Float64()*f.height, f.height),
			VX:     rng.Float64()*2*f.opts.MaxSpeed - f.opts.MaxSpeed,
			VY:     rng.Float64()*2*f.opts.MaxSpeed - f.opts.MaxSpeed,
			Radius: f.opts.MinRadius + rng.Float64()*(f.opts.MaxRadius-f.opts.MinRadius),
			Color:  palette[rng.Intn(len(palette))],
		}
	}
	f.particles = particles
}

// wrap 使用边界比较（而不是取模）回绕坐标：
// 小于 0 跳到远端，大于等于边界跳回 0，粒子会"瞬移"而不是平滑过渡。
// 远端取小于 limit 的最大浮点数，保证坐标始终在 [0, limit) 内。
func wrap(v, limit float64) float64 {
	if v >= limit {
		return 0
	}
	if v < 0 {
		return math.Nextafter(limit, 0)
	}
	return v
}
