package systems

import (
	"time"

	"go.uber.org/zap"

	"github.com/thryce/site/pkg/dom"
	"github.com/thryce/site/pkg/types"
)

// ThemeSource 主题状态的唯一所有者（由 game.ThemeStore 实现）
type ThemeSource interface {
	Theme() types.Theme
	// Subscribe 注册主题变化回调，返回取消订阅函数
	Subscribe(fn func(types.Theme)) (cancel func())
}

// BackdropOptions 背景装饰的配置
// 主题和粒子数量是显式输入，每个页面共用同一个实现
type BackdropOptions struct {
	Field  FieldOptions
	Themes ThemeSource
	// FrameDuration 宿主循环每帧的时长，光标动画按它推进
	FrameDuration time.Duration
	Logger        *zap.Logger
}

// Backdrop 页面背景装饰：粒子场 + 自定义光标
//
// 页面挂载时 Mount，卸载时 Unmount；Unmount 之后帧循环不会再调用粒子场，
// 光标也不会再响应任何事件。
type Backdrop struct {
	field       *ParticleField
	cursor      *PointerCursor
	themes      ThemeSource
	cancelTheme func()
	logger      *zap.Logger
	mounted     bool
	unmounted   bool
}

// NewBackdrop 创建背景装饰
func NewBackdrop(opts BackdropOptions) *Backdrop {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Field.Logger == nil {
		opts.Field.Logger = opts.Logger
	}
	return &Backdrop{
		field: NewParticleField(opts.Field),
		cursor: NewPointerCursor(CursorOptions{
			Viewport:      opts.Field.Viewport,
			Scheduler:     opts.Field.Scheduler,
			FrameDuration: opts.FrameDuration,
			Logger:        opts.Logger,
		}),
		themes: opts.Themes,
		logger: opts.Logger.Named("Backdrop"),
	}
}

// Mount 挂载粒子场和光标，并订阅主题变化
func (b *Backdrop) Mount(canvas Canvas, d *dom.Dispatcher) {
	if b.mounted || b.unmounted {
		return
	}
	b.mounted = true

	theme := types.ThemeLight
	if b.themes != nil {
		theme = b.themes.Theme()
		b.cancelTheme = b.themes.Subscribe(b.field.SetTheme)
	}
	b.field.Initialize(canvas, theme)
	b.cursor.Mount(d)
}

// Unmount 卸载：取消帧请求、移除所有监听，幂等
func (b *Backdrop) Unmount() {
	if b.unmounted {
		return
	}
	b.unmounted = true
	if b.cancelTheme != nil {
		b.cancelTheme()
		b.cancelTheme = nil
	}
	b.field.Teardown()
	b.cursor.Teardown()
	b.logger.Debug("unmounted")
}

// Field 返回粒子场
func (b *Backdrop) Field() *ParticleField {
	return b.field
}

// Cursor 返回光标
func (b *Backdrop) Cursor() *PointerCursor {
	return b.cursor
}
