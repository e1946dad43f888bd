// Package viewport 集中处理视口尺寸变化
//
// ParticleField 和 PointerCursor 各自订阅同一个 Adapter，
// 每次尺寸变化时独立地重新计算自己的状态，彼此之间没有顺序依赖。
package viewport

// ResizeFunc 尺寸变化回调
type ResizeFunc func(width, height int)

type subscriber struct {
	id int
	fn ResizeFunc
}

// Adapter 视口尺寸的可观察对象
// 非并发安全：与帧循环在同一个 goroutine 上使用
type Adapter struct {
	width, height int
	nextID        int
	subscribers   []subscriber
}

// NewAdapter 以初始尺寸创建 Adapter
// 负数尺寸会被视为 0
func NewAdapter(width, height int) *Adapter {
	return &Adapter{
		width:  clampDim(width),
		height: clampDim(height),
	}
}

// Size 返回当前视口尺寸
func (a *Adapter) Size() (int, int) {
	return a.width, a.height
}

// Subscribe 注册尺寸变化回调，返回取消订阅函数
// 取消函数可以重复调用
func (a *Adapter) Subscribe(fn ResizeFunc) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	a.nextID++
	id := a.nextID
	a.subscribers = append(a.subscribers, subscriber{id: id, fn: fn})

	return func() {
		for i, s := range a.subscribers {
			if s.id == id {
				a.subscribers = append(a.subscribers[:i], a.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Update 记录新的视口尺寸，尺寸变化时通知所有订阅者
//
// ebiten 的 Layout 每帧都会调用，所以相同尺寸不重复通知。
// 返回是否发生了变化。
func (a *Adapter) Update(width, height int) bool {
	width, height = clampDim(width), clampDim(height)
	if width == a.width && height == a.height {
		return false
	}
	a.width, a.height = width, height

	// 复制一份遍历；回调中被取消的订阅者不再收到本次通知
	subs := make([]subscriber, len(a.subscribers))
	copy(subs, a.subscribers)
	for _, s := range subs {
		if !a.subscribed(s.id) {
			continue
		}
		s.fn(width, height)
	}
	return true
}

func (a *Adapter) subscribed(id int) bool {
	for _, s := range a.subscribers {
		if s.id == id {
			return true
		}
	}
	return false
}

// Subscribers 返回当前订阅者数量
func (a *Adapter) Subscribers() int {
	return len(a.subscribers)
}

func clampDim(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
