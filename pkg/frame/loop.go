// Package frame 提供动画帧调度（类似浏览器的 requestAnimationFrame）
//
// 回调在宿主循环（ebiten Update 或终端 ticker）调用 Pump() 时同步执行，
// 因此所有回调与指针事件处理都在同一个 goroutine 上，不存在数据竞争。
package frame

// Handle 帧请求句柄，0 为无效句柄
type Handle uint64

// Scheduler 帧调度接口
// ParticleField 只依赖这个接口，测试中可以直接使用 Loop 手动驱动
type Scheduler interface {
	// Request 请求在下一帧执行回调，返回可用于取消的句柄
	Request(cb func()) Handle
	// Cancel 取消尚未执行的请求；对已执行或未知的句柄无效果
	Cancel(h Handle)
}

type request struct {
	handle Handle
	cb     func()
}

// Loop 是 Scheduler 的默认实现
// 非并发安全：只能在宿主循环所在的 goroutine 上使用
type Loop struct {
	nextHandle uint64
	pending    []request
	inflight   []request // 正在执行的批次
	frames     uint64
}

// NewLoop 创建一个新的帧循环
func NewLoop() *Loop {
	return &Loop{
		nextHandle: 1, // 0 保留为无效句柄
		pending:    make([]request, 0, 4),
	}
}

// Request 请求在下一次 Pump 时执行回调
func (l *Loop) Request(cb func()) Handle {
	if cb == nil {
		return 0
	}
	h := Handle(l.nextHandle)
	l.nextHandle++
	l.pending = append(l.pending, request{handle: h, cb: cb})
	return h
}

// Cancel 取消挂起的请求
func (l *Loop) Cancel(h Handle) {
	if h == 0 {
		return
	}
	for i, r := range l.pending {
		if r.handle == h {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return
		}
	}
	// 回调中取消同批次中尚未执行的请求
	for i := range l.inflight {
		if l.inflight[i].handle == h {
			l.inflight[i].cb = nil
			return
		}
	}
}

// Pump 执行本帧开始时已挂起的所有回调，返回执行的回调数
//
// 回调内部发起的新请求不会在本次 Pump 中执行，而是留到下一帧，
// 这样自我调度的回调（如 ParticleField.Tick）每帧只运行一次。
// 回调中取消同批次的其它请求同样生效。
func (l *Loop) Pump() int {
	l.frames++
	if len(l.pending) == 0 {
		return 0
	}

	l.inflight = l.pending
	l.pending = make([]request, 0, len(l.inflight))
	defer func() { l.inflight = nil }()

	ran := 0
	for i := range l.inflight {
		cb := l.inflight[i].cb
		if cb == nil {
			continue
		}
		l.inflight[i].cb = nil
		cb()
		ran++
	}
	return ran
}

// Pending 返回当前挂起的请求数
func (l *Loop) Pending() int {
	return len(l.pending)
}

// Frames 返回 Pump 被调用的总次数
func (l *Loop) Frames() uint64 {
	return l.frames
}
