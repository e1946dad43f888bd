package dom

import "golang.org/x/net/html"

// EventType 指针事件类型
type EventType int

const (
	PointerMove EventType = iota // 指针移动
	PointerDown                  // 按下
	PointerUp                    // 抬起
	PointerOver                  // 进入元素（冒泡到文档）
	PointerOut                   // 离开元素（冒泡到文档）
)

// String 返回事件名称
func (t EventType) String() string {
	switch t {
	case PointerMove:
		return "pointermove"
	case PointerDown:
		return "pointerdown"
	case PointerUp:
		return "pointerup"
	case PointerOver:
		return "pointerover"
	case PointerOut:
		return "pointerout"
	default:
		return "unknown"
	}
}

// Event 指针事件
type Event struct {
	Type EventType
	X, Y float64
	// Target 事件目标元素，可能为 nil（指针下方没有可命中元素）
	Target *html.Node
}

// Listener 事件监听函数
type Listener func(Event)

type listenerEntry struct {
	id int
	fn Listener
}

// Dispatcher 文档级事件分发器（相当于 document/window 上的 addEventListener）
// 非并发安全：与帧循环在同一个 goroutine 上使用
type Dispatcher struct {
	nextID    int
	listeners map[EventType][]listenerEntry
}

// NewDispatcher 创建事件分发器
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]listenerEntry),
	}
}

// AddListener 注册监听函数，返回移除函数（可重复调用）
func (d *Dispatcher) AddListener(t EventType, fn Listener) (remove func()) {
	if fn == nil {
		return func() {}
	}
	d.nextID++
	id := d.nextID
	d.listeners[t] = append(d.listeners[t], listenerEntry{id: id, fn: fn})

	return func() {
		entries := d.listeners[t]
		for i, e := range entries {
			if e.id == id {
				d.listeners[t] = append(entries[:i], entries[i+1:]...)
				return
			}
		}
	}
}

// Dispatch 按注册顺序把事件交给所有监听函数
func (d *Dispatcher) Dispatch(ev Event) {
	entries := d.listeners[ev.Type]
	if len(entries) == 0 {
		return
	}
	// 分发期间新注册的监听不参与本次分发；被移除的监听不再调用
	snapshot := make([]listenerEntry, len(entries))
	copy(snapshot, entries)
	for _, e := range snapshot {
		if !d.registered(ev.Type, e.id) {
			continue
		}
		e.fn(ev)
	}
}

func (d *Dispatcher) registered(t EventType, id int) bool {
	for _, e := range d.listeners[t] {
		if e.id == id {
			return true
		}
	}
	return false
}

// ListenerCount 返回所有类型的监听函数总数
func (d *Dispatcher) ListenerCount() int {
	total := 0
	for _, entries := range d.listeners {
		total += len(entries)
	}
	return total
}
