package dom

import "golang.org/x/net/html"

// PointerTracker 把原始指针输入转换成文档事件
//
// 每次移动时对文档做命中测试，目标元素变化时依次派发
// PointerOut(旧目标) 和 PointerOver(新目标)，与浏览器 mouseout/mouseover 顺序一致。
type PointerTracker struct {
	doc        *Document
	dispatcher *Dispatcher
	current    *html.Node
	x, y       float64
}

// NewPointerTracker 创建指针跟踪器，doc 可以为 nil（此时不会产生 over/out 事件）
func NewPointerTracker(doc *Document, dispatcher *Dispatcher) *PointerTracker {
	return &PointerTracker{doc: doc, dispatcher: dispatcher}
}

// Move 处理指针移动
func (p *PointerTracker) Move(x, y float64) {
	p.x, p.y = x, y
	p.dispatcher.Dispatch(Event{Type: PointerMove, X: x, Y: y, Target: p.current})

	var target *html.Node
	if p.doc != nil {
		target = p.doc.HitTest(x, y)
	}
	if target == p.current {
		return
	}
	if p.current != nil {
		p.dispatcher.Dispatch(Event{Type: PointerOut, X: x, Y: y, Target: p.current})
	}
	p.current = target
	if target != nil {
		p.dispatcher.Dispatch(Event{Type: PointerOver, X: x, Y: y, Target: target})
	}
}

// Down 处理指针按下
func (p *PointerTracker) Down() {
	p.dispatcher.Dispatch(Event{Type: PointerDown, X: p.x, Y: p.y, Target: p.current})
}

// Up 处理指针抬起
func (p *PointerTracker) Up() {
	p.dispatcher.Dispatch(Event{Type: PointerUp, X: p.x, Y: p.y, Target: p.current})
}

// Current 返回当前悬停的元素
func (p *PointerTracker) Current() *html.Node {
	return p.current
}

// Position 返回最后一次指针坐标
func (p *PointerTracker) Position() (float64, float64) {
	return p.x, p.y
}
