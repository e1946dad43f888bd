package dom

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// InteractiveMarkerClass 显式标记可点击元素的类名
const InteractiveMarkerClass = "cursor-pointer"

// IsInteractiveElement 判断节点是否属于"可交互元素"
//
// 这是一个结构性的启发式判断，不是契约：从 n 开始沿祖先链向上，
// 任一元素的标签为 <a>/<button>，或 class 中包含 cursor-pointer，即视为可交互。
// 不符合这些规则的自定义交互控件会被漏判，这是已知且接受的行为。
func IsInteractiveElement(n *html.Node) bool {
	return Closest(n, isInteractiveNode) != nil
}

func isInteractiveNode(n *html.Node) bool {
	switch n.DataAtom {
	case atom.A, atom.Button:
		return true
	}
	return HasClass(n, InteractiveMarkerClass)
}
