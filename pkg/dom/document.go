// Package dom 提供页面标记的最小文档模型
//
// 页面以 HTML 片段描述，元素通过 data-rect="x,y,w,h" 声明命中区域。
// 本包负责解析标记、根据指针坐标做命中测试、分发指针事件，
// 并提供光标悬停所用的 IsInteractiveElement 启发式判断。
package dom

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Rect 元素的命中区域（屏幕坐标）
type Rect struct {
	X, Y, W, H float64
}

// Contains 判断点是否落在矩形内（左上闭、右下开）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Document 解析后的页面文档
type Document struct {
	root *html.Node
	body *html.Node
}

// Parse 解析 HTML 片段为 Document
// 片段会被放在 <body> 内解析，与浏览器行为一致
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page markup: %w", err)
	}
	doc := &Document{root: root}
	doc.body = findFirst(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Body
	})
	if doc.body == nil {
		doc.body = root
	}
	return doc, nil
}

// ParseString 解析字符串形式的 HTML 片段
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Body 返回 <body> 元素
func (d *Document) Body() *html.Node {
	return d.body
}

// GetElementByID 按 id 查找元素
func (d *Document) GetElementByID(id string) *html.Node {
	return findFirst(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && Attr(n, "id") == id
	})
}

// HitTest 返回指针下方最顶层、最深的带命中区域的元素
//
// 后出现的兄弟节点绘制在上层，因此逆序检查子节点。
// 没有 data-rect 的元素自身不可命中，但其子孙仍可命中。
func (d *Document) HitTest(x, y float64) *html.Node {
	return hitTest(d.body, x, y)
}

func hitTest(n *html.Node, x, y float64) *html.Node {
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if hit := hitTest(c, x, y); hit != nil {
			return hit
		}
	}
	if n.Type != html.ElementNode {
		return nil
	}
	if r, ok := ElementRect(n); ok && r.Contains(x, y) {
		return n
	}
	return nil
}

// Walk 按文档顺序遍历所有带命中区域的元素
func (d *Document) Walk(fn func(n *html.Node, r Rect)) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if r, ok := ElementRect(n); ok {
				fn(n, r)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.body)
}

// ElementRect 读取元素的 data-rect 属性
func ElementRect(n *html.Node) (Rect, bool) {
	raw := Attr(n, "data-rect")
	if raw == "" {
		return Rect{}, false
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return Rect{}, false
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Rect{}, false
		}
		v[i] = f
	}
	if v[2] <= 0 || v[3] <= 0 {
		return Rect{}, false
	}
	return Rect{X: v[0], Y: v[1], W: v[2], H: v[3]}, true
}

// Attr 返回元素属性值，不存在时返回空字符串
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasClass 判断元素的 class 列表是否包含指定类名
func HasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(Attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// TextContent 返回元素内所有文本节点拼接后的内容（折叠空白）
func TextContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// Closest 从 n 开始向上查找第一个满足条件的元素（包含 n 自身）
func Closest(n *html.Node, match func(*html.Node) bool) *html.Node {
	for ; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && match(n) {
			return n
		}
	}
	return nil
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}
