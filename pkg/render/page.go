package render

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/net/html"

	"github.com/thryce/site/pkg/dom"
	"github.com/thryce/site/pkg/types"
)

// PageStyle 一个主题下的页面配色
type PageStyle struct {
	Background color.RGBA
	Text       color.RGBA
	Outline    color.RGBA
	Highlight  color.RGBA
}

// StyleFor 返回主题对应的页面配色
func StyleFor(theme types.Theme) PageStyle {
	if theme.IsDark() {
		return PageStyle{
			Background: color.RGBA{R: 10, G: 10, B: 10, A: 255},
			Text:       color.RGBA{R: 243, G: 244, B: 246, A: 255},
			Outline:    types.RGBA(248, 113, 113, 0.6),
			Highlight:  types.RGBA(248, 113, 113, 0.15),
		}
	}
	return PageStyle{
		Background: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Text:       color.RGBA{R: 17, G: 24, B: 39, A: 255},
		Outline:    types.RGBA(239, 68, 68, 0.6),
		Highlight:  types.RGBA(239, 68, 68, 0.1),
	}
}

// PageItem 页面上一个需要绘制的元素
type PageItem struct {
	Rect        dom.Rect
	Text        string
	Interactive bool
	Node        *html.Node
}

// LayoutPage 收集文档中带命中区域的元素（文档顺序）
func LayoutPage(doc *dom.Document) []PageItem {
	if doc == nil {
		return nil
	}
	var items []PageItem
	doc.Walk(func(n *html.Node, r dom.Rect) {
		items = append(items, PageItem{
			Rect:        r,
			Text:        OwnText(n),
			Interactive: dom.IsInteractiveElement(n),
			Node:        n,
		})
	})
	return items
}

// OwnText 返回元素直接包含的文本（不含子元素的文本）
func OwnText(n *html.Node) string {
	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			if s := strings.TrimSpace(c.Data); s != "" {
				parts = append(parts, s)
			}
		}
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// PageRenderer 绘制页面内容（在粒子场之上、光标之下）
//
// DebugPrint 只能输出白色文字，所以先把文字画到离屏图层，再用 ColorScale 着色。
type PageRenderer struct {
	textLayer *ebiten.Image
}

// NewPageRenderer 创建页面渲染器
func NewPageRenderer() *PageRenderer {
	return &PageRenderer{}
}

// Draw 绘制页面元素；hovered 为当前悬停的元素，可为 nil
func (pr *PageRenderer) Draw(dst *ebiten.Image, items []PageItem, style PageStyle, hovered *html.Node) {
	if dst.Bounds().Empty() {
		return
	}
	for _, it := range items {
		if !it.Interactive || it.Node == nil || it.Node.Type != html.ElementNode {
			continue
		}
		// 只给最外层的可交互元素画框，避免链接里的 span 重复描边
		if parent := it.Node.Parent; parent != nil && dom.IsInteractiveElement(parent) {
			continue
		}
		x, y := float32(it.Rect.X), float32(it.Rect.Y)
		w, h := float32(it.Rect.W), float32(it.Rect.H)
		if hovered != nil && dom.Closest(hovered, func(n *html.Node) bool { return n == it.Node }) != nil {
			vector.DrawFilledRect(dst, x, y, w, h, style.Highlight, true)
		}
		vector.StrokeRect(dst, x, y, w, h, 1, style.Outline, true)
	}

	pr.ensureTextLayer(dst)
	pr.textLayer.Clear()
	for _, it := range items {
		if it.Text == "" {
			continue
		}
		ebitenutil.DebugPrintAt(pr.textLayer, it.Text, int(it.Rect.X)+4, int(it.Rect.Y)+4)
	}

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleWithColor(style.Text)
	dst.DrawImage(pr.textLayer, op)
}

func (pr *PageRenderer) ensureTextLayer(dst *ebiten.Image) {
	b := dst.Bounds()
	if pr.textLayer != nil {
		tb := pr.textLayer.Bounds()
		if tb.Dx() == b.Dx() && tb.Dy() == b.Dy() {
			return
		}
		pr.textLayer.Deallocate()
	}
	pr.textLayer = ebiten.NewImage(b.Dx(), b.Dy())
}
