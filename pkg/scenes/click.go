package scenes

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/thryce/site/pkg/dom"
)

// ClickAction 点击页面元素产生的动作
type ClickAction struct {
	// Navigate 目标路由（已规范化），为空表示不导航
	Navigate string
	// ToggleTheme 切换主题
	ToggleTheme bool
}

// ClickActionFor 解析点击目标（或其祖先）上的动作
//
// data-action="toggle-theme" 优先于链接；链接的 href 经 ResolveRoute 规范化，
// 未知路由会回到首页。
func ClickActionFor(target *html.Node) ClickAction {
	if target == nil {
		return ClickAction{}
	}
	if dom.Closest(target, func(n *html.Node) bool {
		return dom.Attr(n, actionAttr) == actionToggleTheme
	}) != nil {
		return ClickAction{ToggleTheme: true}
	}
	if link := dom.Closest(target, func(n *html.Node) bool {
		return n.DataAtom == atom.A && dom.Attr(n, "href") != ""
	}); link != nil {
		return ClickAction{Navigate: ResolveRoute(dom.Attr(link, "href"))}
	}
	return ClickAction{}
}
