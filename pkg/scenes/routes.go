package scenes

import (
	"fmt"
	"path"
	"strings"

	"github.com/thryce/site/pkg/dom"
	"github.com/thryce/site/pkg/embedded"
)

// HomeRoute 首页路由，未知路由都会落到这里
const HomeRoute = "/"

type page struct {
	route string
	file  string
}

// pages 按导航栏顺序排列，file 是 assets/pages 下的标记文件
var pages = []page{
	{"/", "home.html"},
	{"/services", "services.html"},
	{"/projects", "projects.html"},
	{"/team", "team.html"},
	{"/contact", "contact.html"},
}

func pageFile(route string) (string, bool) {
	for _, p := range pages {
		if p.route == route {
			return p.file, true
		}
	}
	return "", false
}

// ResolveRoute 规范化路由；未知路由返回首页
//
// 忽略查询串、片段和末尾斜杠，例如 "/team/?x=1#top" -> "/team"。
func ResolveRoute(route string) string {
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		route = route[:i]
	}
	route = strings.TrimSpace(route)
	if route == "" {
		return HomeRoute
	}
	route = path.Clean("/" + strings.TrimPrefix(route, "/"))
	if _, ok := pageFile(route); ok {
		return route
	}
	return HomeRoute
}

// Routes 按导航顺序返回所有已知路由
func Routes() []string {
	routes := make([]string, 0, len(pages))
	for _, p := range pages {
		routes = append(routes, p.route)
	}
	return routes
}

// LoadPageDocument 读取并解析路由对应的页面标记
func LoadPageDocument(route string) (*dom.Document, error) {
	route = ResolveRoute(route)
	name, _ := pageFile(route)
	file := embedded.PagesDir + "/" + name
	data, err := embedded.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read page %s: %w", route, err)
	}
	doc, err := dom.ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page %s: %w", route, err)
	}
	return doc, nil
}
