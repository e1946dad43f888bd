package scenes

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/thryce/site/pkg/dom"
	"github.com/thryce/site/pkg/embedded"
)

// 随站点发布的页面里，每个链接和按钮点击后都要有动作
func TestShippedPagesHaveNoInertControls(t *testing.T) {
	embedded.Init(os.DirFS("../.."))
	t.Cleanup(func() { embedded.Init(nil) })

	for _, route := range Routes() {
		t.Run(route, func(t *testing.T) {
			doc, err := LoadPageDocument(route)
			require.NoError(t, err)

			doc.Walk(func(n *html.Node, _ dom.Rect) {
				if n.DataAtom != atom.A && n.DataAtom != atom.Button {
					return
				}
				assert.NotEqual(t, ClickAction{}, ClickActionFor(n),
					"<%s id=%q> does nothing when clicked", n.Data, dom.Attr(n, "id"))
			})
		})
	}
}

func TestContactPagePointsToCLI(t *testing.T) {
	embedded.Init(os.DirFS("../.."))
	t.Cleanup(func() { embedded.Init(nil) })

	doc, err := LoadPageDocument("/contact")
	require.NoError(t, err)
	assert.Nil(t, doc.GetElementByID("submit"))

	cmd := doc.GetElementByID("contact-command")
	require.NotNil(t, cmd)
	assert.Contains(t, dom.TextContent(cmd), "thryce contact send")
}
