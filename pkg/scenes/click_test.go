package scenes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thryce/site/pkg/dom"
)

func TestClickActionFor(t *testing.T) {
	doc, err := dom.ParseString(`
<a id="team" href="/team"><span id="team-label">Team</span></a>
<a id="external" href="https://example.test/x">Out</a>
<a id="empty">No href</a>
<button id="toggle" data-action="toggle-theme"><span id="toggle-label">T</span></button>
<a id="nested" href="/projects"><button id="inner" data-action="toggle-theme">T</button></a>
<p id="plain">text</p>`)
	require.NoError(t, err)

	tests := []struct {
		id   string
		want ClickAction
	}{
		{"team", ClickAction{Navigate: "/team"}},
		{"team-label", ClickAction{Navigate: "/team"}},
		{"external", ClickAction{Navigate: "/"}},
		{"empty", ClickAction{}},
		{"toggle", ClickAction{ToggleTheme: true}},
		{"toggle-label", ClickAction{ToggleTheme: true}},
		{"inner", ClickAction{ToggleTheme: true}},
		{"plain", ClickAction{}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			n := doc.GetElementByID(tt.id)
			require.NotNil(t, n)
			assert.Equal(t, tt.want, ClickActionFor(n))
		})
	}

	assert.Equal(t, ClickAction{}, ClickActionFor(nil))
}
