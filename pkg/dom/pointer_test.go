package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	typ    EventType
	target string
}

func record(d *Dispatcher, out *[]recorded) {
	for _, typ := range []EventType{PointerMove, PointerDown, PointerUp, PointerOver, PointerOut} {
		d.AddListener(typ, func(ev Event) {
			*out = append(*out, recorded{typ: ev.Type, target: Attr(ev.Target, "id")})
		})
	}
}

func TestPointerTrackerOverOutOrder(t *testing.T) {
	doc, err := ParseString(testPage)
	require.NoError(t, err)
	d := NewDispatcher()
	var events []recorded
	record(d, &events)

	p := NewPointerTracker(doc, d)
	p.Move(25, 25)   // home-label
	p.Move(26, 26)   // 同一目标，只有 move
	p.Move(12, 12)   // home
	p.Move(900, 900) // 空白
	p.Down()
	p.Up()

	assert.Equal(t, []recorded{
		{PointerMove, ""},
		{PointerOver, "home-label"},
		{PointerMove, "home-label"},
		{PointerMove, "home-label"},
		{PointerOut, "home-label"},
		{PointerOver, "home"},
		{PointerMove, "home"},
		{PointerOut, "home"},
		{PointerDown, ""},
		{PointerUp, ""},
	}, events)

	x, y := p.Position()
	assert.Equal(t, 900.0, x)
	assert.Equal(t, 900.0, y)
	assert.Nil(t, p.Current())
}

func TestPointerTrackerNilDocument(t *testing.T) {
	d := NewDispatcher()
	var events []recorded
	record(d, &events)

	p := NewPointerTracker(nil, d)
	p.Move(1, 1)
	assert.Equal(t, []recorded{{PointerMove, ""}}, events)
}

func TestDispatcherRemoveListener(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	remove := d.AddListener(PointerMove, func(Event) { calls++ })
	assert.Equal(t, 1, d.ListenerCount())

	d.Dispatch(Event{Type: PointerMove})
	remove()
	remove()
	d.Dispatch(Event{Type: PointerMove})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, d.ListenerCount())
	assert.Equal(t, "pointerover", PointerOver.String())
}

// 分发途中被移除的监听不再调用，新注册的监听等下一次分发
func TestDispatcherRemoveDuringDispatch(t *testing.T) {
	d := NewDispatcher()
	var removeSecond func()
	second, late := 0, 0
	d.AddListener(PointerDown, func(Event) {
		removeSecond()
		d.AddListener(PointerDown, func(Event) { late++ })
	})
	removeSecond = d.AddListener(PointerDown, func(Event) { second++ })

	d.Dispatch(Event{Type: PointerDown})
	assert.Equal(t, 0, second)
	assert.Equal(t, 0, late)

	d.Dispatch(Event{Type: PointerDown})
	assert.Equal(t, 0, second)
	assert.Equal(t, 1, late)
}
