package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdapterNotifiesOnChange(t *testing.T) {
	a := NewAdapter(800, 600)

	var got [][2]int
	cancel := a.Subscribe(func(w, h int) { got = append(got, [2]int{w, h}) })
	defer cancel()

	assert.False(t, a.Update(800, 600), "same size must not notify")
	assert.True(t, a.Update(1024, 768))
	assert.True(t, a.Update(0, 0))

	assert.Equal(t, [][2]int{{1024, 768}, {0, 0}}, got)
	w, h := a.Size()
	assert.Equal(t, 0, w)
	assert.Equal(t, 0, h)
}

func TestAdapterNegativeSizeClamped(t *testing.T) {
	a := NewAdapter(-5, 10)
	w, h := a.Size()
	assert.Equal(t, 0, w)
	assert.Equal(t, 10, h)

	a.Update(-1, -1)
	w, h = a.Size()
	assert.Equal(t, 0, w)
	assert.Equal(t, 0, h)
}

func TestAdapterCancel(t *testing.T) {
	a := NewAdapter(10, 10)
	calls := 0
	cancel := a.Subscribe(func(int, int) { calls++ })
	assert.Equal(t, 1, a.Subscribers())

	cancel()
	cancel()
	assert.Equal(t, 0, a.Subscribers())

	a.Update(20, 20)
	assert.Equal(t, 0, calls)
}

// 订阅者之间互不影响：一个订阅者在回调中取消自己不会跳过其它订阅者
func TestAdapterCancelDuringNotify(t *testing.T) {
	a := NewAdapter(10, 10)
	var cancelFirst func()
	first, second := 0, 0
	cancelFirst = a.Subscribe(func(int, int) {
		first++
		cancelFirst()
	})
	a.Subscribe(func(int, int) { second++ })

	a.Update(20, 20)
	a.Update(30, 30)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

// 前一个订阅者在回调中取消后一个：后一个不再收到本次通知
func TestAdapterCancelOtherDuringNotify(t *testing.T) {
	a := NewAdapter(10, 10)
	var cancelSecond func()
	second := 0
	a.Subscribe(func(int, int) { cancelSecond() })
	cancelSecond = a.Subscribe(func(int, int) { second++ })

	assert.True(t, a.Update(20, 20))
	assert.Equal(t, 0, second)
	assert.Equal(t, 1, a.Subscribers())
}

func TestAdapterNilSubscriber(t *testing.T) {
	a := NewAdapter(1, 1)
	cancel := a.Subscribe(nil)
	cancel()
	assert.Equal(t, 0, a.Subscribers())
}
