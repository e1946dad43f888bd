package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thryce/site/pkg/easing"
)

func TestTweenRetargetAndConverge(t *testing.T) {
	tw := newTween(1, 0.2, easing.OutCubic)
	assert.True(t, tw.done())
	assert.Equal(t, 1.0, tw.value())

	tw.retarget(0.5)
	assert.False(t, tw.done())
	assert.Equal(t, 1.0, tw.value())

	tw.advance(0.1)
	mid := tw.value()
	assert.Less(t, mid, 1.0)
	assert.Greater(t, mid, 0.5)
	// 缓出：前半段走完了大半路程
	assert.Less(t, mid, 0.75)

	tw.advance(0.1)
	assert.True(t, tw.done())
	assert.Equal(t, 0.5, tw.value())
}

func TestTweenRetargetMidwayStartsFromCurrent(t *testing.T) {
	tw := newTween(0, 1, easing.Linear)
	tw.retarget(10)
	tw.advance(0.5)
	assert.InDelta(t, 5.0, tw.value(), 1e-9)

	tw.retarget(0)
	assert.InDelta(t, 5.0, tw.value(), 1e-9, "no jump when the target changes")
	tw.retarget(0) // 相同目标不重新开始
	tw.advance(0.5)
	assert.InDelta(t, 2.5, tw.value(), 1e-9)
}

func TestTweenSnap(t *testing.T) {
	tw := newTween(0, 0.3, easing.OutCubic)
	tw.retarget(4)
	tw.snap(2)
	assert.True(t, tw.done())
	assert.Equal(t, 2.0, tw.value())
}
