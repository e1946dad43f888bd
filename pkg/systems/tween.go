package systems

import "github.com/thryce/site/pkg/easing"

// tween 单个数值的过渡（相当于 CSS transition）
//
// 目标改变时从当前值重新开始过渡，所以中途改变方向不会跳变。
type tween struct {
	from     float64
	to       float64
	elapsed  float64 // 秒
	duration float64 // 秒
	ease     easing.Func
}

func newTween(value, duration float64, ease easing.Func) tween {
	return tween{from: value, to: value, elapsed: duration, duration: duration, ease: ease}
}

// retarget 设置新的目标值；目标不变时不打断正在进行的过渡
func (tw *tween) retarget(to float64) {
	if to == tw.to {
		return
	}
	tw.from = tw.value()
	tw.to = to
	tw.elapsed = 0
}

// snap 立即跳到 v，不产生过渡
func (tw *tween) snap(v float64) {
	tw.from, tw.to = v, v
	tw.elapsed = tw.duration
}

func (tw *tween) advance(dt float64) {
	if tw.done() {
		return
	}
	tw.elapsed += dt
}

func (tw *tween) done() bool {
	return tw.elapsed >= tw.duration
}

// value 当前值；过渡结束后精确等于目标值
func (tw *tween) value() float64 {
	if tw.done() {
		return tw.to
	}
	return easing.Lerp(tw.from, tw.to, tw.ease(easing.Progress(tw.elapsed, tw.duration)))
}
