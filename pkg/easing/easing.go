// Package easing 缓动函数
//
// 所有缓动函数接受进度 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 光标叠加层的过渡和循环动画都用这里的曲线计算。
//
// 参考：https://easings.net/
package easing

import "math"

// Func 缓动函数类型
type Func func(t float64) float64

// Linear 线性缓动（无缓动）
func Linear(t float64) float64 {
	return t
}

// OutCubic 三次方缓出：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func OutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// InOutCubic 三次方缓入缓出：开始慢，中间快，结束慢
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func InOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Progress 把经过时间换算成 [0, 1] 内的进度
// duration <= 0 视为已完成
func Progress(elapsed, duration float64) float64 {
	if duration <= 0 || elapsed >= duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return elapsed / duration
}

// Phase 周期动画在一个周期内的进度 [0, 1)
func Phase(elapsed, period float64) float64 {
	if period <= 0 || elapsed <= 0 {
		return 0
	}
	return math.Mod(elapsed, period) / period
}
