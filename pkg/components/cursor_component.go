package components

import "image/color"

// CursorComponent 自定义光标的运行时状态
// 挂载时为零值，每次指针事件更新，卸载时丢弃（不持久化）
type CursorComponent struct {
	// X, Y 最后一次观测到的指针坐标
	X float64
	Y float64

	// Hovering 指针位于可交互元素（链接、按钮、cursor-pointer）上方时为 true
	Hovering bool

	// Pressed 指针按下到抬起之间为 true
	Pressed bool
}

// CursorLayerKind 光标叠加层的种类
type CursorLayerKind int

const (
	CursorLayerDot      CursorLayerKind = iota // 主圆点
	CursorLayerRing                            // 外圈
	CursorLayerPing                            // 悬停时的扩散点
	CursorLayerPulse                           // 悬停时的脉冲圈
	CursorLayerMagnetic                        // 悬停时的磁吸光晕
	CursorLayerRipple                          // 点击波纹
)

// String 返回层名称（用于日志和调试）
func (k CursorLayerKind) String() string {
	switch k {
	case CursorLayerDot:
		return "dot"
	case CursorLayerRing:
		return "ring"
	case CursorLayerPing:
		return "ping"
	case CursorLayerPulse:
		return "pulse"
	case CursorLayerMagnetic:
		return "magnetic"
	case CursorLayerRipple:
		return "ripple"
	default:
		return "unknown"
	}
}

// CursorLayer 光标叠加层的一个圆形图元
// 由 PointerCursor 根据 CursorComponent 和动画进度计算，渲染器只负责绘制
type CursorLayer struct {
	Kind CursorLayerKind

	// 圆心（屏幕坐标）
	CenterX float64
	CenterY float64

	// Radius 未缩放的半径（像素）
	Radius float64
	// Scale 当前帧的缩放倍数（0 表示不可见）
	Scale float64
	// TargetScale 过渡结束时的缩放倍数；循环动画的层与 Scale 相同
	TargetScale float64

	// Opacity 整层的不透明度 [0, 1]
	Opacity float64
	// Rotation 旋转角度（弧度），只有磁吸光晕使用
	Rotation float64

	// Fill 填充色，Alpha 为 0 表示不填充
	Fill color.RGBA
	// Stroke 描边色，Alpha 为 0 表示不描边
	Stroke      color.RGBA
	StrokeWidth float64
}

// EffectiveRadius 返回缩放后的半径
func (l CursorLayer) EffectiveRadius() float64 {
	return l.Radius * l.Scale
}

// Settled 缩放过渡是否已经结束
func (l CursorLayer) Settled() bool {
	return l.Scale == l.TargetScale
}
