package components

import "image/color"

// ParticleComponent represents a single dot of the background particle field.
// It stores the runtime state of one particle: position, velocity, radius and
// the colour picked from the active theme's palette.
//
// Particles are created and owned by exactly one ParticleField, which advances
// them every frame and replaces the whole population on resize or theme change.
//
// This is a pure data component - it contains no methods.
type ParticleComponent struct {
	// Position (画布坐标, 像素)
	// 始终位于 [0, width) x [0, height) 内，越界时回绕而不是销毁
	X float64
	Y float64

	// Velocity (速度, 像素/帧)
	// 创建时随机确定，之后不再修改
	VX float64
	VY float64

	// Radius (半径, 像素)
	Radius float64

	// Color 创建时从当前主题调色板中选取
	Color color.RGBA
}
