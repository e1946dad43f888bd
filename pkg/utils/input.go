// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerSample 一帧的原始指针采样
// 统一鼠标和触摸输入
type PointerSample struct {
	X, Y    int
	Pressed bool
	// Touch 本次采样来自触摸
	Touch bool
	// Present 是否有可用的指针位置（触摸设备在没有触摸时为 false）
	Present bool
}

// PointerChange 相邻两帧之间的指针变化
type PointerChange struct {
	Moved        bool
	JustPressed  bool
	JustReleased bool
	X, Y         int
}

// PointerState 跟踪指针状态，把逐帧采样转换为移动/按下/抬起事件
type PointerState struct {
	last    PointerSample
	started bool
}

// Advance 输入本帧采样，返回相对上一帧的变化
//
// 触摸抬起后没有位置，此时保留最后一次触摸位置作为抬起坐标。
func (s *PointerState) Advance(sample PointerSample) PointerChange {
	if !sample.Present {
		sample.X, sample.Y = s.last.X, s.last.Y
	}
	change := PointerChange{X: sample.X, Y: sample.Y}
	if sample.Present && (!s.started || sample.X != s.last.X || sample.Y != s.last.Y) {
		change.Moved = true
	}
	change.JustPressed = sample.Pressed && !s.last.Pressed
	change.JustReleased = !sample.Pressed && s.last.Pressed

	if sample.Present {
		s.started = true
	}
	s.last = sample
	return change
}

// Last 返回最后一次采样
func (s *PointerState) Last() PointerSample {
	return s.last
}

// SamplePointer 读取 ebiten 当前的指针输入
// 优先使用触摸（移动设备），否则使用鼠标左键
func SamplePointer() PointerSample {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return PointerSample{X: x, Y: y, Pressed: true, Touch: true, Present: true}
	}

	// 触摸刚刚结束：没有位置，但需要产生一次抬起
	if len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
		return PointerSample{Touch: true}
	}

	if IsMobile() {
		return PointerSample{Touch: true}
	}

	x, y := ebiten.CursorPosition()
	return PointerSample{
		X:       x,
		Y:       y,
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Present: true,
	}
}
