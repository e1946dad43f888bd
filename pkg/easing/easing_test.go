package easing

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 0.001
}

// TestOutCubic 测试三次方缓出
func TestOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"中点", 0.5, 0.875}, // 1 - (1-0.5)^3
		{"终点", 1.0, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutCubic(tt.input); !almostEqual(got, tt.expected) {
				t.Errorf("OutCubic(%v) = %v, 期望 %v", tt.input, got, tt.expected)
			}
		})
	}

	// 开始快于线性
	for p := 0.1; p < 0.5; p += 0.1 {
		if OutCubic(p) <= Linear(p) {
			t.Errorf("OutCubic(%v) 应该大于线性值", p)
		}
	}
}

// TestInOutCubic 测试三次方缓入缓出：关于中点对称
func TestInOutCubic(t *testing.T) {
	if !almostEqual(InOutCubic(0), 0) || !almostEqual(InOutCubic(1), 1) {
		t.Fatalf("端点错误: %v %v", InOutCubic(0), InOutCubic(1))
	}
	if !almostEqual(InOutCubic(0.5), 0.5) {
		t.Errorf("InOutCubic(0.5) = %v, 期望 0.5", InOutCubic(0.5))
	}
	for p := 0.1; p < 0.5; p += 0.1 {
		if !almostEqual(InOutCubic(p), 1-InOutCubic(1-p)) {
			t.Errorf("InOutCubic 在 %v 处不对称", p)
		}
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, expected float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.5, 5},
		{1.5, 0.5, 0.5, 1},
	}
	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); !almostEqual(got, tt.expected) {
			t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, got, tt.expected)
		}
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name              string
		elapsed, duration float64
		expected          float64
	}{
		{"未开始", 0, 0.2, 0},
		{"负数", -1, 0.2, 0},
		{"一半", 0.1, 0.2, 0.5},
		{"结束", 0.2, 0.2, 1},
		{"超出", 5, 0.2, 1},
		{"零时长", 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(tt.elapsed, tt.duration); !almostEqual(got, tt.expected) {
				t.Errorf("Progress(%v, %v) = %v, 期望 %v", tt.elapsed, tt.duration, got, tt.expected)
			}
		})
	}
}

func TestPhase(t *testing.T) {
	if got := Phase(2.5, 1); !almostEqual(got, 0.5) {
		t.Errorf("Phase(2.5, 1) = %v, 期望 0.5", got)
	}
	if got := Phase(0, 1); got != 0 {
		t.Errorf("Phase(0, 1) = %v, 期望 0", got)
	}
	if got := Phase(1, 0); got != 0 {
		t.Errorf("Phase(1, 0) = %v, 期望 0", got)
	}
}
