package types

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// RGBA 以 CSS rgba() 的方式构造颜色（alpha 为 0~1）
//
// 返回值是 image/color 要求的预乘 alpha 形式
func RGBA(r, g, b uint8, alpha float64) color.RGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	a := uint8(alpha*255 + 0.5)
	premul := func(c uint8) uint8 {
		return uint8(float64(c)*float64(a)/255 + 0.5)
	}
	return color.RGBA{R: premul(r), G: premul(g), B: premul(b), A: a}
}

// ParseCSSColor 解析 CSS 颜色字符串
//
// 支持的格式：
//   - rgba(255, 0, 0, 0.5)
//   - rgb(255, 0, 0)
//   - #ff0000 / #f00
func ParseCSSColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch {
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s)
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseRGBFunc(s[len("rgba("):len(s)-1], 4, s)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseRGBFunc(s[len("rgb("):len(s)-1], 3, s)
	}
	return color.RGBA{}, fmt.Errorf("unsupported color %q", s)
}

func parseRGBFunc(body string, want int, orig string) (color.RGBA, error) {
	parts := strings.Split(body, ",")
	if len(parts) != want {
		return color.RGBA{}, fmt.Errorf("color %q: want %d components, got %d", orig, want, len(parts))
	}

	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("color %q: invalid channel %q", orig, strings.TrimSpace(parts[i]))
		}
		rgb[i] = uint8(v)
	}

	alpha := 1.0
	if want == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return color.RGBA{}, fmt.Errorf("color %q: invalid alpha %q", orig, strings.TrimSpace(parts[3]))
		}
		alpha = a
	}
	return RGBA(rgb[0], rgb[1], rgb[2], alpha), nil
}

func parseHexColor(s string) (color.RGBA, error) {
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q: want 3 or 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
