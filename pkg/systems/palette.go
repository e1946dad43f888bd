package systems

import (
	"image/color"

	"github.com/thryce/site/pkg/types"
)

// Palette 一个主题下粒子可选的颜色
type Palette []color.RGBA

// Palettes 按主题索引的调色板
type Palettes map[types.Theme]Palette

// DefaultPalettes 返回站点默认的粒子调色板
// 深色模式 rgba(255,0,0,0.5)，浅色模式 rgba(255,0,0,0.3)
func DefaultPalettes() Palettes {
	return Palettes{
		types.ThemeDark:  {types.RGBA(255, 0, 0, 0.5)},
		types.ThemeLight: {types.RGBA(255, 0, 0, 0.3)},
	}
}

// For 返回主题对应的调色板；缺失时退回浅色调色板，再缺失则使用默认颜色
func (p Palettes) For(theme types.Theme) Palette {
	if pal := p[theme]; len(pal) > 0 {
		return pal
	}
	if pal := p[types.ThemeLight]; len(pal) > 0 {
		return pal
	}
	if theme.IsDark() {
		return DefaultPalettes()[types.ThemeDark]
	}
	return DefaultPalettes()[types.ThemeLight]
}
