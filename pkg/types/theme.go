// Package types 定义共享的基础类型
package types

import (
	"fmt"
	"strings"
)

// Theme 定义站点的显示模式（浅色/深色）
// 这是唯一会在重新加载后保留的用户偏好
type Theme string

const (
	ThemeLight Theme = "light" // 浅色模式（默认）
	ThemeDark  Theme = "dark"  // 深色模式
)

// IsDark 是否为深色模式
func (t Theme) IsDark() bool {
	return t == ThemeDark
}

// Toggle 返回相反的主题
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Valid 检查主题值是否合法
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// ParseTheme 解析主题字符串（忽略大小写和首尾空白）
func ParseTheme(s string) (Theme, error) {
	theme := Theme(strings.ToLower(strings.TrimSpace(s)))
	if !theme.Valid() {
		return "", fmt.Errorf("unknown theme %q (want %q or %q)", s, ThemeLight, ThemeDark)
	}
	return theme, nil
}
