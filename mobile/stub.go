//go:build !mobile

// Package mobile 是 ebitenmobile 的绑定入口，真正的实现只在 -tags mobile 时编译
package mobile

// Dummy 让 ebitenmobile bind 在普通构建下也能找到导出符号
func Dummy() {}
