//go:build !android

package utils

// EnsureStorageDir 桌面端和 iOS 上 gdata 自己创建存储目录，这里什么都不做
func EnsureStorageDir() error { return nil }

// GetStoragePath 只在 Android 上有意义
func GetStoragePath() string { return "" }
