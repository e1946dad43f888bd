//go:build android

package utils

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// androidDataRoot 应用私有数据目录的根
const androidDataRoot = "/data/data"

// EnsureStorageDir 在打开 gdata 之前准备好 Android 上的存储目录
//
// gdata 在 Android 上把数据写到 /data/data/{package}/saves，但不会自己创建这个目录。
// 目录不可写时返回错误，调用方以内存模式继续运行（主题偏好不会保存）。
func EnsureStorageDir() error {
	root := GetStoragePath()
	if root == "" {
		return errors.New("cannot determine Android package name")
	}

	dir := filepath.Join(root, "saves")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir %s: %w", dir, err)
	}

	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return fmt.Errorf("storage dir %s is not writable: %w", dir, err)
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)
	return nil
}

// GetStoragePath 返回 /data/data/{package}；无法识别包名时返回空字符串
func GetStoragePath() string {
	pkg, err := androidPackage()
	if err != nil {
		return ""
	}
	return filepath.Join(androidDataRoot, pkg)
}

// androidPackage 从 /proc/self/cmdline 读取包名（第一个参数）
func androidPackage() (string, error) {
	cmdline, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(cmdline, 0); i >= 0 {
		cmdline = cmdline[:i]
	}
	pkg := string(bytes.TrimSpace(cmdline))
	if pkg == "" {
		return "", errors.New("empty /proc/self/cmdline")
	}
	return pkg, nil
}
