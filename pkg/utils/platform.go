package utils

import "os"

// MobileEmulateEnv 设置为 1 时桌面端也按移动端处理指针（触摸优先）
const MobileEmulateEnv = "THRYCE_MOBILE_EMULATE"

// IsMobile 是否按移动端处理输入
// 移动端构建（-tags mobile）始终为 true
func IsMobile() bool {
	return mobileBuild || os.Getenv(MobileEmulateEnv) == "1"
}
