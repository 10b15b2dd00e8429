package utils

import "os"

// mobileEmulateEnv 桌面端模拟移动布局的环境变量（用于本地调试）
const mobileEmulateEnv = "BUBBLEPOP_MOBILE_EMULATE"

// IsMobile 是否按移动端方式运行（触摸提示文案等）
// 移动端构建恒为 true；桌面端设置 BUBBLEPOP_MOBILE_EMULATE=1 时也返回 true
func IsMobile() bool {
	return mobileBuild || os.Getenv(mobileEmulateEnv) == "1"
}
