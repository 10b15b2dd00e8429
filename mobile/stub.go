//go:build !mobile

// 不带 -tags mobile 时 go build ./... 也能编译此目录；
// 绑定入口在 mobile.go，构建前先把 data/game_config.yaml 复制到 mobile/data/
package mobile

// Dummy 与移动端构建导出同名符号
func Dummy() {}
