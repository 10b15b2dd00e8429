package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a screen of the game (currently only the bubble field).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Exiter 是一个可选接口，场景在程序关闭时得到通知
//
// 实现此接口的场景会在窗口关闭时被调用 OnExit()，
// 用于保存偏好设置等收尾工作
type Exiter interface {
	OnExit()
}

// 编译期检查
var (
	_ Scene  = (*GameScene)(nil)
	_ Exiter = (*GameScene)(nil)
)
