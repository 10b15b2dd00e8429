package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerTap 一次新按下的点击或触摸（屏幕坐标）
type pointerTap struct {
	x, y float64
}

// appendJustTapped 追加本帧新按下的所有触摸点和鼠标左键点击
// 多指同时触摸时每个手指都算一次点击
func appendJustTapped(taps []pointerTap) []pointerTap {
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		taps = append(taps, pointerTap{x: float64(x), y: float64(y)})
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		taps = append(taps, pointerTap{x: float64(x), y: float64(y)})
	}

	return taps
}
