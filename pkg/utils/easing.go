package utils

import "math"

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 气泡破裂动画使用 EaseOutCubic 近似 cubic-bezier(.2,.8,.2,1)。

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// PopEndScale 破裂动画结束时的缩放
const PopEndScale = 0.18

// PopScale 返回破裂动画在进度 t 时的缩放（1.0 → 0.18）
func PopScale(t float64) float64 {
	return Lerp(1.0, PopEndScale, EaseOutCubic(Clamp(t, 0, 1)))
}

// PopAlpha 返回破裂动画在进度 t 时的不透明度（1.0 → 0.0）
func PopAlpha(t float64) float64 {
	return 1 - EaseOutCubic(Clamp(t, 0, 1))
}
