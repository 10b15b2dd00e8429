package utils

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// BackgroundGradient 根据背景色相返回渐变的顶部与底部颜色
// 顶部 hsl(hue, 80%, 85%)，底部 hsl(hue+60, 90%, 70%)
func BackgroundGradient(hue float64) (top, bottom color.RGBA) {
	h := math.Mod(hue, 360)
	if h < 0 {
		h += 360
	}
	top = toRGBA(colorful.Hsl(h, 0.80, 0.85), 255)
	bottom = toRGBA(colorful.Hsl(math.Mod(h+60, 360), 0.90, 0.70), 255)
	return top, bottom
}

// ParseHexColor 解析 "#rrggbb" 形式的颜色，失败时返回 fallback
func ParseHexColor(hex string, fallback color.RGBA) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	return toRGBA(c, 255)
}

// LerpColor 在两个颜色之间线性插值（RGB 空间），t 被限制在 [0, 1]
func LerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = Clamp(t, 0, 1)
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	alpha := float64(a.A) + (float64(b.A)-float64(a.A))*t
	return toRGBA(ca.BlendRgb(cb, t), uint8(math.Round(alpha)))
}

// WithAlpha 返回乘以不透明度后的非预乘颜色
func WithAlpha(c color.RGBA, alpha float64) color.NRGBA {
	a := Clamp(alpha, 0, 1) * float64(c.A)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(a))}
}

func toRGBA(c colorful.Color, a uint8) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: a}
}
