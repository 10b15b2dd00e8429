// Package utils 提供游戏开发中常用的工具函数
//
// geometry.go 提供气泡碰撞几何计算。
//
// # 坐标系统概述
//
//   - **区域坐标**：百分比坐标（0~100），气泡的 PositionComponent 使用此坐标
//   - **像素距离**：碰撞判定在像素空间进行，百分比距离 × pixelsPerPercent（默认 5.2，即 100% ≈ 520px）
//   - **屏幕坐标**：渲染层自行将百分比坐标映射到实际窗口尺寸
//
// 气泡的 Size 是像素直径，半径 = Size / 2。
package utils

import "math"

// PixelDistance 返回两个百分比坐标点之间的像素距离
func PixelDistance(x1, y1, x2, y2, pixelsPerPercent float64) float64 {
	return math.Hypot(x1-x2, y1-y2) * pixelsPerPercent
}

// CirclesOverlap 检查两个圆形气泡是否重叠
// 像素距离严格小于半径之和时视为重叠
func CirclesOverlap(x1, y1, size1, x2, y2, size2, pixelsPerPercent float64) bool {
	return PixelDistance(x1, y1, x2, y2, pixelsPerPercent) < (size1+size2)/2
}

// Clamp 将值限制在 [min, max] 范围内
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// IsFinite 检查坐标是否为有限数（非 NaN、非 Inf）
func IsFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ScreenToField 将屏幕坐标转换为百分比坐标
// fieldX/fieldY/fieldW/fieldH 为游戏区域在屏幕上的矩形
func ScreenToField(screenX, screenY, fieldX, fieldY, fieldW, fieldH float64) (float64, float64) {
	return (screenX - fieldX) / fieldW * 100, (screenY - fieldY) / fieldH * 100
}

// FieldToScreen 将百分比坐标转换为屏幕坐标
func FieldToScreen(x, y, fieldX, fieldY, fieldW, fieldH float64) (float64, float64) {
	return fieldX + x/100*fieldW, fieldY + y/100*fieldH
}
