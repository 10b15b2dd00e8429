package utils

import (
	"math"
	"testing"
)

// TestEaseOutCubic 测试三次方缓出函数
func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.875}, // 1 - (1-0.5)^3 = 1 - 0.125 = 0.875
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseOutCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseOutCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestPopScale 测试破裂缩放曲线
func TestPopScale(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 1.0},
		{"终点", 1.0, PopEndScale},
		{"越界下限", -1.0, 1.0},
		{"越界上限", 2.0, PopEndScale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PopScale(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("PopScale(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestPopAlphaMonotonic 不透明度随进度单调递减
func TestPopAlphaMonotonic(t *testing.T) {
	prev := PopAlpha(0)
	if prev != 1.0 {
		t.Fatalf("PopAlpha(0) = %v, 期望 1.0", prev)
	}
	for i := 1; i <= 10; i++ {
		alpha := PopAlpha(float64(i) / 10)
		if alpha > prev {
			t.Errorf("PopAlpha 在 t=%.1f 时增加: %v > %v", float64(i)/10, alpha, prev)
		}
		prev = alpha
	}
	if prev != 0 {
		t.Errorf("PopAlpha(1) = %v, 期望 0", prev)
	}
}
