package utils

import (
	"math"
	"testing"
)

func TestPixelDistance(t *testing.T) {
	// 3-4-5 三角形，百分比距离 5 → 26 像素
	got := PixelDistance(0, 0, 3, 4, 5.2)
	if math.Abs(got-26) > 1e-9 {
		t.Errorf("PixelDistance: got %v, want 26", got)
	}
}

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name string
		dx   float64
		want bool
	}{
		// 两个 44px 气泡，半径和 44px ≈ 8.4615%
		{"重叠", 5, true},
		{"相离", 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CirclesOverlap(50, 50, 44, 50+tt.dx, 50, 44, 5.2); got != tt.want {
				t.Errorf("CirclesOverlap(dx=%v): got %v, want %v", tt.dx, got, tt.want)
			}
		})
	}
}

// TestCirclesTouching 恰好相切不算重叠
func TestCirclesTouching(t *testing.T) {
	if CirclesOverlap(50, 50, 40, 60, 50, 40, 4) {
		t.Error("touching circles should not overlap")
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 10, 20); got != 10 {
		t.Errorf("Clamp below: got %v, want 10", got)
	}
	if got := Clamp(25, 10, 20); got != 20 {
		t.Errorf("Clamp above: got %v, want 20", got)
	}
	if got := Clamp(15, 10, 20); got != 15 {
		t.Errorf("Clamp inside: got %v, want 15", got)
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1, 2, 3) {
		t.Error("IsFinite(1,2,3) should be true")
	}
	if IsFinite(1, math.NaN()) {
		t.Error("IsFinite with NaN should be false")
	}
	if IsFinite(math.Inf(1)) {
		t.Error("IsFinite with Inf should be false")
	}
}

func TestFieldScreenRoundTrip(t *testing.T) {
	sx, sy := FieldToScreen(25, 75, 100, 50, 800, 520)
	if sx != 300 || sy != 440 {
		t.Errorf("FieldToScreen: got (%v, %v), want (300, 440)", sx, sy)
	}
	fx, fy := ScreenToField(sx, sy, 100, 50, 800, 520)
	if math.Abs(fx-25) > 1e-9 || math.Abs(fy-75) > 1e-9 {
		t.Errorf("ScreenToField: got (%v, %v), want (25, 75)", fx, fy)
	}
}

func TestRandRange(t *testing.T) {
	rng := NewRandomSource(7)
	for i := 0; i < 200; i++ {
		v := RandRange(rng, 8, 92)
		if v < 8 || v >= 92 {
			t.Fatalf("RandRange out of range: %v", v)
		}
	}
}

// TestNewRandomSourceDeterministic 相同种子产生相同序列
func TestNewRandomSourceDeterministic(t *testing.T) {
	a := NewRandomSource(99)
	b := NewRandomSource(99)
	for i := 0; i < 20; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("sequence diverged at %d", i)
		}
	}
}
