package game

import "math"

// scriptedRandom 按脚本顺序返回随机值的假随机源
// 脚本耗尽后循环使用
type scriptedRandom struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptedRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *scriptedRandom) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.ii%len(r.ints)]
	r.ii++
	return v % n
}

// almostEqual 浮点比较
func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
