package utils

import (
	"math/rand"
	"time"
)

// RandomSource 可注入的随机数源
// *rand.Rand 满足此接口；测试中可替换为脚本化的假随机源以获得确定结果
type RandomSource interface {
	// Float64 返回 [0.0, 1.0) 的随机数
	Float64() float64
	// Intn 返回 [0, n) 的随机整数
	Intn(n int) int
}

// NewRandomSource 根据种子创建随机数源
// seed 为 0 时使用当前时间作为种子
func NewRandomSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// RandRange 返回 [min, max) 范围内的均匀随机数
func RandRange(rng RandomSource, min, max float64) float64 {
	return rng.Float64()*(max-min) + min
}
