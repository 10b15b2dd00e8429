package systems

import (
	"fmt"
	"math"

	"github.com/decker502/bubblepop/pkg/config"
	"github.com/decker502/bubblepop/pkg/ecs"
	"github.com/decker502/bubblepop/pkg/utils"
)

const (
	maxSeparationPasses = 100  // 碰撞分离的最大轮数
	separationEpsilon   = 1e-6 // 判定仍然重叠的容差（像素）
	boundaryEpsilon     = 1e-9 // 判定贴边的容差（百分比）
)

// DriftBody 参与一次漂移计算的气泡快照
type DriftBody struct {
	ID     ecs.EntityID
	X, Y   float64 // 百分比坐标
	VX, VY float64 // 本次漂移的位移（计算结果）
	Size   float64 // 直径（像素）
}

// DriftParams 一次漂移计算所需的参数
type DriftParams struct {
	Field      config.FieldConfig
	Drift      config.DriftConfig
	UpwardBias float64 // 每次漂移向上（Y减小）的偏移量
}

// DriftResult 一次漂移计算的结果
type DriftResult struct {
	Bodies []DriftBody    // 存活的气泡（保持输入顺序）
	Culled []ecs.EntityID // 飘出顶部被移除的气泡
}

// StepDrift 对一组气泡执行一次漂移
//
// 纯函数：不修改输入切片，结果只取决于输入顺序和随机数序列。
// 阶段严格有序：
//  1. 移动：每个气泡独立抖动并上浮，越过边距时夹紧并反转速度分量
//  2. 碰撞：按下标升序处理每一对气泡，重叠时沿中心连线各推开一半穿透深度，再各自夹紧；
//     推开可能造成新的重叠，因此重复整轮分离（最多 maxSeparationPasses 轮），
//     直到剩余的重叠对两端都贴在边距上
//  3. 剔除：Y <= cullY 的气泡被移除
//
// 随机数源产生非有限坐标时 panic。
func StepDrift(bodies []DriftBody, params DriftParams, rng utils.RandomSource) DriftResult {
	moved := make([]DriftBody, len(bodies))

	// 阶段1：移动
	for i, b := range bodies {
		if b.Size <= 0 {
			panic(fmt.Sprintf("invariant violated: bubble %d has non-positive size %v", b.ID, b.Size))
		}
		mag := params.Drift.Magnitude(b.Size)
		vx := (rng.Float64()*2 - 1) * mag
		vy := (rng.Float64()*2-1)*mag - params.UpwardBias

		pad := params.Field.Pad(b.Size)
		nx, vx := reflectAxis(b.X+vx, vx, pad)
		ny, vy := reflectAxis(b.Y+vy, vy, pad)

		moved[i] = DriftBody{ID: b.ID, X: nx, Y: ny, VX: vx, VY: vy, Size: b.Size}
		assertFinite(moved[i])
	}

	// 阶段2：碰撞（在快照副本上进行），重复分离直到没有未贴边的重叠
	resolved := make([]DriftBody, len(moved))
	copy(resolved, moved)
	for pass := 0; pass < maxSeparationPasses; pass++ {
		separatePass(resolved, params.Field)
		if !hasLooseOverlap(resolved, params.Field) {
			break
		}
	}

	// 阶段3：剔除飘出顶部的气泡
	result := DriftResult{Bodies: make([]DriftBody, 0, len(resolved))}
	for _, b := range resolved {
		if b.Y <= params.Field.CullY {
			result.Culled = append(result.Culled, b.ID)
			continue
		}
		result.Bodies = append(result.Bodies, b)
	}
	return result
}

// separatePass 按下标升序对每一对重叠气泡执行一次对称分离
func separatePass(bodies []DriftBody, field config.FieldConfig) {
	ppp := field.PixelsPerPercent
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := &bodies[i], &bodies[j]
			dist := utils.PixelDistance(a.X, a.Y, b.X, b.Y, ppp)
			minDist := (a.Size + b.Size) / 2
			if dist >= minDist {
				continue
			}

			// 每个气泡推开一半穿透深度（换算回百分比）
			push := (minDist - dist) / 2 / ppp
			angle := math.Atan2(b.Y-a.Y, b.X-a.X)
			dx, dy := math.Cos(angle)*push, math.Sin(angle)*push

			a.X, a.Y = clampToPad(a.X-dx, a.Y-dy, field.Pad(a.Size))
			b.X, b.Y = clampToPad(b.X+dx, b.Y+dy, field.Pad(b.Size))
			assertFinite(*a)
			assertFinite(*b)
		}
	}
}

// hasLooseOverlap 是否还有重叠对中至少一个气泡不贴边
func hasLooseOverlap(bodies []DriftBody, field config.FieldConfig) bool {
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			dist := utils.PixelDistance(a.X, a.Y, b.X, b.Y, field.PixelsPerPercent)
			if dist >= (a.Size+b.Size)/2-separationEpsilon {
				continue
			}
			if !atBoundary(a, field) || !atBoundary(b, field) {
				return true
			}
		}
	}
	return false
}

// atBoundary 气泡是否在任一轴上贴着自己的边距
func atBoundary(b DriftBody, field config.FieldConfig) bool {
	pad := field.Pad(b.Size)
	onEdge := func(v float64) bool {
		return math.Abs(v-pad) < boundaryEpsilon || math.Abs(v-(100-pad)) < boundaryEpsilon
	}
	return onEdge(b.X) || onEdge(b.Y)
}

// reflectAxis 越过 [pad, 100-pad] 时夹紧到边距并反转速度
func reflectAxis(pos, vel, pad float64) (float64, float64) {
	if pos < pad {
		return pad, -vel
	}
	if pos > 100-pad {
		return 100 - pad, -vel
	}
	return pos, vel
}

// clampToPad 将坐标夹紧到 [pad, 100-pad]
func clampToPad(x, y, pad float64) (float64, float64) {
	return utils.Clamp(x, pad, 100-pad), utils.Clamp(y, pad, 100-pad)
}

func assertFinite(b DriftBody) {
	if !utils.IsFinite(b.X, b.Y, b.VX, b.VY) {
		panic(fmt.Sprintf("invariant violated: bubble %d has non-finite position (%v, %v)", b.ID, b.X, b.Y))
	}
}
