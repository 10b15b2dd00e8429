package simulation

import (
	"log"

	"github.com/decker502/bubblepop/pkg/ecs"
	"github.com/decker502/bubblepop/pkg/utils"
)

// AutoPlayer 自动点击气泡的机器人玩家（无头验证和演示模式使用）
//
// 每隔 clickInterval 秒点击一次：优先选择分值最高的气泡，
// 同分时选择最靠近顶部的（最先飘走的）。
// mistakeChance 为误点毒气泡的概率，0 表示永不点毒气泡。
type AutoPlayer struct {
	sim           *Simulation
	rng           utils.RandomSource
	clickInterval float64
	mistakeChance float64
	timer         float64
	clicks        int
}

// NewAutoPlayer 创建自动玩家
func NewAutoPlayer(sim *Simulation, rng utils.RandomSource, clickInterval, mistakeChance float64) *AutoPlayer {
	return &AutoPlayer{
		sim:           sim,
		rng:           rng,
		clickInterval: clickInterval,
		mistakeChance: mistakeChance,
	}
}

// Update 推进点击计时器，必要时点击一个气泡
// 只在游戏中生效；返回本帧是否成功点击
func (a *AutoPlayer) Update(deltaTime float64) bool {
	if !a.sim.gameState.IsPlaying() {
		return false
	}
	a.timer += deltaTime
	if a.timer < a.clickInterval {
		return false
	}
	a.timer = 0

	id, ok := a.chooseTarget(a.sim.Bubbles())
	if !ok {
		return false
	}
	if !a.sim.RequestPop(id) {
		return false
	}
	a.clicks++
	return true
}

// chooseTarget 选择下一个要点击的气泡
func (a *AutoPlayer) chooseTarget(bubbles []BubbleView) (ecs.EntityID, bool) {
	var best *BubbleView
	var poison *BubbleView
	for i := range bubbles {
		b := &bubbles[i]
		if b.Popping {
			continue
		}
		if b.IsPoison {
			if poison == nil {
				poison = b
			}
			continue
		}
		if best == nil || b.Points > best.Points || (b.Points == best.Points && b.Y < best.Y) {
			best = b
		}
	}

	if poison != nil && a.mistakeChance > 0 && a.rng.Float64() < a.mistakeChance {
		log.Printf("[AutoPlayer] Clicking poison bubble %d", poison.ID)
		return poison.ID, true
	}
	if best == nil {
		return 0, false
	}
	return best.ID, true
}

// Clicks 返回成功点击次数
func (a *AutoPlayer) Clicks() int {
	return a.clicks
}
