package simulation

import (
	"log"
	"math"

	"github.com/decker502/bubblepop/pkg/components"
	"github.com/decker502/bubblepop/pkg/config"
	"github.com/decker502/bubblepop/pkg/ecs"
	"github.com/decker502/bubblepop/pkg/game"
	"github.com/decker502/bubblepop/pkg/systems"
	"github.com/decker502/bubblepop/pkg/utils"
)

// Simulation 气泡游戏的模拟核心
//
// 所有修改都发生在调用 Update 的单一协程中，每帧顺序固定：
//
//	会话时钟 → 破裂动画（结算） → 生命周期 → 生成 → 漂移 → 清理已删除实体
//
// 停止或重新开始时清空实体管理器，挂在实体上的破裂动画、到期计时和提示随之取消。
// 游戏结束后整个模拟冻结，直到下一次 Start。
type Simulation struct {
	cfg       *config.GameConfig
	em        *ecs.EntityManager
	gameState *game.GameState

	spawnSystem    *systems.BubbleSpawnSystem
	driftSystem    *systems.DriftSystem
	popSystem      *systems.PopSystem
	lifetimeSystem *systems.LifetimeSystem

	hue      float64 // 背景色相 0~359
	hueTimer float64
	stats    Stats

	onSpawnTick       func([]BubbleView)
	onDriftTick       func([]BubbleView)
	onScored          func(points, combo int, x, y float64)
	onGameOver        func()
	onLevelUp         func(level int, d game.Difficulty)
	onRewardCollected func(token game.RewardToken, isNew bool)
}

// New 创建模拟核心（初始为 Idle）
//
// 参数:
//   - cfg: 玩法配置（需已通过 Validate）
//   - rng: 随机数源，生成、漂移与奖励抽取共用，注入固定种子即可完全复现
func New(cfg *config.GameConfig, rng utils.RandomSource) *Simulation {
	em := ecs.NewEntityManager()
	gs := game.NewGameState(cfg, rng)

	s := &Simulation{
		cfg:            cfg,
		em:             em,
		gameState:      gs,
		spawnSystem:    systems.NewBubbleSpawnSystem(em, cfg, rng),
		driftSystem:    systems.NewDriftSystem(em, cfg, rng),
		popSystem:      systems.NewPopSystem(em, cfg, gs),
		lifetimeSystem: systems.NewLifetimeSystem(em),
	}

	gs.SetOnScored(func(points, combo int, x, y float64) {
		if s.onScored != nil {
			s.onScored(points, combo, x, y)
		}
	})
	gs.SetOnGameOver(func() {
		if s.onGameOver != nil {
			s.onGameOver()
		}
	})
	gs.SetOnLevelUp(func(level int, d game.Difficulty) {
		s.applyDifficulty(d)
		if s.onLevelUp != nil {
			s.onLevelUp(level, d)
		}
	})
	gs.SetOnRewardCollected(func(token game.RewardToken, isNew bool) {
		if s.onRewardCollected != nil {
			s.onRewardCollected(token, isNew)
		}
	})

	s.spawnSystem.SetOnTick(func(_ ecs.EntityID, spawned bool) {
		if spawned {
			s.stats.Spawned++
		} else {
			s.stats.SpawnRejected++
		}
		if s.onSpawnTick != nil {
			s.onSpawnTick(s.Bubbles())
		}
	})
	s.driftSystem.SetOnTick(func(culled []ecs.EntityID) {
		s.stats.Culled += len(culled)
		if s.onDriftTick != nil {
			s.onDriftTick(s.Bubbles())
		}
	})
	s.lifetimeSystem.SetOnExpired(func(_ ecs.EntityID, isBubble bool) {
		if isBubble {
			s.stats.Expired++
		}
	})
	s.popSystem.SetOnResolved(func(ecs.EntityID, game.PopEvent, game.PopOutcome) {
		s.stats.Popped++
	})

	return s
}

// applyDifficulty 把难度参数反馈给生成与漂移系统
func (s *Simulation) applyDifficulty(d game.Difficulty) {
	s.spawnSystem.SetSpawnInterval(d.SpawnInterval)
	s.driftSystem.SetParams(d.DriftInterval, d.UpwardBias)
}

// Start 开始新一局（Idle 或 GameOver 时调用；游戏中调用则重新开始）
func (s *Simulation) Start() {
	s.resetField()
	s.gameState.Start()
	s.applyDifficulty(s.gameState.Difficulty())
	log.Printf("[Simulation] Session started")
}

// Stop 手动停止：清空气泡并取消所有待结算的破裂，分数保留到下一次 Start
func (s *Simulation) Stop() {
	if !s.gameState.IsPlaying() {
		return
	}
	s.gameState.Stop()
	s.resetField()
	log.Printf("[Simulation] Session stopped")
}

// resetField 清空所有实体与计时器
func (s *Simulation) resetField() {
	s.em.Clear()
	s.spawnSystem.Reset()
	s.driftSystem.Reset()
	s.hue = 0
	s.hueTimer = 0
	s.stats = Stats{}
}

// Update 推进模拟 deltaTime 秒，只在 Playing 阶段生效
func (s *Simulation) Update(deltaTime float64) {
	if !s.gameState.IsPlaying() || deltaTime <= 0 {
		return
	}

	s.gameState.Advance(deltaTime)
	s.advanceHue(deltaTime)

	s.popSystem.Update(deltaTime)
	if !s.gameState.IsPlaying() {
		// 毒气泡结算：冻结，剩余实体保持原样
		s.em.RemoveMarkedEntities()
		return
	}

	s.lifetimeSystem.Update(deltaTime)
	s.spawnSystem.Update(deltaTime)
	s.driftSystem.Update(deltaTime)

	s.em.RemoveMarkedEntities()
}

// advanceHue 背景色相每步 +1（mod 360）
func (s *Simulation) advanceHue(deltaTime float64) {
	step := s.cfg.Timing.BackgroundStep
	if step <= 0 {
		return
	}
	s.hueTimer += deltaTime
	for s.hueTimer >= step {
		s.hueTimer -= step
		s.hue = math.Mod(s.hue+1, 360)
	}
}

// RequestPop 玩家请求点破气泡
// 未知ID、已在破裂中、已到期或非游戏中时返回 false 且不做任何修改
func (s *Simulation) RequestPop(id ecs.EntityID) bool {
	return s.popSystem.RequestPop(id)
}

// BubbleAt 返回百分比坐标 (x, y) 处可点击的气泡
// 多个气泡重叠时返回最后生成的（绘制在最上层）
func (s *Simulation) BubbleAt(x, y float64) (ecs.EntityID, bool) {
	ids := ecs.GetEntitiesWith3[*components.BubbleComponent, *components.PositionComponent, *components.ClickableComponent](s.em)
	for i := len(ids) - 1; i >= 0; i-- {
		id := ids[i]
		if s.em.IsMarkedForDestroy(id) {
			continue
		}
		clickable, _ := ecs.GetComponent[*components.ClickableComponent](s.em, id)
		if !clickable.IsEnabled {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		if utils.PixelDistance(x, y, pos.X, pos.Y, s.cfg.Field.PixelsPerPercent) <= clickable.Radius {
			return id, true
		}
	}
	return 0, false
}

// Bubbles 返回当前所有气泡（按ID升序）
func (s *Simulation) Bubbles() []BubbleView {
	ids := ecs.GetEntitiesWith2[*components.BubbleComponent, *components.PositionComponent](s.em)
	views := make([]BubbleView, 0, len(ids))
	for _, id := range ids {
		if s.em.IsMarkedForDestroy(id) {
			continue
		}
		bubble, _ := ecs.GetComponent[*components.BubbleComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		view := BubbleView{
			ID:       id,
			X:        pos.X,
			Y:        pos.Y,
			Size:     bubble.Size,
			Points:   bubble.Points,
			IsPoison: bubble.IsPoison,
			Tier:     bubble.Tier,
			Color:    bubble.Color,
			Popping:  bubble.State == components.BubblePopping,
			Scale:    1,
			Alpha:    1,
		}
		if scale, ok := ecs.GetComponent[*components.ScaleComponent](s.em, id); ok {
			view.Scale, view.Alpha = scale.Scale, scale.Alpha
		}
		views = append(views, view)
	}
	return views
}

// Notices 返回当前显示中的提示（按创建顺序）
func (s *Simulation) Notices() []NoticeView {
	ids := ecs.GetEntitiesWith2[*components.NoticeComponent, *components.LifetimeComponent](s.em)
	views := make([]NoticeView, 0, len(ids))
	for _, id := range ids {
		if s.em.IsMarkedForDestroy(id) {
			continue
		}
		notice, _ := ecs.GetComponent[*components.NoticeComponent](s.em, id)
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](s.em, id)
		progress := 1.0
		if lifetime.MaxLifetime > 0 {
			progress = utils.Clamp(lifetime.CurrentLifetime/lifetime.MaxLifetime, 0, 1)
		}
		views = append(views, NoticeView{
			Kind:      notice.Kind,
			Text:      notice.Text,
			Label:     notice.Label,
			X:         notice.X,
			Y:         notice.Y,
			Remaining: math.Max(0, lifetime.MaxLifetime-lifetime.CurrentLifetime),
			Progress:  progress,
		})
	}
	return views
}

// State 返回会话状态快照
func (s *Simulation) State() State {
	return State{
		Phase:      s.gameState.Phase(),
		Score:      s.gameState.Score(),
		Combo:      s.gameState.Combo(),
		Level:      s.gameState.Level(),
		Difficulty: s.gameState.Difficulty(),
		Rewards:    s.gameState.Rewards(),
		LastReward: s.gameState.LastReward(),
		Bubbles:    len(s.Bubbles()),
	}
}

// Stats 返回本局统计
func (s *Simulation) Stats() Stats {
	stats := s.stats
	stats.SpawnInterval = s.spawnSystem.SpawnInterval()
	stats.DriftInterval = s.driftSystem.DriftInterval()
	stats.UpwardBias = s.driftSystem.UpwardBias()
	return stats
}

// BackgroundHue 返回背景色相（0~359）
func (s *Simulation) BackgroundHue() float64 {
	return s.hue
}

// Config 返回玩法配置
func (s *Simulation) Config() *config.GameConfig {
	return s.cfg
}

// SetOnSpawnTick 设置生成回调，每次生成尝试后收到当前气泡列表
func (s *Simulation) SetOnSpawnTick(fn func([]BubbleView)) {
	s.onSpawnTick = fn
}

// SetOnDriftTick 设置漂移回调，每次漂移后收到当前气泡列表
func (s *Simulation) SetOnDriftTick(fn func([]BubbleView)) {
	s.onDriftTick = fn
}

// SetOnScored 设置得分回调
func (s *Simulation) SetOnScored(fn func(points, combo int, x, y float64)) {
	s.onScored = fn
}

// SetOnGameOver 设置游戏结束回调
func (s *Simulation) SetOnGameOver(fn func()) {
	s.onGameOver = fn
}

// SetOnLevelUp 设置升级回调
func (s *Simulation) SetOnLevelUp(fn func(level int, d game.Difficulty)) {
	s.onLevelUp = fn
}

// SetOnRewardCollected 设置奖励回调
func (s *Simulation) SetOnRewardCollected(fn func(token game.RewardToken, isNew bool)) {
	s.onRewardCollected = fn
}
