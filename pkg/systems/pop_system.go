package systems

import (
	"log"

	"github.com/decker502/bubblepop/pkg/components"
	"github.com/decker502/bubblepop/pkg/config"
	"github.com/decker502/bubblepop/pkg/ecs"
	"github.com/decker502/bubblepop/pkg/entities"
	"github.com/decker502/bubblepop/pkg/game"
	"github.com/decker502/bubblepop/pkg/utils"
)

// PopSystem 处理玩家的点击破裂请求
//
// 工作流程：
//  1. RequestPop 把气泡标记为破裂中（不再可点击、不再到期、不再漂移）
//  2. Update 推进破裂动画（缩小并淡出）
//  3. 动画结束时向 GameState 提交结算，并删除气泡实体
//  4. 根据结算结果生成升级横幅和奖励弹出
type PopSystem struct {
	entityManager *ecs.EntityManager
	cfg           *config.GameConfig
	gameState     *game.GameState
	onResolved    func(id ecs.EntityID, ev game.PopEvent, outcome game.PopOutcome)
}

// NewPopSystem 创建一个新的破裂系统
func NewPopSystem(em *ecs.EntityManager, cfg *config.GameConfig, gs *game.GameState) *PopSystem {
	return &PopSystem{
		entityManager: em,
		cfg:           cfg,
		gameState:     gs,
	}
}

// SetOnResolved 设置结算完成回调（可选）
func (s *PopSystem) SetOnResolved(fn func(id ecs.EntityID, ev game.PopEvent, outcome game.PopOutcome)) {
	s.onResolved = fn
}

// RequestPop 请求破裂指定气泡
//
// 以下情况返回 false 且不做任何修改：
//   - 不在 Playing 阶段
//   - 气泡不存在或已被删除（已到期、已飘出）
//   - 气泡已经在破裂中（重复点击）
func (s *PopSystem) RequestPop(id ecs.EntityID) bool {
	if !s.gameState.IsPlaying() {
		return false
	}
	if !s.entityManager.Exists(id) || s.entityManager.IsMarkedForDestroy(id) {
		return false
	}

	bubble, ok := ecs.GetComponent[*components.BubbleComponent](s.entityManager, id)
	if !ok || bubble.State != components.BubbleFloating {
		return false
	}

	bubble.State = components.BubblePopping
	if clickable, ok := ecs.GetComponent[*components.ClickableComponent](s.entityManager, id); ok {
		clickable.IsEnabled = false
	}
	// 破裂中的气泡不会再因到期被删除
	ecs.RemoveComponent[*components.LifetimeComponent](s.entityManager, id)
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id); ok {
		vel.VX, vel.VY = 0, 0
	}

	ecs.AddComponent(s.entityManager, id, &components.PopAnimationComponent{
		Duration: s.cfg.Timing.PopDuration,
	})
	return true
}

// Update 推进破裂动画，动画结束时结算
// 游戏结束后立即停止处理，剩余动画随会话重置一并取消
func (s *PopSystem) Update(deltaTime float64) {
	ids := ecs.GetEntitiesWith1[*components.PopAnimationComponent](s.entityManager)

	for _, id := range ids {
		if !s.gameState.IsPlaying() {
			return
		}
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}

		anim, _ := ecs.GetComponent[*components.PopAnimationComponent](s.entityManager, id)
		anim.Elapsed += deltaTime
		progress := anim.Progress()

		if scale, ok := ecs.GetComponent[*components.ScaleComponent](s.entityManager, id); ok {
			scale.Scale = utils.PopScale(progress)
			scale.Alpha = utils.PopAlpha(progress)
		}

		if anim.Elapsed >= anim.Duration {
			s.resolve(id)
		}
	}
}

// resolve 向 GameState 提交结算并删除气泡
func (s *PopSystem) resolve(id ecs.EntityID) {
	bubble, ok := ecs.GetComponent[*components.BubbleComponent](s.entityManager, id)
	if !ok {
		s.entityManager.DestroyEntity(id)
		return
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

	ev := game.PopEvent{
		Points:   bubble.Points,
		IsPoison: bubble.IsPoison,
	}
	if pos != nil {
		ev.X, ev.Y = pos.X, pos.Y
	}

	outcome := s.gameState.ApplyPop(ev)
	s.entityManager.DestroyEntity(id)

	if outcome.GameOver {
		log.Printf("[PopSystem] Poison bubble %d popped", id)
	}
	if outcome.LeveledUp {
		entities.NewLevelUpNotice(s.entityManager, outcome.Level, s.cfg.Timing.LevelUpNotice)
	}
	if outcome.Rewarded {
		entities.NewRewardNotice(s.entityManager, outcome.Reward.Token, outcome.Reward.Label, ev.X, ev.Y, s.cfg.Timing.RewardNotice)
	}

	if s.onResolved != nil {
		s.onResolved(id, ev, outcome)
	}
}

// IsPopping 检查气泡是否正在破裂
func (s *PopSystem) IsPopping(id ecs.EntityID) bool {
	return ecs.HasComponent[*components.PopAnimationComponent](s.entityManager, id)
}
