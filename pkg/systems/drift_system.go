package systems

import (
	"log"

	"github.com/decker502/bubblepop/pkg/components"
	"github.com/decker502/bubblepop/pkg/config"
	"github.com/decker502/bubblepop/pkg/ecs"
	"github.com/decker502/bubblepop/pkg/utils"
)

// DriftSystem 按固定间隔推动所有漂浮中的气泡
// 正在破裂的气泡冻结在原位，不参与漂移与碰撞
type DriftSystem struct {
	entityManager *ecs.EntityManager
	cfg           *config.GameConfig
	rng           utils.RandomSource
	driftTimer    float64
	driftInterval float64 // 漂移间隔(秒)，随等级收紧
	upwardBias    float64 // 上浮偏移，随等级增加
	onTick        func(culled []ecs.EntityID)
}

// NewDriftSystem 创建一个新的漂移系统
func NewDriftSystem(em *ecs.EntityManager, cfg *config.GameConfig, rng utils.RandomSource) *DriftSystem {
	return &DriftSystem{
		entityManager: em,
		cfg:           cfg,
		rng:           rng,
		driftInterval: cfg.Difficulty.DriftInterval,
		upwardBias:    cfg.Difficulty.UpwardBias,
	}
}

// SetParams 设置漂移间隔与上浮偏移（升级时由难度参数驱动）
func (s *DriftSystem) SetParams(driftInterval, upwardBias float64) {
	s.driftInterval = driftInterval
	s.upwardBias = upwardBias
}

// DriftInterval 返回当前漂移间隔
func (s *DriftSystem) DriftInterval() float64 {
	return s.driftInterval
}

// UpwardBias 返回当前上浮偏移
func (s *DriftSystem) UpwardBias() float64 {
	return s.upwardBias
}

// SetOnTick 设置每次漂移后的回调（可选）
func (s *DriftSystem) SetOnTick(fn func(culled []ecs.EntityID)) {
	s.onTick = fn
}

// Reset 重置计时器与难度参数（新一局开始时调用）
func (s *DriftSystem) Reset() {
	s.driftTimer = 0
	s.driftInterval = s.cfg.Difficulty.DriftInterval
	s.upwardBias = s.cfg.Difficulty.UpwardBias
}

// Update 累加计时器，每经过一个间隔执行一次漂移
func (s *DriftSystem) Update(deltaTime float64) {
	s.driftTimer += deltaTime
	for s.driftTimer >= s.driftInterval {
		s.driftTimer -= s.driftInterval
		culled := s.Tick()
		if s.onTick != nil {
			s.onTick(culled)
		}
	}
}

// Tick 执行一次漂移，返回被剔除的气泡
func (s *DriftSystem) Tick() []ecs.EntityID {
	ids := ecs.GetEntitiesWith3[*components.BubbleComponent, *components.PositionComponent, *components.VelocityComponent](s.entityManager)

	bodies := make([]DriftBody, 0, len(ids))
	for _, id := range ids {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		bubble, _ := ecs.GetComponent[*components.BubbleComponent](s.entityManager, id)
		if bubble.State != components.BubbleFloating {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		bodies = append(bodies, DriftBody{ID: id, X: pos.X, Y: pos.Y, Size: bubble.Size})
	}
	if len(bodies) == 0 {
		return nil
	}

	result := StepDrift(bodies, DriftParams{
		Field:      s.cfg.Field,
		Drift:      s.cfg.Drift,
		UpwardBias: s.upwardBias,
	}, s.rng)

	for _, b := range result.Bodies {
		if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, b.ID); ok {
			pos.X, pos.Y = b.X, b.Y
		}
		if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, b.ID); ok {
			vel.VX, vel.VY = b.VX, b.VY
		}
	}

	for _, id := range result.Culled {
		s.entityManager.DestroyEntity(id)
		log.Printf("[DriftSystem] Bubble %d drifted off the top", id)
	}
	return result.Culled
}
