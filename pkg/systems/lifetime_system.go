package systems

import (
	"github.com/decker502/bubblepop/pkg/components"
	"github.com/decker502/bubblepop/pkg/ecs"
)

// LifetimeSystem 管理实体的生命周期
// 未被点中的气泡到期后直接删除，不影响分数与连击；提示横幅同样由此清理
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
	onExpired     func(id ecs.EntityID, isBubble bool)
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// SetOnExpired 设置实体到期回调（可选）
func (s *LifetimeSystem) SetOnExpired(fn func(id ecs.EntityID, isBubble bool)) {
	s.onExpired = fn
}

// Update 更新所有拥有生命周期组件的实体
func (s *LifetimeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		// 已被其他系统删除（例如飘出顶部），到期事件作废
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}

		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok {
			continue
		}

		lifetime.CurrentLifetime += deltaTime

		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
		}

		if lifetime.IsExpired {
			s.entityManager.DestroyEntity(id)
			if s.onExpired != nil {
				s.onExpired(id, ecs.HasComponent[*components.BubbleComponent](s.entityManager, id))
			}
		}
	}
}
