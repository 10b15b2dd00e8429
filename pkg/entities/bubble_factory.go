package entities

import (
	"github.com/decker502/bubblepop/pkg/components"
	"github.com/decker502/bubblepop/pkg/ecs"
)

// BubbleSpec 一个待生成气泡的全部参数
// 由生成系统随机得出，再交给 NewBubbleEntity 创建实体
type BubbleSpec struct {
	Tier     components.BubbleTier
	Points   int
	Size     float64 // 直径（像素）
	IsPoison bool
	Color    string
	X, Y     float64 // 百分比坐标
}

// NewBubbleEntity 创建一个气泡实体
// 参数:
//   - manager: EntityManager 实例
//   - spec: 气泡参数
//   - lifetime: 自动消失前的存活时间(秒)
//
// 返回: 创建的实体ID
func NewBubbleEntity(manager *ecs.EntityManager, spec BubbleSpec, lifetime float64) ecs.EntityID {
	id := manager.CreateEntity()

	ecs.AddComponent(manager, id, &components.BubbleComponent{
		Tier:     spec.Tier,
		Points:   spec.Points,
		Size:     spec.Size,
		IsPoison: spec.IsPoison,
		Color:    spec.Color,
		State:    components.BubbleFloating,
	})

	ecs.AddComponent(manager, id, &components.PositionComponent{
		X: spec.X,
		Y: spec.Y,
	})

	// 速度每次漂移时重新计算
	ecs.AddComponent(manager, id, &components.VelocityComponent{})

	ecs.AddComponent(manager, id, &components.LifetimeComponent{
		MaxLifetime:     lifetime,
		CurrentLifetime: 0,
		IsExpired:       false,
	})

	// 点击半径 = 直径 / 2（像素）
	ecs.AddComponent(manager, id, &components.ClickableComponent{
		Radius:    spec.Size / 2,
		IsEnabled: true,
	})

	ecs.AddComponent(manager, id, &components.ScaleComponent{
		Scale: 1.0,
		Alpha: 1.0,
	})

	return id
}
