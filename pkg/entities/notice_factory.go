package entities

import (
	"fmt"

	"github.com/decker502/bubblepop/pkg/components"
	"github.com/decker502/bubblepop/pkg/ecs"
)

// NewLevelUpNotice 创建 "Level N!" 横幅，duration 秒后由 LifetimeSystem 删除
func NewLevelUpNotice(manager *ecs.EntityManager, level int, duration float64) ecs.EntityID {
	return newNoticeEntity(manager, &components.NoticeComponent{
		Kind: components.NoticeLevelUp,
		Text: fmt.Sprintf("Level %d!", level),
	}, duration)
}

// NewRewardNotice 在破裂位置弹出奖励表情
func NewRewardNotice(manager *ecs.EntityManager, token, label string, x, y, duration float64) ecs.EntityID {
	return newNoticeEntity(manager, &components.NoticeComponent{
		Kind:  components.NoticeReward,
		Text:  token,
		Label: label,
		X:     x,
		Y:     y,
	}, duration)
}

func newNoticeEntity(manager *ecs.EntityManager, notice *components.NoticeComponent, duration float64) ecs.EntityID {
	id := manager.CreateEntity()
	ecs.AddComponent(manager, id, notice)
	ecs.AddComponent(manager, id, &components.LifetimeComponent{
		MaxLifetime: duration,
	})
	return id
}
