package simulation

import (
	"github.com/decker502/bubblepop/pkg/components"
	"github.com/decker502/bubblepop/pkg/ecs"
	"github.com/decker502/bubblepop/pkg/game"
)

// BubbleView 渲染层使用的气泡只读快照
type BubbleView struct {
	ID       ecs.EntityID
	X, Y     float64 // 百分比坐标
	Size     float64 // 直径（像素）
	Points   int
	IsPoison bool
	Tier     components.BubbleTier
	Color    string
	Popping  bool
	Scale    float64 // 破裂动画缩放
	Alpha    float64 // 破裂动画不透明度
}

// NoticeView 渲染层使用的提示只读快照
type NoticeView struct {
	Kind      components.NoticeKind
	Text      string
	Label     string
	X, Y      float64
	Remaining float64 // 剩余显示时间（秒）
	Progress  float64 // 已显示比例 0.0 ~ 1.0
}

// State 会话状态快照
type State struct {
	Phase      game.Phase
	Score      int
	Combo      int
	Level      int
	Difficulty game.Difficulty
	Rewards    []game.RewardToken
	LastReward game.RewardToken // 最近一次抽到的奖励，没有则为零值
	Bubbles    int
}

// Stats 本局统计（用于无头验证与日志）
type Stats struct {
	Spawned       int // 成功生成
	SpawnRejected int // 因重叠放弃
	Popped        int // 成功结算（含毒气泡）
	Expired       int // 到期消失
	Culled        int // 飘出顶部

	// 生成与漂移系统当前实际使用的参数
	SpawnInterval float64
	DriftInterval float64
	UpwardBias    float64
}
