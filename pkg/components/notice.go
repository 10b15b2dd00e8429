package components

// NoticeKind 提示类型
type NoticeKind int

const (
	NoticeLevelUp NoticeKind = iota // "Level N!" 横幅
	NoticeReward                    // 奖励表情弹出
)

// NoticeComponent 短暂显示的提示（纯表现层数据）
// 与 LifetimeComponent 搭配使用，到期后由 LifetimeSystem 删除
type NoticeComponent struct {
	Kind  NoticeKind
	Text  string  // 显示文本（等级横幅文字或奖励表情）
	Label string  // 奖励的ASCII名称（无表情字体时使用）
	X, Y  float64 // 弹出位置（百分比坐标），横幅忽略
}
