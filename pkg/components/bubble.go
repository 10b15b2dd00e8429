package components

// BubbleTier 表示气泡的分值档位
type BubbleTier int

const (
	TierCommon BubbleTier = iota // 普通气泡（1分）
	TierMid                      // 中档气泡（3分）
	TierHigh                     // 高档气泡（5分）
	TierPoison                   // 毒气泡（点击即游戏结束）
)

// String 返回档位名称（用于日志和配置查找）
func (t BubbleTier) String() string {
	switch t {
	case TierCommon:
		return "common"
	case TierMid:
		return "mid"
	case TierHigh:
		return "high"
	case TierPoison:
		return "poison"
	default:
		return "unknown"
	}
}

// BubbleState 表示气泡的状态
type BubbleState int

const (
	BubbleFloating BubbleState = iota // 正在漂浮，可被点击
	BubblePopping                     // 正在播放破裂动画，等待结算
)

// BubbleComponent 标记实体为气泡,并存储气泡特定的数据
type BubbleComponent struct {
	Tier     BubbleTier  // 分值档位
	Points   int         // 基础分值
	Size     float64     // 直径（像素），同时用于渲染和碰撞半径
	IsPoison bool        // 是否为毒气泡
	Color    string      // 渲染颜色（#rrggbb）
	State    BubbleState // 当前状态
}
