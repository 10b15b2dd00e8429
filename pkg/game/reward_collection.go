package game

import (
	"github.com/decker502/bubblepop/pkg/config"
	"github.com/decker502/bubblepop/pkg/utils"
)

// RewardToken 一个装饰性奖励（表情）
type RewardToken struct {
	Token string // 表情符号
	Label string // ASCII 名称
}

// RewardCollection 管理本局收集到的奖励
// 负责从目录中随机抽取奖励，并以集合语义（去重）记录收集顺序
type RewardCollection struct {
	catalog   []config.RewardEntry
	collected map[string]bool
	order     []RewardToken
	last      RewardToken // 最后一次抽到的奖励（可能是重复的）
}

// NewRewardCollection 创建一个新的奖励收集器
//
// 参数:
//   - catalog: 奖励目录（不能为空，由配置校验保证）
func NewRewardCollection(catalog []config.RewardEntry) *RewardCollection {
	return &RewardCollection{
		catalog:   catalog,
		collected: make(map[string]bool),
		order:     make([]RewardToken, 0),
	}
}

// Pick 从目录中等概率抽取一个奖励
func (c *RewardCollection) Pick(rng utils.RandomSource) RewardToken {
	entry := c.catalog[rng.Intn(len(c.catalog))]
	return RewardToken{Token: entry.Token, Label: entry.Label}
}

// Collect 收集奖励
// 返回 true 表示这是新奖励；重复奖励不会被拒绝，只是不会重复记录
func (c *RewardCollection) Collect(token RewardToken) bool {
	c.last = token
	if c.collected[token.Token] {
		return false
	}
	c.collected[token.Token] = true
	c.order = append(c.order, token)
	return true
}

// Has 检查是否已收集指定奖励
func (c *RewardCollection) Has(token string) bool {
	return c.collected[token]
}

// Collected 返回已收集的奖励（按首次收集顺序）
func (c *RewardCollection) Collected() []RewardToken {
	result := make([]RewardToken, len(c.order))
	copy(result, c.order)
	return result
}

// Last 返回最后一次收集的奖励
func (c *RewardCollection) Last() RewardToken {
	return c.last
}

// Reset 清空收集记录（新一局开始时调用）
func (c *RewardCollection) Reset() {
	c.collected = make(map[string]bool)
	c.order = c.order[:0]
	c.last = RewardToken{}
}
