package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GameConfig 气泡游戏的全部玩法参数
// 默认值见 data/game_config.yaml 与 DefaultGameConfig()
type GameConfig struct {
	Field      FieldConfig      `yaml:"field"`      // 游戏区域与边界
	Spawn      SpawnConfig      `yaml:"spawn"`      // 气泡生成规则
	Poison     PoisonConfig     `yaml:"poison"`     // 毒气泡规则
	Drift      DriftConfig      `yaml:"drift"`      // 漂移抖动参数
	Difficulty DifficultyConfig `yaml:"difficulty"` // 难度曲线
	Combo      ComboConfig      `yaml:"combo"`      // 连击规则
	Timing     TimingConfig     `yaml:"timing"`     // 动画与提示时长
	Rewards    RewardsConfig    `yaml:"rewards"`    // 里程碑奖励
}

// FieldConfig 游戏区域配置（坐标为百分比 0~100）
type FieldConfig struct {
	PixelsPerPercent float64 `yaml:"pixelsPerPercent"` // 百分比到像素的近似换算（520px / 100%）
	CullY            float64 `yaml:"cullY"`            // Y坐标小于等于此值视为飘出顶部
	PadBase          float64 `yaml:"padBase"`          // 边距基数
	PadSizeDivisor   float64 `yaml:"padSizeDivisor"`   // 边距随尺寸增长的除数
	PadMax           float64 `yaml:"padMax"`           // 边距上限
}

// Pad 返回指定尺寸气泡的边距：min(padBase + size/padSizeDivisor, padMax)
func (f FieldConfig) Pad(size float64) float64 {
	pad := f.PadBase + size/f.PadSizeDivisor
	if pad > f.PadMax {
		return f.PadMax
	}
	return pad
}

// SpawnConfig 气泡生成配置
type SpawnConfig struct {
	MinX                float64      `yaml:"minX"`
	MaxX                float64      `yaml:"maxX"`
	MinY                float64      `yaml:"minY"`
	MaxY                float64      `yaml:"maxY"`
	Lifetime            float64      `yaml:"lifetime"`            // 气泡存活时间（秒）
	RandomizeCommonSize bool         `yaml:"randomizeCommonSize"` // 普通气泡是否随机尺寸
	CommonSizeMin       float64      `yaml:"commonSizeMin"`
	CommonSizeMax       float64      `yaml:"commonSizeMax"`
	Tiers               []TierConfig `yaml:"tiers"` // 按阈值从高到低排列，随机值 > threshold 命中
}

// TierConfig 单个分值档位
type TierConfig struct {
	Name      string  `yaml:"name"`      // "high", "mid", "common"
	Threshold float64 `yaml:"threshold"` // 随机值严格大于此阈值时命中
	Points    int     `yaml:"points"`
	Size      float64 `yaml:"size"`
	Color     string  `yaml:"color"` // 仅表现层使用
}

// PoisonConfig 毒气泡配置
type PoisonConfig struct {
	Chance float64 `yaml:"chance"` // 独立概率，绕过档位表
	Size   float64 `yaml:"size"`
	Color  string  `yaml:"color"`
}

// DriftConfig 漂移抖动配置：magnitude = max(minMagnitude, baseMagnitude - size/sizeDivisor)
type DriftConfig struct {
	MinMagnitude  float64 `yaml:"minMagnitude"`
	BaseMagnitude float64 `yaml:"baseMagnitude"`
	SizeDivisor   float64 `yaml:"sizeDivisor"`
}

// Magnitude 返回指定尺寸气泡的抖动幅度
func (d DriftConfig) Magnitude(size float64) float64 {
	mag := d.BaseMagnitude - size/d.SizeDivisor
	if mag < d.MinMagnitude {
		return d.MinMagnitude
	}
	return mag
}

// DifficultyConfig 难度曲线配置（时间单位：秒）
type DifficultyConfig struct {
	SpawnInterval      float64 `yaml:"spawnInterval"`
	SpawnIntervalStep  float64 `yaml:"spawnIntervalStep"`
	SpawnIntervalFloor float64 `yaml:"spawnIntervalFloor"`
	DriftInterval      float64 `yaml:"driftInterval"`
	DriftIntervalStep  float64 `yaml:"driftIntervalStep"`
	DriftIntervalFloor float64 `yaml:"driftIntervalFloor"`
	UpwardBias         float64 `yaml:"upwardBias"`
	UpwardBiasStep     float64 `yaml:"upwardBiasStep"`
	PointsPerLevel     int     `yaml:"pointsPerLevel"`
}

// ComboConfig 连击配置
type ComboConfig struct {
	Window float64 `yaml:"window"` // 两次成功点击的最大间隔（秒）
	Max    int     `yaml:"max"`    // 倍数上限
}

// TimingConfig 动画与提示时长（秒）
type TimingConfig struct {
	PopDuration    float64 `yaml:"popDuration"`    // 点击到结算之间的破裂动画
	LevelUpNotice  float64 `yaml:"levelUpNotice"`  // 升级横幅显示时长
	RewardNotice   float64 `yaml:"rewardNotice"`   // 奖励弹出显示时长
	BackgroundStep float64 `yaml:"backgroundStep"` // 背景色相每步间隔
}

// RewardsConfig 里程碑奖励配置
type RewardsConfig struct {
	Milestone int           `yaml:"milestone"` // 每累计多少分触发一次奖励
	Catalog   []RewardEntry `yaml:"catalog"`
}

// RewardEntry 奖励目录中的一项
type RewardEntry struct {
	Token string `yaml:"token"` // 表情符号
	Label string `yaml:"label"` // ASCII 名称
}

// DefaultGameConfig 返回内置默认配置（与 data/game_config.yaml 一致）
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Field: FieldConfig{
			PixelsPerPercent: 5.2,
			CullY:            6,
			PadBase:          12,
			PadSizeDivisor:   8,
			PadMax:           30,
		},
		Spawn: SpawnConfig{
			MinX:                8,
			MaxX:                92,
			MinY:                60,
			MaxY:                92,
			Lifetime:            7.0,
			RandomizeCommonSize: false,
			CommonSizeMin:       36,
			CommonSizeMax:       64,
			Tiers: []TierConfig{
				{Name: "high", Threshold: 0.92, Points: 5, Size: 46, Color: "#ffd166"},
				{Name: "mid", Threshold: 0.75, Points: 3, Size: 54, Color: "#9b5de5"},
				{Name: "common", Threshold: 0, Points: 1, Size: 44, Color: "#4aa3ff"},
			},
		},
		Poison: PoisonConfig{
			Chance: 0.06,
			Size:   48,
			Color:  "#ff2222",
		},
		Drift: DriftConfig{
			MinMagnitude:  0.35,
			BaseMagnitude: 3,
			SizeDivisor:   30,
		},
		Difficulty: DifficultyConfig{
			SpawnInterval:      0.65,
			SpawnIntervalStep:  0.06,
			SpawnIntervalFloor: 0.25,
			DriftInterval:      0.22,
			DriftIntervalStep:  0.018,
			DriftIntervalFloor: 0.09,
			UpwardBias:         0.45,
			UpwardBiasStep:     0.08,
			PointsPerLevel:     100,
		},
		Combo: ComboConfig{
			Window: 0.8,
			Max:    5,
		},
		Timing: TimingConfig{
			PopDuration:    0.32,
			LevelUpNotice:  1.8,
			RewardNotice:   2.0,
			BackgroundStep: 0.12,
		},
		Rewards: RewardsConfig{
			Milestone: 20,
			Catalog:   defaultRewardCatalog(),
		},
	}
}

// defaultRewardCatalog 默认奖励目录
func defaultRewardCatalog() []RewardEntry {
	return []RewardEntry{
		{Token: "🎉", Label: "party"},
		{Token: "😃", Label: "smile"},
		{Token: "🔥", Label: "fire"},
		{Token: "💥", Label: "boom"},
		{Token: "✨", Label: "sparkles"},
		{Token: "🥳", Label: "celebrate"},
		{Token: "🦄", Label: "unicorn"},
		{Token: "🍀", Label: "clover"},
		{Token: "🚀", Label: "rocket"},
		{Token: "🌈", Label: "rainbow"},
		{Token: "😎", Label: "cool"},
		{Token: "👾", Label: "invader"},
		{Token: "🎈", Label: "balloon"},
		{Token: "🍭", Label: "lollipop"},
		{Token: "🧸", Label: "teddy"},
		{Token: "🪩", Label: "disco"},
		{Token: "🦋", Label: "butterfly"},
		{Token: "🍕", Label: "pizza"},
		{Token: "🍦", Label: "icecream"},
		{Token: "🧃", Label: "juice"},
		{Token: "🎵", Label: "note"},
	}
}

// LoadGameConfig 从 YAML 文件加载游戏配置
func LoadGameConfig(filePath string) (*GameConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file: %w", err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig 解析 YAML 数据
// 未出现在 YAML 中的字段保留默认值
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置的有效性
func (c *GameConfig) Validate() error {
	// 验证区域配置
	if c.Field.PixelsPerPercent <= 0 {
		return fmt.Errorf("field.pixelsPerPercent must be > 0, got %v", c.Field.PixelsPerPercent)
	}
	if c.Field.PadSizeDivisor <= 0 {
		return fmt.Errorf("field.padSizeDivisor must be > 0, got %v", c.Field.PadSizeDivisor)
	}
	if c.Field.PadMax <= 0 || c.Field.PadMax >= 50 {
		return fmt.Errorf("field.padMax must be in (0, 50), got %v", c.Field.PadMax)
	}

	// 验证生成区域
	if c.Spawn.MinX > c.Spawn.MaxX || c.Spawn.MinY > c.Spawn.MaxY {
		return fmt.Errorf("spawn area is inverted: x=[%v,%v] y=[%v,%v]",
			c.Spawn.MinX, c.Spawn.MaxX, c.Spawn.MinY, c.Spawn.MaxY)
	}
	if c.Spawn.Lifetime <= 0 {
		return fmt.Errorf("spawn.lifetime must be > 0, got %v", c.Spawn.Lifetime)
	}
	if c.Spawn.RandomizeCommonSize && (c.Spawn.CommonSizeMin <= 0 || c.Spawn.CommonSizeMin > c.Spawn.CommonSizeMax) {
		return fmt.Errorf("spawn.commonSize range is invalid: [%v,%v]", c.Spawn.CommonSizeMin, c.Spawn.CommonSizeMax)
	}

	// 验证档位表：阈值严格递减，最后一档阈值必须 <= 0 以兜底
	if len(c.Spawn.Tiers) == 0 {
		return fmt.Errorf("spawn.tiers cannot be empty")
	}
	for i, tier := range c.Spawn.Tiers {
		if tier.Name == "" {
			return fmt.Errorf("spawn.tiers[%d].name cannot be empty", i)
		}
		if tier.Size <= 0 {
			return fmt.Errorf("spawn.tiers[%d].size must be > 0, got %v", i, tier.Size)
		}
		if tier.Points < 0 {
			return fmt.Errorf("spawn.tiers[%d].points must be >= 0, got %d", i, tier.Points)
		}
		if i > 0 && tier.Threshold >= c.Spawn.Tiers[i-1].Threshold {
			return fmt.Errorf("spawn.tiers thresholds must be strictly descending at index %d", i)
		}
	}
	if last := c.Spawn.Tiers[len(c.Spawn.Tiers)-1]; last.Threshold > 0 {
		return fmt.Errorf("last spawn tier must have threshold <= 0 as fallback, got %v", last.Threshold)
	}

	// 验证毒气泡
	if c.Poison.Chance < 0 || c.Poison.Chance > 1 {
		return fmt.Errorf("poison.chance must be in [0,1], got %v", c.Poison.Chance)
	}
	if c.Poison.Size <= 0 {
		return fmt.Errorf("poison.size must be > 0, got %v", c.Poison.Size)
	}

	// 验证漂移
	if c.Drift.SizeDivisor <= 0 || c.Drift.MinMagnitude < 0 {
		return fmt.Errorf("drift config is invalid: sizeDivisor=%v minMagnitude=%v", c.Drift.SizeDivisor, c.Drift.MinMagnitude)
	}

	// 验证难度
	d := c.Difficulty
	if d.SpawnIntervalFloor <= 0 || d.SpawnInterval < d.SpawnIntervalFloor {
		return fmt.Errorf("difficulty.spawnInterval must be >= floor > 0, got %v (floor %v)", d.SpawnInterval, d.SpawnIntervalFloor)
	}
	if d.DriftIntervalFloor <= 0 || d.DriftInterval < d.DriftIntervalFloor {
		return fmt.Errorf("difficulty.driftInterval must be >= floor > 0, got %v (floor %v)", d.DriftInterval, d.DriftIntervalFloor)
	}
	if d.SpawnIntervalStep < 0 || d.DriftIntervalStep < 0 || d.UpwardBiasStep < 0 {
		return fmt.Errorf("difficulty steps must be >= 0")
	}
	if d.PointsPerLevel <= 0 {
		return fmt.Errorf("difficulty.pointsPerLevel must be > 0, got %d", d.PointsPerLevel)
	}

	// 验证连击
	if c.Combo.Max < 1 {
		return fmt.Errorf("combo.max must be >= 1, got %d", c.Combo.Max)
	}
	if c.Combo.Window < 0 {
		return fmt.Errorf("combo.window must be >= 0, got %v", c.Combo.Window)
	}

	// 验证时长
	if c.Timing.PopDuration < 0 || c.Timing.LevelUpNotice < 0 || c.Timing.RewardNotice < 0 {
		return fmt.Errorf("timing values must be >= 0")
	}
	if c.Timing.BackgroundStep <= 0 {
		return fmt.Errorf("timing.backgroundStep must be > 0, got %v", c.Timing.BackgroundStep)
	}

	// 验证奖励
	if c.Rewards.Milestone <= 0 {
		return fmt.Errorf("rewards.milestone must be > 0, got %d", c.Rewards.Milestone)
	}
	if len(c.Rewards.Catalog) == 0 {
		return fmt.Errorf("rewards.catalog cannot be empty")
	}
	for i, entry := range c.Rewards.Catalog {
		if entry.Token == "" {
			return fmt.Errorf("rewards.catalog[%d].token cannot be empty", i)
		}
	}

	return nil
}
