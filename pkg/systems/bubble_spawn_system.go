package systems

import (
	"log"
	"math"

	"github.com/decker502/bubblepop/pkg/components"
	"github.com/decker502/bubblepop/pkg/config"
	"github.com/decker502/bubblepop/pkg/ecs"
	"github.com/decker502/bubblepop/pkg/entities"
	"github.com/decker502/bubblepop/pkg/utils"
)

// BubbleFootprint 已存在气泡的圆形占位（用于生成时的重叠检测）
type BubbleFootprint struct {
	X, Y float64 // 百分比坐标
	Size float64 // 直径（像素）
}

// BubbleSpawnSystem 管理气泡的定时生成
//
// 每经过一个生成间隔尝试生成一次：
//  1. 独立概率判定是否为毒气泡
//  2. 否则按档位表随机分值与尺寸
//  3. 在生成区域内随机位置
//  4. 与任何已有气泡重叠则放弃本次生成（本次不重试）
type BubbleSpawnSystem struct {
	entityManager *ecs.EntityManager
	cfg           *config.GameConfig
	rng           utils.RandomSource
	spawnTimer    float64 // 当前计时器
	spawnInterval float64 // 生成间隔(秒)，随等级收紧
	onTick        func(id ecs.EntityID, spawned bool)
}

// NewBubbleSpawnSystem 创建一个新的气泡生成系统
// 参数:
//   - em: EntityManager 实例
//   - cfg: 玩法配置
//   - rng: 随机数源（测试中注入固定种子或脚本化随机源）
func NewBubbleSpawnSystem(em *ecs.EntityManager, cfg *config.GameConfig, rng utils.RandomSource) *BubbleSpawnSystem {
	log.Printf("[BubbleSpawnSystem] Initialized with interval=%.2fs, area=(%.0f-%.0f, %.0f-%.0f)",
		cfg.Difficulty.SpawnInterval, cfg.Spawn.MinX, cfg.Spawn.MaxX, cfg.Spawn.MinY, cfg.Spawn.MaxY)
	return &BubbleSpawnSystem{
		entityManager: em,
		cfg:           cfg,
		rng:           rng,
		spawnInterval: cfg.Difficulty.SpawnInterval,
	}
}

// SetSpawnInterval 设置生成间隔（升级时由难度参数驱动）
func (s *BubbleSpawnSystem) SetSpawnInterval(interval float64) {
	s.spawnInterval = interval
}

// SpawnInterval 返回当前生成间隔
func (s *BubbleSpawnSystem) SpawnInterval() float64 {
	return s.spawnInterval
}

// SetOnTick 设置每次生成尝试后的回调（可选）
// spawned 为 false 表示本次因重叠被放弃
func (s *BubbleSpawnSystem) SetOnTick(fn func(id ecs.EntityID, spawned bool)) {
	s.onTick = fn
}

// Reset 重置计时器与生成间隔（新一局开始时调用）
func (s *BubbleSpawnSystem) Reset() {
	s.spawnTimer = 0
	s.spawnInterval = s.cfg.Difficulty.SpawnInterval
}

// Update 累加计时器，每经过一个间隔尝试生成一次
func (s *BubbleSpawnSystem) Update(deltaTime float64) {
	s.spawnTimer += deltaTime
	for s.spawnTimer >= s.spawnInterval {
		s.spawnTimer -= s.spawnInterval
		id, spawned := s.Tick()
		if s.onTick != nil {
			s.onTick(id, spawned)
		}
	}
}

// Tick 执行一次生成尝试
// 返回新实体ID；因重叠放弃时返回 (0, false)
func (s *BubbleSpawnSystem) Tick() (ecs.EntityID, bool) {
	spec, ok := s.TrySpawn(CollectFootprints(s.entityManager))
	if !ok {
		return 0, false
	}

	id := entities.NewBubbleEntity(s.entityManager, spec, s.cfg.Spawn.Lifetime)
	log.Printf("[BubbleSpawnSystem] Spawned %s bubble %d at (%.1f, %.1f) size=%.0f points=%d",
		spec.Tier, id, spec.X, spec.Y, spec.Size, spec.Points)
	return id, true
}

// TrySpawn 随机生成一个候选气泡，与已有气泡重叠时返回 false
//
// 随机数抽取顺序固定：毒气泡判定 → 档位 → [普通气泡尺寸] → X → Y
func (s *BubbleSpawnSystem) TrySpawn(existing []BubbleFootprint) (entities.BubbleSpec, bool) {
	spec := s.rollSpec()

	for _, other := range existing {
		if utils.CirclesOverlap(spec.X, spec.Y, spec.Size, other.X, other.Y, other.Size, s.cfg.Field.PixelsPerPercent) {
			return spec, false
		}
	}
	return spec, true
}

// rollSpec 抽取气泡类型、尺寸与位置
func (s *BubbleSpawnSystem) rollSpec() entities.BubbleSpec {
	var spec entities.BubbleSpec

	if s.rng.Float64() < s.cfg.Poison.Chance {
		spec = entities.BubbleSpec{
			Tier:     components.TierPoison,
			Points:   0,
			Size:     s.cfg.Poison.Size,
			IsPoison: true,
			Color:    s.cfg.Poison.Color,
		}
	} else {
		tier := s.selectTier(s.rng.Float64())
		spec = entities.BubbleSpec{
			Tier:   tierFromName(tier.Name),
			Points: tier.Points,
			Size:   tier.Size,
			Color:  tier.Color,
		}
		if spec.Tier == components.TierCommon && s.cfg.Spawn.RandomizeCommonSize {
			spec.Size = math.Round(utils.RandRange(s.rng, s.cfg.Spawn.CommonSizeMin, s.cfg.Spawn.CommonSizeMax))
		}
	}

	spec.X = utils.RandRange(s.rng, s.cfg.Spawn.MinX, s.cfg.Spawn.MaxX)
	spec.Y = utils.RandRange(s.rng, s.cfg.Spawn.MinY, s.cfg.Spawn.MaxY)

	if spec.Size <= 0 || !utils.IsFinite(spec.X, spec.Y, spec.Size) {
		panic("invariant violated: spawned bubble has invalid size or position")
	}
	return spec
}

// selectTier 按阈值从高到低匹配档位，随机值严格大于阈值时命中
// 没有命中时落到最后一档
func (s *BubbleSpawnSystem) selectTier(roll float64) config.TierConfig {
	tiers := s.cfg.Spawn.Tiers
	for _, tier := range tiers {
		if roll > tier.Threshold {
			return tier
		}
	}
	return tiers[len(tiers)-1]
}

// tierFromName 将配置中的档位名映射为档位枚举
func tierFromName(name string) components.BubbleTier {
	switch name {
	case "high":
		return components.TierHigh
	case "mid":
		return components.TierMid
	default:
		return components.TierCommon
	}
}

// CollectFootprints 收集当前所有气泡的占位（包括正在破裂的气泡，不包括已标记删除的）
func CollectFootprints(em *ecs.EntityManager) []BubbleFootprint {
	ids := ecs.GetEntitiesWith2[*components.BubbleComponent, *components.PositionComponent](em)
	footprints := make([]BubbleFootprint, 0, len(ids))
	for _, id := range ids {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		bubble, _ := ecs.GetComponent[*components.BubbleComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		footprints = append(footprints, BubbleFootprint{X: pos.X, Y: pos.Y, Size: bubble.Size})
	}
	return footprints
}
