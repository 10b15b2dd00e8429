package game

import (
	"math"

	"github.com/decker502/bubblepop/pkg/config"
)

// Difficulty 当前难度参数，反馈给生成系统和漂移系统
type Difficulty struct {
	SpawnInterval float64 // 生成间隔（秒）
	DriftInterval float64 // 漂移间隔（秒）
	UpwardBias    float64 // 每次漂移向上的偏移量（百分比）
}

// DifficultyEngine 难度引擎
// 负责根据分数计算等级，并在升级时收紧难度参数
type DifficultyEngine struct {
	cfg config.DifficultyConfig
}

// NewDifficultyEngine 创建新的难度引擎实例
func NewDifficultyEngine(cfg config.DifficultyConfig) *DifficultyEngine {
	return &DifficultyEngine{
		cfg: cfg,
	}
}

// Initial 返回初始难度参数
func (d *DifficultyEngine) Initial() Difficulty {
	return Difficulty{
		SpawnInterval: d.cfg.SpawnInterval,
		DriftInterval: d.cfg.DriftInterval,
		UpwardBias:    d.cfg.UpwardBias,
	}
}

// LevelForScore 计算等级
// 公式: Level = floor(score / pointsPerLevel) + 1
func (d *DifficultyEngine) LevelForScore(score int) int {
	if score < 0 {
		return 1
	}
	return score/d.cfg.PointsPerLevel + 1
}

// Tighten 收紧一级难度
// 生成间隔和漂移间隔递减到下限为止，上升偏移持续增加
func (d *DifficultyEngine) Tighten(p Difficulty) Difficulty {
	return Difficulty{
		SpawnInterval: math.Max(d.cfg.SpawnIntervalFloor, p.SpawnInterval-d.cfg.SpawnIntervalStep),
		DriftInterval: math.Max(d.cfg.DriftIntervalFloor, p.DriftInterval-d.cfg.DriftIntervalStep),
		UpwardBias:    p.UpwardBias + d.cfg.UpwardBiasStep,
	}
}
