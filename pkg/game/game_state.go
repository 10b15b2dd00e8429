package game

import (
	"log"

	"github.com/decker502/bubblepop/pkg/config"
	"github.com/decker502/bubblepop/pkg/utils"
)

// Phase 会话阶段
type Phase int

const (
	PhaseIdle     Phase = iota // 未开始或已手动停止
	PhasePlaying               // 游戏进行中
	PhaseGameOver              // 点中毒气泡，本局结束
)

// String 返回阶段名称
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// PopEvent 一次破裂结算请求（破裂动画结束时由 PopSystem 提交）
type PopEvent struct {
	Points   int     // 气泡基础分值
	IsPoison bool    // 是否为毒气泡
	X, Y     float64 // 气泡位置（百分比坐标）
}

// PopOutcome 一次结算的结果
type PopOutcome struct {
	Applied     bool        // 是否被接受（非 Playing 阶段时为 false）
	GameOver    bool        // 是否触发游戏结束
	Gained      int         // 本次得分（基础分 × 连击）
	Combo       int         // 本次连击倍数
	LeveledUp   bool        // 是否升级
	Level       int         // 结算后的等级
	Rewarded    bool        // 是否跨过奖励里程碑
	Reward      RewardToken // 抽到的奖励（Rewarded 为 true 时有效）
	RewardIsNew bool        // 奖励是否为本局首次获得
}

// GameState 存储一局游戏的会话状态
// 计分/等级状态机：Idle → Playing → GameOver，Playing → Idle（手动停止）
type GameState struct {
	cfg        *config.GameConfig
	rng        utils.RandomSource
	difficulty *DifficultyEngine
	rewards    *RewardCollection

	phase      Phase
	score      int
	combo      int
	level      int
	params     Difficulty
	clock      float64 // 本局已进行的时间（秒），仅 Playing 阶段推进
	lastPopAt  float64 // 上一次成功得分的时间
	hasLastPop bool    // 本局是否已有成功得分

	// 可选的观察者回调（未设置时忽略）
	onScored          func(points, combo int, x, y float64)
	onGameOver        func()
	onLevelUp         func(level int, d Difficulty)
	onRewardCollected func(token RewardToken, isNew bool)
}

// NewGameState 创建会话状态（初始为 Idle）
//
// 参数:
//   - cfg: 玩法配置
//   - rng: 随机数源（用于抽取奖励）
func NewGameState(cfg *config.GameConfig, rng utils.RandomSource) *GameState {
	gs := &GameState{
		cfg:        cfg,
		rng:        rng,
		difficulty: NewDifficultyEngine(cfg.Difficulty),
		rewards:    NewRewardCollection(cfg.Rewards.Catalog),
	}
	gs.reset()
	return gs
}

// reset 将所有会话数据恢复为初始值（不改变阶段）
func (gs *GameState) reset() {
	gs.score = 0
	gs.combo = 1
	gs.level = 1
	gs.params = gs.difficulty.Initial()
	gs.clock = 0
	gs.lastPopAt = 0
	gs.hasLastPop = false
	gs.rewards.Reset()
}

// Start 开始新一局：重置会话数据，Idle|GameOver → Playing
// 已在 Playing 时同样重置（重新开始）
func (gs *GameState) Start() {
	gs.reset()
	gs.phase = PhasePlaying
	log.Printf("[GameState] Game started")
}

// Stop 手动停止：Playing → Idle
// 分数保留到下次 Start 时才重置
func (gs *GameState) Stop() {
	if gs.phase != PhasePlaying {
		return
	}
	gs.phase = PhaseIdle
	log.Printf("[GameState] Game stopped, score=%d level=%d", gs.score, gs.level)
}

// Advance 推进会话时钟（仅 Playing 阶段）
func (gs *GameState) Advance(deltaTime float64) {
	if gs.phase != PhasePlaying {
		return
	}
	gs.clock += deltaTime
}

// ApplyPop 结算一次破裂
// 仅在 Playing 阶段有效；毒气泡触发 GameOver 且不改变分数
func (gs *GameState) ApplyPop(ev PopEvent) PopOutcome {
	if gs.phase != PhasePlaying {
		return PopOutcome{}
	}

	if ev.IsPoison {
		gs.phase = PhaseGameOver
		log.Printf("[GameState] Poison bubble popped! Game over at score=%d", gs.score)
		if gs.onGameOver != nil {
			gs.onGameOver()
		}
		return PopOutcome{Applied: true, GameOver: true, Combo: gs.combo, Level: gs.level}
	}

	// 连击：距上次成功得分不超过窗口则递增（封顶），否则重置为1
	if gs.hasLastPop && gs.clock-gs.lastPopAt <= gs.cfg.Combo.Window {
		gs.combo++
		if gs.combo > gs.cfg.Combo.Max {
			gs.combo = gs.cfg.Combo.Max
		}
	} else {
		gs.combo = 1
	}
	gs.lastPopAt = gs.clock
	gs.hasLastPop = true

	prevScore := gs.score
	gained := ev.Points * gs.combo
	gs.score += gained

	outcome := PopOutcome{
		Applied: true,
		Gained:  gained,
		Combo:   gs.combo,
	}

	if gs.onScored != nil {
		gs.onScored(gained, gs.combo, ev.X, ev.Y)
	}

	// 升级：一次结算最多收紧一级难度
	if newLevel := gs.difficulty.LevelForScore(gs.score); newLevel > gs.level {
		gs.level = newLevel
		gs.params = gs.difficulty.Tighten(gs.params)
		outcome.LeveledUp = true
		log.Printf("[GameState] Level up! level=%d spawn=%.3fs drift=%.3fs bias=%.2f",
			gs.level, gs.params.SpawnInterval, gs.params.DriftInterval, gs.params.UpwardBias)
		if gs.onLevelUp != nil {
			gs.onLevelUp(gs.level, gs.params)
		}
	}
	outcome.Level = gs.level

	// 奖励里程碑：每跨过一个 milestone 倍数抽取一个奖励
	milestone := gs.cfg.Rewards.Milestone
	if gs.score/milestone > prevScore/milestone {
		token := gs.rewards.Pick(gs.rng)
		isNew := gs.rewards.Collect(token)
		outcome.Rewarded = true
		outcome.Reward = token
		outcome.RewardIsNew = isNew
		log.Printf("[GameState] Reward collected: %s (%s) new=%v", token.Token, token.Label, isNew)
		if gs.onRewardCollected != nil {
			gs.onRewardCollected(token, isNew)
		}
	}

	return outcome
}

// SetOnScored 设置得分回调
func (gs *GameState) SetOnScored(fn func(points, combo int, x, y float64)) {
	gs.onScored = fn
}

// SetOnGameOver 设置游戏结束回调
func (gs *GameState) SetOnGameOver(fn func()) {
	gs.onGameOver = fn
}

// SetOnLevelUp 设置升级回调
func (gs *GameState) SetOnLevelUp(fn func(level int, d Difficulty)) {
	gs.onLevelUp = fn
}

// SetOnRewardCollected 设置奖励回调
func (gs *GameState) SetOnRewardCollected(fn func(token RewardToken, isNew bool)) {
	gs.onRewardCollected = fn
}

// Phase 返回当前阶段
func (gs *GameState) Phase() Phase {
	return gs.phase
}

// IsPlaying 是否正在游戏中
func (gs *GameState) IsPlaying() bool {
	return gs.phase == PhasePlaying
}

// IsGameOver 是否已游戏结束
func (gs *GameState) IsGameOver() bool {
	return gs.phase == PhaseGameOver
}

// Score 返回当前分数
func (gs *GameState) Score() int {
	return gs.score
}

// Combo 返回当前连击倍数
func (gs *GameState) Combo() int {
	return gs.combo
}

// Level 返回当前等级
func (gs *GameState) Level() int {
	return gs.level
}

// Difficulty 返回当前难度参数
func (gs *GameState) Difficulty() Difficulty {
	return gs.params
}

// Now 返回会话时钟（秒）
func (gs *GameState) Now() float64 {
	return gs.clock
}

// Rewards 返回已收集的奖励（按首次收集顺序）
func (gs *GameState) Rewards() []RewardToken {
	return gs.rewards.Collected()
}

// LastReward 返回最近一次抽到的奖励（可能是重复奖励），没有则为零值
func (gs *GameState) LastReward() RewardToken {
	return gs.rewards.Last()
}

// HasReward 检查是否已收集指定奖励
func (gs *GameState) HasReward(token string) bool {
	return gs.rewards.Has(token)
}
