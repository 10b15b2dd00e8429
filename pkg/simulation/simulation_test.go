package simulation

import (
	"reflect"
	"testing"

	"github.com/decker502/bubblepop/pkg/config"
	"github.com/decker502/bubblepop/pkg/ecs"
	"github.com/decker502/bubblepop/pkg/game"
	"github.com/decker502/bubblepop/pkg/utils"
)

const frame = 1.0 / 60.0

// newTestSimulation 创建一个无毒气泡、固定种子的模拟
func newTestSimulation(seed int64, tweak func(cfg *config.GameConfig)) *Simulation {
	cfg := config.DefaultGameConfig()
	cfg.Poison.Chance = 0
	if tweak != nil {
		tweak(cfg)
	}
	return New(cfg, utils.NewRandomSource(seed))
}

// run 以固定帧长推进 seconds 秒
func run(s *Simulation, seconds float64) {
	for t := 0.0; t < seconds; t += frame {
		s.Update(frame)
	}
}

// popAndWait 点破气泡并等待动画结束
func popAndWait(t *testing.T, s *Simulation, id ecs.EntityID) {
	t.Helper()
	if !s.RequestPop(id) {
		t.Fatalf("RequestPop(%d) failed", id)
	}
	run(s, s.Config().Timing.PopDuration+frame)
}

func TestIdleSimulationDoesNotTick(t *testing.T) {
	s := newTestSimulation(1, nil)
	run(s, 3)

	if got := s.State(); got.Phase != game.PhaseIdle || got.Bubbles != 0 {
		t.Errorf("idle state: got %+v", got)
	}
}

func TestStartSpawnsAndDrifts(t *testing.T) {
	s := newTestSimulation(1, nil)

	spawnTicks, driftTicks := 0, 0
	s.SetOnSpawnTick(func([]BubbleView) { spawnTicks++ })
	s.SetOnDriftTick(func(views []BubbleView) {
		driftTicks++
		for _, v := range views {
			pad := s.Config().Field.Pad(v.Size)
			if v.X < pad || v.X > 100-pad || v.Y < pad || v.Y > 100-pad {
				t.Fatalf("bubble %d outside pad: (%v, %v)", v.ID, v.X, v.Y)
			}
		}
	})

	s.Start()
	run(s, 3)

	if spawnTicks < 4 {
		t.Errorf("spawn ticks after 3s: got %d, want >= 4", spawnTicks)
	}
	if driftTicks < 13 {
		t.Errorf("drift ticks after 3s: got %d, want >= 13", driftTicks)
	}
	if s.State().Bubbles == 0 {
		t.Error("expected some live bubbles")
	}
	if s.BackgroundHue() == 0 {
		t.Error("background hue should advance while playing")
	}
}

// TestExpiryDoesNotScore 未点破的气泡到期后消失，分数与连击不变
func TestExpiryDoesNotScore(t *testing.T) {
	s := newTestSimulation(5, nil)
	s.Start()
	run(s, 0.7)

	bubbles := s.Bubbles()
	if len(bubbles) == 0 {
		t.Fatal("expected a bubble after the first spawn interval")
	}
	first := bubbles[0].ID

	run(s, 7.0)
	for _, b := range s.Bubbles() {
		if b.ID == first {
			t.Fatalf("bubble %d still alive after its lifetime", first)
		}
	}
	if st := s.State(); st.Score != 0 || st.Combo != 1 {
		t.Errorf("expiry changed score/combo: %+v", st)
	}
	if s.Stats().Expired == 0 && s.Stats().Culled == 0 {
		t.Error("expected the first bubble to be counted as expired")
	}
}

func TestPopScoresThroughSimulation(t *testing.T) {
	s := newTestSimulation(2, nil)

	var scored []int
	s.SetOnScored(func(points, combo int, x, y float64) {
		scored = append(scored, points)
	})

	s.Start()
	run(s, 0.7)
	b := s.Bubbles()[0]

	popAndWait(t, s, b.ID)
	if got := s.State().Score; got != b.Points {
		t.Errorf("score: got %d, want %d", got, b.Points)
	}
	if len(scored) != 1 || scored[0] != b.Points {
		t.Errorf("OnScored: got %v, want [%d]", scored, b.Points)
	}
	if s.RequestPop(b.ID) {
		t.Error("RequestPop on a popped bubble should be a no-op")
	}
}

// TestPoisonFreezesSimulation 毒气泡结算后生成与漂移停止，气泡数量不再变化
func TestPoisonFreezesSimulation(t *testing.T) {
	s := newTestSimulation(3, func(cfg *config.GameConfig) {
		cfg.Poison.Chance = 1
	})

	gameOvers := 0
	s.SetOnGameOver(func() { gameOvers++ })

	s.Start()
	run(s, 3)
	bubbles := s.Bubbles()
	if len(bubbles) < 2 {
		t.Fatalf("expected several poison bubbles, got %d", len(bubbles))
	}

	popAndWait(t, s, bubbles[0].ID)
	if gameOvers != 1 || s.State().Phase != game.PhaseGameOver {
		t.Fatalf("game over: callbacks=%d phase=%v", gameOvers, s.State().Phase)
	}

	frozen := s.Bubbles()
	hue := s.BackgroundHue()
	run(s, 10)
	if !reflect.DeepEqual(frozen, s.Bubbles()) {
		t.Error("bubbles changed after game over")
	}
	if s.BackgroundHue() != hue {
		t.Error("background hue changed after game over")
	}
	if s.RequestPop(frozen[0].ID) {
		t.Error("RequestPop after game over should be rejected")
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	s := newTestSimulation(4, func(cfg *config.GameConfig) {
		cfg.Poison.Chance = 1
	})
	s.Start()
	run(s, 0.7)
	popAndWait(t, s, s.Bubbles()[0].ID)

	s.Config().Poison.Chance = 0
	s.Start()

	st := s.State()
	if st.Phase != game.PhasePlaying || st.Score != 0 || st.Combo != 1 || st.Level != 1 || len(st.Rewards) != 0 || st.Bubbles != 0 {
		t.Errorf("state after restart: %+v", st)
	}
	if st.Difficulty != game.NewDifficultyEngine(s.Config().Difficulty).Initial() {
		t.Errorf("difficulty after restart: %+v", st.Difficulty)
	}

	run(s, 1)
	if s.State().Bubbles == 0 {
		t.Error("ticking should resume after restart")
	}
}

// TestStopCancelsPendingPop 停止后待结算的破裂被丢弃
func TestStopCancelsPendingPop(t *testing.T) {
	s := newTestSimulation(6, nil)
	s.Start()
	run(s, 0.7)
	b := s.Bubbles()[0]
	popAndWait(t, s, b.ID)
	score := s.State().Score

	run(s, 0.7)
	next := s.Bubbles()[0]
	s.RequestPop(next.ID)
	s.Stop()

	if st := s.State(); st.Phase != game.PhaseIdle || st.Score != score || st.Bubbles != 0 {
		t.Errorf("state after stop: %+v, want idle score=%d no bubbles", st, score)
	}
	if s.BackgroundHue() != 0 {
		t.Errorf("background hue after stop: got %v, want 0", s.BackgroundHue())
	}

	s.Start()
	run(s, 1)
	if s.State().Score != 0 {
		t.Errorf("stale pop applied after restart: score %d", s.State().Score)
	}
}

// TestLevelUpFeedsBackDifficulty 升级后生成与漂移系统使用收紧后的参数
func TestLevelUpFeedsBackDifficulty(t *testing.T) {
	s := newTestSimulation(8, func(cfg *config.GameConfig) {
		cfg.Difficulty.PointsPerLevel = 1
	})

	var levels []int
	s.SetOnLevelUp(func(level int, d game.Difficulty) {
		levels = append(levels, level)
	})

	s.Start()
	run(s, 0.7)
	popAndWait(t, s, s.Bubbles()[0].ID)

	if len(levels) != 1 {
		t.Fatalf("level ups: got %v, want exactly one", levels)
	}
	stats := s.Stats()
	if !almostEqual(stats.SpawnInterval, 0.59) {
		t.Errorf("spawn interval: got %v, want 0.59", stats.SpawnInterval)
	}
	if !almostEqual(stats.DriftInterval, 0.202) || !almostEqual(stats.UpwardBias, 0.53) {
		t.Errorf("drift params: got %v/%v, want 0.202/0.53", stats.DriftInterval, stats.UpwardBias)
	}
	if d := s.State().Difficulty; d.SpawnInterval != stats.SpawnInterval || d.DriftInterval != stats.DriftInterval {
		t.Errorf("systems out of sync with difficulty: %+v vs %+v", d, stats)
	}

	notices := s.Notices()
	if len(notices) == 0 {
		t.Error("expected a level-up notice")
	}
}

func TestRewardCollectedThroughSimulation(t *testing.T) {
	s := newTestSimulation(9, func(cfg *config.GameConfig) {
		cfg.Rewards.Milestone = 1
	})

	var tokens []game.RewardToken
	s.SetOnRewardCollected(func(token game.RewardToken, isNew bool) {
		tokens = append(tokens, token)
	})

	s.Start()
	run(s, 0.7)
	popAndWait(t, s, s.Bubbles()[0].ID)

	if len(tokens) != 1 {
		t.Fatalf("rewards: got %d, want 1", len(tokens))
	}
	if rewards := s.State().Rewards; len(rewards) != 1 || rewards[0] != tokens[0] {
		t.Errorf("collected rewards: got %v", rewards)
	}
}

func TestBubbleAt(t *testing.T) {
	s := newTestSimulation(10, nil)
	s.Start()
	run(s, 0.7)
	b := s.Bubbles()[0]

	if id, ok := s.BubbleAt(b.X, b.Y); !ok || id != b.ID {
		t.Errorf("BubbleAt center: got %d/%v, want %d", id, ok, b.ID)
	}
	// 半径之外（像素）
	offset := (b.Size/2 + 1) / s.Config().Field.PixelsPerPercent
	if _, ok := s.BubbleAt(b.X+offset, b.Y); ok {
		t.Error("BubbleAt outside the radius should miss")
	}

	s.RequestPop(b.ID)
	if _, ok := s.BubbleAt(b.X, b.Y); ok {
		t.Error("popping bubble should not be hit-testable")
	}
}

// TestDeterministicSessions 相同种子与操作序列产生完全相同的结果
func TestDeterministicSessions(t *testing.T) {
	play := func() ([]BubbleView, State) {
		s := newTestSimulation(77, func(cfg *config.GameConfig) {
			cfg.Poison.Chance = 0.06
		})
		s.Start()
		for i := 0; i < 600; i++ {
			s.Update(frame)
			if i%45 == 0 {
				if bubbles := s.Bubbles(); len(bubbles) > 0 {
					s.RequestPop(bubbles[len(bubbles)-1].ID)
				}
			}
		}
		return s.Bubbles(), s.State()
	}

	b1, st1 := play()
	b2, st2 := play()
	if !reflect.DeepEqual(b1, b2) || !reflect.DeepEqual(st1, st2) {
		t.Error("sessions with the same seed diverged")
	}
}

// TestCallbacksOptional 不设置任何回调时模拟正常运行
func TestCallbacksOptional(t *testing.T) {
	s := newTestSimulation(11, func(cfg *config.GameConfig) {
		cfg.Rewards.Milestone = 1
		cfg.Difficulty.PointsPerLevel = 1
	})
	s.Start()
	run(s, 0.7)
	popAndWait(t, s, s.Bubbles()[0].ID)
	run(s, 3)
}

func almostEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
