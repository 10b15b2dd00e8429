package scenes

import (
	"reflect"
	"testing"

	"github.com/decker502/bubblepop/pkg/config"
	"github.com/decker502/bubblepop/pkg/game"
	"github.com/decker502/bubblepop/pkg/simulation"
	"github.com/decker502/bubblepop/pkg/utils"
	"github.com/quasilyte/gdata/v2"
)

const frame = 1.0 / 60.0

// newTestScene 创建无声、无持久化的场景
func newTestScene(poisonChance float64) *GameScene {
	cfg := config.DefaultGameConfig()
	cfg.Poison.Chance = poisonChance
	sim := simulation.New(cfg, utils.NewRandomSource(7))
	settings := game.NewSettingsManager(nil)
	return NewGameScene(sim, NewAudioManager(nil, settings), settings)
}

// advance 跳过输入处理推进场景
func advance(s *GameScene, seconds float64) {
	for t := 0.0; t < seconds; t += frame {
		s.sim.Update(frame)
		s.updatePopups(frame)
	}
}

// clickButton 点击 Play/Stop 按钮中心
func clickButton(s *GameScene) bool {
	return s.handlePointer(ButtonX+ButtonWidth/2, ButtonY+ButtonHeight/2)
}

// clickBubble 点击气泡中心
func clickBubble(s *GameScene, b simulation.BubbleView) bool {
	sx, sy := utils.FieldToScreen(b.X, b.Y, FieldX, FieldY, FieldWidth, FieldHeight)
	return s.handlePointer(sx, sy)
}

func TestPlayButtonTogglesSession(t *testing.T) {
	s := newTestScene(0)

	if !clickButton(s) {
		t.Fatal("button click not handled")
	}
	if got := s.sim.State().Phase; got != game.PhasePlaying {
		t.Fatalf("after first click: got %v, want playing", got)
	}

	clickButton(s)
	if got := s.sim.State().Phase; got != game.PhaseIdle {
		t.Errorf("after second click: got %v, want idle", got)
	}
}

func TestClickOutsideFieldIgnored(t *testing.T) {
	s := newTestScene(0)
	clickButton(s)
	advance(s, 1.0)

	tests := []struct {
		name string
		x, y float64
	}{
		{"左侧计分栏", 20, 300},
		{"右侧奖励面板", PanelX + 10, PanelY + 10},
		{"顶部空白", 400, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if s.handlePointer(tt.x, tt.y) {
				t.Errorf("click at (%v, %v) should not be handled", tt.x, tt.y)
			}
		})
	}
}

func TestClickBubblePopsAndScores(t *testing.T) {
	s := newTestScene(0)
	clickButton(s)
	advance(s, 1.0)

	bubbles := s.sim.Bubbles()
	if len(bubbles) == 0 {
		t.Fatal("expected at least one bubble after 1s")
	}
	target := bubbles[0]

	if !clickBubble(s, target) {
		t.Fatal("bubble click not handled")
	}

	popping := 0
	for _, b := range s.sim.Bubbles() {
		if b.Popping {
			popping++
		}
	}
	if popping != 1 {
		t.Fatalf("popping bubbles: got %d, want 1", popping)
	}

	// 破裂中的气泡不可再次点击
	if clickBubble(s, target) {
		t.Error("second click on a popping bubble should be ignored")
	}

	advance(s, s.sim.Config().Timing.PopDuration+frame)
	if got := s.sim.State().Score; got == 0 {
		t.Error("score should increase after pop resolves")
	}
	if len(s.popups) != 1 {
		t.Fatalf("score popups: got %d, want 1", len(s.popups))
	}

	advance(s, ScorePopupDuration)
	if len(s.popups) != 0 {
		t.Errorf("score popups after expiry: got %d, want 0", len(s.popups))
	}
}

func TestPoisonClickShowsGameOver(t *testing.T) {
	s := newTestScene(1)
	clickButton(s)
	advance(s, 1.0)

	bubbles := s.sim.Bubbles()
	if len(bubbles) == 0 {
		t.Fatal("expected a poison bubble after 1s")
	}
	clickBubble(s, bubbles[0])
	advance(s, s.sim.Config().Timing.PopDuration+frame)

	state := s.sim.State()
	if state.Phase != game.PhaseGameOver {
		t.Fatalf("phase: got %v, want game_over", state.Phase)
	}
	title, _, show := overlayMessage(state)
	if !show || title == "" {
		t.Error("game over overlay should be shown")
	}

	// 游戏结束后按钮开始新一局
	clickButton(s)
	if got := s.sim.State(); got.Phase != game.PhasePlaying || got.Score != 0 {
		t.Errorf("restart: got %+v", got)
	}
}

func TestToggleHelpAndSound(t *testing.T) {
	s := newTestScene(0)

	if !s.showHelp() {
		t.Fatal("help should be shown by default")
	}
	s.toggleHelp()
	if s.showHelp() {
		t.Error("help should be hidden after toggle")
	}

	s.toggleSound()
	if s.settingsManager.GetSettings().SoundEnabled {
		t.Error("sound should be disabled after toggle")
	}

	// 无设置管理器时不崩溃
	bare := NewGameScene(s.sim, nil, nil)
	bare.toggleHelp()
	bare.toggleSound()
	bare.OnExit()
	if !bare.showHelp() {
		t.Error("help defaults to shown without settings")
	}
}

// TestTogglesPersistImmediately 切换音效和帮助后无需关闭窗口即已写入存储
func TestTogglesPersistImmediately(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)
	storage, err := gdata.Open(gdata.Config{AppName: "bubblepop_test_scene"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}

	cfg := config.DefaultGameConfig()
	sim := simulation.New(cfg, utils.NewRandomSource(7))
	s := NewGameScene(sim, nil, game.NewSettingsManager(storage))

	s.toggleSound()
	s.toggleHelp()

	reloaded := game.NewSettingsManager(storage).GetSettings()
	if reloaded.SoundEnabled {
		t.Error("SoundEnabled after reload: got true, want false")
	}
	if reloaded.ShowHelp {
		t.Error("ShowHelp after reload: got true, want false")
	}
}

func TestButtonLabel(t *testing.T) {
	tests := []struct {
		phase game.Phase
		want  string
	}{
		{game.PhaseIdle, "Play"},
		{game.PhasePlaying, "Stop"},
		{game.PhaseGameOver, "Play"},
	}
	for _, tt := range tests {
		if got := buttonLabel(tt.phase); got != tt.want {
			t.Errorf("buttonLabel(%v): got %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestRewardPanelLines(t *testing.T) {
	if got := rewardPanelLines(nil, game.RewardToken{}); !reflect.DeepEqual(got, []string{"-"}) {
		t.Errorf("empty panel: got %v", got)
	}

	rewards := []game.RewardToken{
		{Token: "🔥", Label: "fire"},
		{Token: "🎉", Label: "party"},
	}
	want := []string{"fire", "party"}
	if got := rewardPanelLines(rewards, game.RewardToken{}); !reflect.DeepEqual(got, want) {
		t.Errorf("panel lines: got %v, want %v", got, want)
	}

	// 重复抽到较早的奖励时标记它
	want = []string{"* fire", "party"}
	if got := rewardPanelLines(rewards, rewards[0]); !reflect.DeepEqual(got, want) {
		t.Errorf("panel lines with last: got %v, want %v", got, want)
	}
}

func TestOverlayMessage(t *testing.T) {
	title, _, show := overlayMessage(simulation.State{Phase: game.PhaseIdle})
	if !show || title != "Hit Play to start popping drifting bubbles!" {
		t.Errorf("idle overlay: got %q show=%v", title, show)
	}

	if _, _, show := overlayMessage(simulation.State{Phase: game.PhasePlaying}); show {
		t.Error("overlay should be hidden while playing")
	}

	_, subtitle, show := overlayMessage(simulation.State{Phase: game.PhaseGameOver, Score: 42, Level: 1})
	if !show || subtitle != "Final score 42, level 1. Hit Play to try again." {
		t.Errorf("game over subtitle: got %q", subtitle)
	}
}

func TestBubbleLabel(t *testing.T) {
	if got := bubbleLabel(simulation.BubbleView{Points: 5}); got != "5" {
		t.Errorf("points label: got %q, want %q", got, "5")
	}
	if got := bubbleLabel(simulation.BubbleView{Points: 0, IsPoison: true}); got != "X" {
		t.Errorf("poison label: got %q, want %q", got, "X")
	}
}
