package systems

import (
	"testing"

	"github.com/decker502/bubblepop/pkg/components"
	"github.com/decker502/bubblepop/pkg/ecs"
	"github.com/decker502/bubblepop/pkg/game"
)

func TestRequestPopGuards(t *testing.T) {
	w := newTestWorld()
	id := w.addBubble(50, 70, 3, false)

	if !w.pop.RequestPop(id) {
		t.Fatal("first RequestPop should succeed")
	}
	if w.pop.RequestPop(id) {
		t.Error("second RequestPop on a popping bubble should be ignored")
	}
	if w.pop.RequestPop(9999) {
		t.Error("RequestPop on unknown id should be a no-op")
	}

	bubble, _ := ecs.GetComponent[*components.BubbleComponent](w.em, id)
	if bubble.State != components.BubblePopping {
		t.Errorf("State: got %v, want popping", bubble.State)
	}
	clickable, _ := ecs.GetComponent[*components.ClickableComponent](w.em, id)
	if clickable.IsEnabled {
		t.Error("popping bubble should not be clickable")
	}
	if ecs.HasComponent[*components.LifetimeComponent](w.em, id) {
		t.Error("popping bubble should no longer expire")
	}
	if !w.pop.IsPopping(id) {
		t.Error("IsPopping: got false, want true")
	}
}

func TestRequestPopRejectedWhenNotPlaying(t *testing.T) {
	w := newTestWorld()
	id := w.addBubble(50, 70, 3, false)
	w.state.Stop()

	if w.pop.RequestPop(id) {
		t.Error("RequestPop in Idle should be rejected")
	}
}

func TestPopScoresAfterAnimation(t *testing.T) {
	w := newTestWorld()
	id := w.addBubble(50, 70, 3, false)

	var resolved []game.PopOutcome
	w.pop.SetOnResolved(func(_ ecs.EntityID, _ game.PopEvent, outcome game.PopOutcome) {
		resolved = append(resolved, outcome)
	})

	w.pop.RequestPop(id)
	w.pop.Update(0.2)
	if w.state.Score() != 0 {
		t.Errorf("score before animation end: got %d, want 0", w.state.Score())
	}
	scale, _ := ecs.GetComponent[*components.ScaleComponent](w.em, id)
	if scale.Scale >= 1 || scale.Alpha >= 1 {
		t.Errorf("scale/alpha should shrink during pop, got %+v", *scale)
	}

	w.pop.Update(0.12)
	if w.state.Score() != 3 {
		t.Errorf("score after animation: got %d, want 3", w.state.Score())
	}
	if len(resolved) != 1 || resolved[0].Gained != 3 {
		t.Errorf("resolved: got %+v", resolved)
	}
	if !w.em.IsMarkedForDestroy(id) {
		t.Error("popped bubble should be destroyed")
	}
}

// TestPopBeatsExpiry 破裂请求先到，到期事件作废
func TestPopBeatsExpiry(t *testing.T) {
	w := newTestWorld()
	id := w.addBubble(50, 70, 1, false)

	w.life.Update(6.9)
	w.pop.RequestPop(id)
	w.life.Update(0.2)
	if w.em.IsMarkedForDestroy(id) {
		t.Fatal("popping bubble expired")
	}
	w.pop.Update(0.32)
	if w.state.Score() != 1 {
		t.Errorf("score: got %d, want 1", w.state.Score())
	}
}

// TestExpiryBeatsPop 先到期的气泡不能再被点破
func TestExpiryBeatsPop(t *testing.T) {
	w := newTestWorld()
	id := w.addBubble(50, 70, 1, false)

	w.life.Update(7.0)
	if w.pop.RequestPop(id) {
		t.Error("RequestPop on an expired bubble should be a no-op")
	}
	w.em.RemoveMarkedEntities()
	if w.pop.RequestPop(id) {
		t.Error("RequestPop on a removed bubble should be a no-op")
	}
	if w.state.Score() != 0 || w.state.Combo() != 1 {
		t.Errorf("expiry changed score/combo: %d/%d", w.state.Score(), w.state.Combo())
	}
}

func TestPopComboChain(t *testing.T) {
	w := newTestWorld()
	first := w.addBubble(20, 70, 3, false)
	second := w.addBubble(80, 70, 3, false)

	w.pop.RequestPop(first)
	w.state.Advance(0.32)
	w.pop.Update(0.32)

	w.pop.RequestPop(second)
	w.state.Advance(0.32)
	w.pop.Update(0.32)

	if w.state.Combo() != 2 {
		t.Errorf("combo: got %d, want 2", w.state.Combo())
	}
	if w.state.Score() != 9 {
		t.Errorf("score: got %d, want 9", w.state.Score())
	}
}

// TestPoisonFreezesPendingPops 毒气泡结算后，其余破裂动画不再结算
func TestPoisonFreezesPendingPops(t *testing.T) {
	w := newTestWorld()
	poison := w.addBubble(20, 70, 0, true)
	other := w.addBubble(80, 70, 5, false)

	w.pop.RequestPop(poison)
	w.pop.RequestPop(other)
	w.pop.Update(0.5)

	if !w.state.IsGameOver() {
		t.Fatal("poison pop should end the game")
	}
	if w.state.Score() != 0 {
		t.Errorf("score: got %d, want 0", w.state.Score())
	}
	if w.em.IsMarkedForDestroy(other) {
		t.Error("pending pop should not resolve after game over")
	}
}

func TestPopCreatesNotices(t *testing.T) {
	w := newTestWorld()
	id := w.addBubble(40, 60, 5, false)

	// 把分数推到 95：再得 5 分同时跨过 100 与 20 的倍数
	for i := 0; i < 19; i++ {
		w.state.Advance(1)
		w.state.ApplyPop(game.PopEvent{Points: 5})
	}
	if w.state.Score() != 95 {
		t.Fatalf("setup score: got %d, want 95", w.state.Score())
	}
	w.state.Advance(1)

	w.pop.RequestPop(id)
	w.pop.Update(0.32)

	notices := ecs.GetEntitiesWith1[*components.NoticeComponent](w.em)
	var kinds []components.NoticeKind
	for _, nid := range notices {
		n, _ := ecs.GetComponent[*components.NoticeComponent](w.em, nid)
		kinds = append(kinds, n.Kind)
		if n.Kind == components.NoticeReward && (n.X != 40 || n.Y != 60) {
			t.Errorf("reward notice position: got (%v, %v), want (40, 60)", n.X, n.Y)
		}
		if n.Kind == components.NoticeLevelUp && n.Text != "Level 2!" {
			t.Errorf("level notice text: got %q", n.Text)
		}
	}
	if len(kinds) != 2 {
		t.Errorf("notices: got %v, want level-up and reward", kinds)
	}

	// 提示到期后由 LifetimeSystem 清理
	w.life.Update(2.0)
	w.em.RemoveMarkedEntities()
	if left := ecs.GetEntitiesWith1[*components.NoticeComponent](w.em); len(left) != 0 {
		t.Errorf("notices after expiry: got %d, want 0", len(left))
	}
}
