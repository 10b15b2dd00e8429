package systems

import (
	"math"
	"strings"
	"testing"

	"github.com/decker502/bubblepop/pkg/config"
	"github.com/decker502/bubblepop/pkg/ecs"
	"github.com/decker502/bubblepop/pkg/entities"
	"github.com/decker502/bubblepop/pkg/game"
)

// scriptedRandom 按脚本顺序返回随机值，耗尽后循环
type scriptedRandom struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptedRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *scriptedRandom) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.ii%len(r.ints)]
	r.ii++
	return v % n
}

// testWorld 一个已开始的会话以及常用系统
type testWorld struct {
	em    *ecs.EntityManager
	cfg   *config.GameConfig
	state *game.GameState
	pop   *PopSystem
	life  *LifetimeSystem
}

func newTestWorld() *testWorld {
	cfg := config.DefaultGameConfig()
	em := ecs.NewEntityManager()
	gs := game.NewGameState(cfg, &scriptedRandom{})
	gs.Start()
	return &testWorld{
		em:    em,
		cfg:   cfg,
		state: gs,
		pop:   NewPopSystem(em, cfg, gs),
		life:  NewLifetimeSystem(em),
	}
}

// addBubble 在指定位置放置一个气泡
func (w *testWorld) addBubble(x, y float64, points int, poison bool) ecs.EntityID {
	return entities.NewBubbleEntity(w.em, entities.BubbleSpec{
		Points:   points,
		Size:     44,
		IsPoison: poison,
		X:        x,
		Y:        y,
	}, w.cfg.Spawn.Lifetime)
}

// expectPanic 断言 fn panic 且信息包含 substr
func expectPanic(t *testing.T, substr string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q", substr)
		}
		msg, _ := r.(string)
		if !strings.Contains(msg, substr) {
			t.Errorf("panic message %q does not contain %q", msg, substr)
		}
	}()
	fn()
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
