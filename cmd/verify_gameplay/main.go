// verify_gameplay 无头运行一局或多局自动游戏，输出统计信息
//
// 用法:
//
//	go run ./cmd/verify_gameplay -seed 42 -duration 120
//	go run ./cmd/verify_gameplay -sessions 10 -mistake 0.05 -config data/game_config.yaml
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/bubblepop/pkg/config"
	"github.com/decker502/bubblepop/pkg/game"
	"github.com/decker502/bubblepop/pkg/simulation"
	"github.com/decker502/bubblepop/pkg/utils"
)

const frame = 1.0 / 60.0

var (
	verbose       = flag.Bool("verbose", false, "显示详细调试信息")
	seed          = flag.Int64("seed", 1, "随机种子")
	duration      = flag.Float64("duration", 120, "每局最长时间（秒）")
	sessions      = flag.Int("sessions", 1, "连续运行的局数（第 i 局使用 seed+i）")
	clickInterval = flag.Float64("click", 0.35, "自动点击间隔（秒）")
	mistake       = flag.Float64("mistake", 0, "每次点击误点毒气泡的概率")
	configPath    = flag.String("config", "", "外部玩法配置文件（YAML），为空使用默认配置")
)

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg := config.DefaultGameConfig()
	if *configPath != "" {
		loaded, err := config.LoadGameConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	for i := 0; i < *sessions; i++ {
		runSession(cfg, *seed+int64(i))
	}
}

// runSession 运行一局并打印结果
func runSession(cfg *config.GameConfig, sessionSeed int64) {
	sim := simulation.New(cfg, utils.NewRandomSource(sessionSeed))
	player := simulation.NewAutoPlayer(sim, utils.NewRandomSource(sessionSeed^0x5bd1e995), *clickInterval, *mistake)

	var elapsed float64
	sim.SetOnLevelUp(func(level int, d game.Difficulty) {
		fmt.Printf("  [%6.2fs] level %d  spawn=%.3fs drift=%.3fs bias=%.2f\n",
			elapsed, level, d.SpawnInterval, d.DriftInterval, d.UpwardBias)
	})
	sim.SetOnRewardCollected(func(token game.RewardToken, isNew bool) {
		status := "dup"
		if isNew {
			status = "new"
		}
		fmt.Printf("  [%6.2fs] reward %s (%s)\n", elapsed, token.Label, status)
	})
	sim.SetOnGameOver(func() {
		fmt.Printf("  [%6.2fs] poison bubble popped, game over\n", elapsed)
	})

	fmt.Printf("session seed=%d\n", sessionSeed)
	sim.Start()
	for elapsed < *duration && sim.State().Phase == game.PhasePlaying {
		player.Update(frame)
		sim.Update(frame)
		elapsed += frame
	}

	state := sim.State()
	stats := sim.Stats()
	fmt.Printf("  result: phase=%s score=%d level=%d combo=x%d rewards=%d clicks=%d time=%.1fs\n",
		state.Phase, state.Score, state.Level, state.Combo, len(state.Rewards), player.Clicks(), elapsed)
	fmt.Printf("  stats:  spawned=%d rejected=%d popped=%d expired=%d culled=%d\n",
		stats.Spawned, stats.SpawnRejected, stats.Popped, stats.Expired, stats.Culled)
	fmt.Printf("  tuning: spawn=%.3fs drift=%.3fs bias=%.2f\n",
		stats.SpawnInterval, stats.DriftInterval, stats.UpwardBias)
}
