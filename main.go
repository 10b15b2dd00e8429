package main

import (
	"flag"
	"log"

	"github.com/decker502/bubblepop/pkg/app"
	"github.com/decker502/bubblepop/pkg/config"
	"github.com/decker502/bubblepop/pkg/embedded"
	"github.com/decker502/bubblepop/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	// 环境变量提供默认值，命令行参数覆盖
	envCfg, err := config.LoadEnvConfig()
	if err != nil {
		log.Printf("[Main] Warning: %v (using defaults)", err)
	}

	verbose := flag.Bool("verbose", envCfg.Verbose, "显示详细日志")
	seed := flag.Int64("seed", envCfg.Seed, "随机种子（0 表示使用当前时间）")
	configPath := flag.String("config", envCfg.ConfigPath, "外部玩法配置文件（YAML），为空则使用内置配置")
	fullscreen := flag.Bool("fullscreen", envCfg.Fullscreen, "全屏启动")
	flag.Parse()

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Seed:       *seed,
		ConfigPath: *configPath,
		AppName:    envCfg.AppName,
		Fullscreen: *fullscreen,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(scenes.ScreenWidth, scenes.ScreenHeight)
	ebiten.SetWindowTitle("Bubble Pop")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
