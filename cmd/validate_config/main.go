// validate_config 校验玩法配置 YAML 并打印生效后的参数
//
// 用法:
//
//	go run ./cmd/validate_config data/game_config.yaml
package main

import (
	"fmt"
	"os"

	"github.com/decker502/bubblepop/pkg/config"
	"gopkg.in/yaml.v3"
)

func main() {
	path := "data/game_config.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.LoadGameConfig(path)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ %s 校验通过\n", path)
	fmt.Printf("✅ 档位数量: %d，奖励数量: %d\n", len(cfg.Spawn.Tiers), len(cfg.Rewards.Catalog))

	// 打印完整生效配置（含默认值）
	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Printf("❌ 序列化失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(string(out))
}
