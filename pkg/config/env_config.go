package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig 从环境变量读取的启动配置
// 命令行参数优先于环境变量
type EnvConfig struct {
	Verbose    bool   `env:"BUBBLEPOP_VERBOSE"`                           // 输出详细日志
	Seed       int64  `env:"BUBBLEPOP_SEED"`                              // 随机种子，0 表示使用当前时间
	ConfigPath string `env:"BUBBLEPOP_CONFIG"`                            // 外部玩法配置文件，空表示使用内置配置
	AppName    string `env:"BUBBLEPOP_APP_NAME" envDefault:"bubblepop"`   // gdata 存储目录名
	Fullscreen bool   `env:"BUBBLEPOP_FULLSCREEN"`                        // 强制全屏启动
}

// LoadEnvConfig 解析环境变量
func LoadEnvConfig() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{AppName: "bubblepop"}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.AppName == "" {
		cfg.AppName = "bubblepop"
	}
	return cfg, nil
}
