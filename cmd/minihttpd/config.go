package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caiflower/minihttpd/global/env"
	"github.com/caiflower/minihttpd/pkg/logger"
	"github.com/caiflower/minihttpd/pkg/tools"
	"github.com/caiflower/minihttpd/web/server"
)

const (
	configFileName = "minihttpd.yaml"
	publicPathEnv  = "PUBLIC_PATH"
)

type AppConfig struct {
	Server      server.Config `yaml:"server" toml:"server"`
	Logger      logger.Config `yaml:"logger" toml:"logger"`
	PublicPath  string        `yaml:"publicPath" toml:"publicPath" default:"./public"`
	MetricsAddr string        `yaml:"metricsAddr" toml:"metricsAddr"`                 // 为空时不启动metrics服务
	StatsCron   string        `yaml:"statsCron" toml:"statsCron" default:"@every 1m"` // 线程池统计日志的cron表达式
	CacheTTL    string        `yaml:"cacheTTL" toml:"cacheTTL" default:"30s"`         // 0 关闭文件缓存
}

func (c *AppConfig) cacheTTL() (time.Duration, error) {
	ttl, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 0, fmt.Errorf("cacheTTL %q: %w", c.CacheTTL, err)
	}
	return ttl, nil
}

// loadConfig reads path, or $CONFIG_PATH/minihttpd.yaml when path is empty.
// A missing default file is not an error; an explicit path must exist.
// PUBLIC_PATH overrides the configured public directory.
func loadConfig(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	file := path
	if file == "" {
		file = filepath.Join(env.ConfigPath, configFileName)
	}

	switch {
	case tools.FileExists(file):
		if err := tools.LoadConfig(file, cfg); err != nil {
			return nil, fmt.Errorf("load config %s: %w", file, err)
		}
	case path != "":
		return nil, fmt.Errorf("config file %s not found", path)
	default:
		if err := tools.SetDefaults(cfg); err != nil {
			return nil, err
		}
	}

	if public := os.Getenv(publicPathEnv); public != "" {
		cfg.PublicPath = public
	}
	return cfg, nil
}
