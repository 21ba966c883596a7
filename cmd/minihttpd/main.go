/*
 * Copyright 2024 caiflower Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/caiflower/minihttpd/global"
	"github.com/caiflower/minihttpd/pkg/crontab"
	"github.com/caiflower/minihttpd/pkg/logger"
	"github.com/caiflower/minihttpd/pkg/tools"
	"github.com/caiflower/minihttpd/web/metrics"
	"github.com/caiflower/minihttpd/web/server"
	"github.com/caiflower/minihttpd/web/static"
)

func main() {
	configPath := flag.String("config", "", "config file, .yaml or .toml")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "minihttpd: %s\n", err)
		os.Exit(1)
	}
	logger.InitLogger(&cfg.Logger)
	logger.Info("[main] config: %s", tools.ToJson(cfg))

	if err = setup(cfg); err != nil {
		logger.Fatal("[main] %s", err.Error())
		logger.DefaultLogger().Close()
		os.Exit(1)
	}

	global.DefaultResourceManger.Signal()
	logger.DefaultLogger().Close()
}

// setup registers every daemon with the resource manager; nothing listens
// until Signal starts them.
func setup(cfg *AppConfig) error {
	ttl, err := cfg.cacheTTL()
	if err != nil {
		return err
	}

	handler, err := static.NewHandler(cfg.PublicPath, static.WithCacheTTL(ttl))
	if err != nil {
		return err
	}

	srv := server.NewServer(cfg.Server, static.Factory(handler))
	global.DefaultResourceManger.AddDaemon(srv)

	if cfg.MetricsAddr != "" {
		global.DefaultResourceManger.AddDaemonWithOrder(metrics.NewServer(cfg.MetricsAddr), 200000)
	}

	if _, err = crontab.AddFunc(cfg.StatsCron, "pool stats", func() {
		logger.Info("[pool] stats %s", tools.ToJson(srv.Pool().Stats()))
	}); err != nil {
		return err
	}
	global.DefaultResourceManger.AddDaemonWithOrder(crontab.DefaultCronManger, 300000)

	return nil
}
