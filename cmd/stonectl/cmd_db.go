package main

import (
	"fmt"

	"github.com/gemledger/internal/app"
	"github.com/gemledger/internal/cache"
	"github.com/gemledger/internal/config"
	"github.com/gemledger/internal/logger"

	"github.com/spf13/cobra"
)

// bootDB 加载配置并连接数据库
func bootDB() (*config.Config, error) {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	if err := app.PrepareDatabase(cfg); err != nil {
		return nil, err
	}
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("stonectl_redis_unavailable", "error", err)
	}
	return cfg, nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := bootDB(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "database is up to date")
			return nil
		},
	}
}
