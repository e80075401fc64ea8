package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/adapters/cache"
	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/platform/config"
	rdb "github.com/ogurasousui/staffing-grpc-clean-arch/internal/platform/db/redis"
)

// errCacheDisabled は設定でキャッシュが無効な場合のエラーです。
var errCacheDisabled = errors.New("cache is disabled: cache.redis.addr is empty")

func (c *CLI) cacheCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the service snapshot cache",
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")

	cmd.AddCommand(&cobra.Command{
		Use:   "invalidate",
		Short: "Drop the cached snapshot so the next query reads the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPathOrDefault(configPath))
			if err != nil {
				return err
			}
			if !cfg.Cache.Enabled() {
				return errCacheDisabled
			}

			client, err := rdb.NewClient(cmd.Context(), cfg.Cache.Redis)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := cache.NewSnapshotCache(client, nil, cfg.Cache.TTL, c.logger).Invalidate(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.out, "invalidated %s\n", cache.SnapshotKey)
			return err
		},
	})

	return cmd
}

func configPathOrDefault(path string) string {
	if path != "" {
		return path
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return "assets/local.yaml"
}
