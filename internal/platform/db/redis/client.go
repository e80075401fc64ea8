package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/platform/config"
)

const pingTimeout = 3 * time.Second

// BuildOptions は cache.redis 設定から go-redis のオプションを構築します。
func BuildOptions(cfg config.RedisConfig) *goredis.Options {
	return &goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// NewClient は Redis クライアントを生成し疎通確認を行います。
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis: addr must be set")
	}

	client := goredis.NewClient(BuildOptions(cfg))

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}

	return client, nil
}
