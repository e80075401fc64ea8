package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/core/staffing"
)

// SnapshotKey はレコード一式を格納するキーです。Records の形を変えたら版を上げます。
const SnapshotKey = "staffing:snapshot:v1"

// SnapshotCache は SnapshotSource の前段に置く Redis キャッシュです。
type SnapshotCache struct {
	rdb    redis.Cmdable
	source staffing.SnapshotSource
	ttl    time.Duration
	logger *zap.Logger
	sf     singleflight.Group
}

// NewSnapshotCache は SnapshotCache を生成します。
func NewSnapshotCache(rdb redis.Cmdable, source staffing.SnapshotSource, ttl time.Duration, logger *zap.Logger) *SnapshotCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotCache{rdb: rdb, source: source, ttl: ttl, logger: logger}
}

var _ staffing.SnapshotSource = (*SnapshotCache)(nil)

// LoadRecords はキャッシュを優先し、無ければ source から読み込んで格納します。
// Redis の障害は集計を止めず、source への読み込みに切り替えます。
func (c *SnapshotCache) LoadRecords(ctx context.Context) (*staffing.Records, error) {
	if records, ok := c.get(ctx); ok {
		return records, nil
	}

	v, err, _ := c.sf.Do(SnapshotKey, func() (any, error) {
		records, err := c.source.LoadRecords(ctx)
		if err != nil {
			return nil, err
		}
		c.set(ctx, records)
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*staffing.Records), nil
}

// Invalidate はキャッシュを破棄します。
func (c *SnapshotCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, SnapshotKey).Err(); err != nil {
		return fmt.Errorf("cache: invalidate %s: %w", SnapshotKey, err)
	}
	return nil
}

func (c *SnapshotCache) get(ctx context.Context) (*staffing.Records, bool) {
	raw, err := c.rdb.Get(ctx, SnapshotKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("snapshot cache read failed", zap.String("key", SnapshotKey), zap.Error(err))
		}
		return nil, false
	}

	var records staffing.Records
	if err := json.Unmarshal(raw, &records); err != nil {
		c.logger.Warn("snapshot cache entry is corrupted", zap.String("key", SnapshotKey), zap.Error(err))
		return nil, false
	}
	return &records, true
}

func (c *SnapshotCache) set(ctx context.Context, records *staffing.Records) {
	raw, err := json.Marshal(records)
	if err != nil {
		c.logger.Warn("snapshot cache encode failed", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, SnapshotKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("snapshot cache write failed", zap.String("key", SnapshotKey), zap.Error(err))
	}
}
