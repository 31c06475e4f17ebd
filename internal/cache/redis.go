package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/quarrydata/quarry/pkg/dataset"
	"github.com/quarrydata/quarry/pkg/table"
)

// Redis stores summary artifacts in a Redis server, for lab setups
// where several machines share one summary cache. Keys are namespaced
// as quarry:summary:<kind>:<name>.
type Redis struct {
	rdb *redis.Client
}

var _ dataset.SummaryStore = (*Redis)(nil)

// NewRedis creates a Redis-backed store from connection options.
func NewRedis(opts *redis.Options) *Redis {
	return &Redis{rdb: redis.NewClient(opts)}
}

// Close closes the Redis connection. Implements io.Closer.
func (r *Redis) Close() error {
	return r.rdb.Close()
}

// Ping verifies Redis connectivity. Useful for health checks.
func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func summaryKey(name, kind string) string {
	return fmt.Sprintf("quarry:summary:%s:%s", kind, name)
}

// Exists reports whether a summary is stored for (name, kind).
func (r *Redis) Exists(ctx context.Context, name, kind string) (bool, error) {
	n, err := r.rdb.Exists(ctx, summaryKey(name, kind)).Result()
	if err != nil {
		return false, fmt.Errorf("cache: checking summary for %q: %w", name, err)
	}
	return n > 0, nil
}

// Load retrieves the stored summary table for (name, kind).
func (r *Redis) Load(ctx context.Context, name, kind string) (*table.Table, error) {
	data, err := r.rdb.Get(ctx, summaryKey(name, kind)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("cache: loading summary for %q: %w", name, err)
	}
	return unmarshalTable(data)
}

// Save stores the summary table for (name, kind).
func (r *Redis) Save(ctx context.Context, name, kind string, t *table.Table) error {
	data, err := marshalTable(t)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, summaryKey(name, kind), data, 0).Err(); err != nil {
		return fmt.Errorf("cache: saving summary for %q: %w", name, err)
	}
	return nil
}
