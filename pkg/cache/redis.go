package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/paddock-dev/paddock/config"
)

type redisDriver struct {
	rdb *redis.Client
	ctx context.Context
}

func newRedisDriver() (*redisDriver, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}

	return &redisDriver{rdb: rdb, ctx: ctx}, nil
}

func (d *redisDriver) get(key string) ([]byte, bool) {
	val, err := d.rdb.Get(d.ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (d *redisDriver) set(key string, value []byte, ttl time.Duration) error {
	return d.rdb.Set(d.ctx, key, value, ttl).Err()
}

func (d *redisDriver) del(key string) error {
	return d.rdb.Del(d.ctx, key).Err()
}

func marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func unmarshal(raw []byte, dest interface{}) bool {
	return json.Unmarshal(raw, dest) == nil
}
