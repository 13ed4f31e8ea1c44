package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisKeyPrefix namespaces cart records in a shared Redis.
const RedisKeyPrefix = "storefront:cart:"

// RedisBackend stores each record as a plain string value.
type RedisBackend struct {
	rdb    *goredis.Client
	prefix string
}

// NewRedisBackend connects to addr and verifies the connection with PING.
func NewRedisBackend(ctx context.Context, addr string) (*RedisBackend, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("redis storage requires an address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, BackendError("open", fmt.Errorf("redis ping: %w", err))
	}

	return &RedisBackend{rdb: rdb, prefix: RedisKeyPrefix}, nil
}

func (r *RedisBackend) redisKey(key string) string {
	return r.prefix + key
}

func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	body, err := r.rdb.Get(ctx, r.redisKey(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, NotFoundError("get")
	}
	if err != nil {
		return nil, BackendError("get", err)
	}
	return body, nil
}

func (r *RedisBackend) Put(ctx context.Context, key string, body []byte) error {
	if err := r.rdb.Set(ctx, r.redisKey(key), body, 0).Err(); err != nil {
		return BackendError("put", err)
	}
	return nil
}

func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, r.redisKey(key)).Err(); err != nil {
		return BackendError("delete", err)
	}
	return nil
}

func (r *RedisBackend) Close() error {
	return r.rdb.Close()
}
