// Package storage persists the cart as a single JSON record per device.
package storage

import (
	"context"
	"fmt"
	"strings"
)

// Backend is a byte-oriented key/value store holding one record per key.
//
// Get returns an *Error with kind ErrNotFound when nothing is stored under key.
// Delete of a missing key is not an error.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend kinds accepted by Open.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindRedis  = "redis"
	KindMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Kind       string
	DataDir    string
	SQLitePath string
	RedisAddr  string
}

// Open builds the backend named by opts.Kind.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Kind)) {
	case KindFile:
		b, err := NewFileBackend(opts.DataDir)
		if err != nil {
			return nil, err
		}
		return b, nil
	case KindSQLite:
		b, err := OpenSQLite(ctx, opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		return b, nil
	case KindRedis:
		b, err := NewRedisBackend(ctx, opts.RedisAddr)
		if err != nil {
			return nil, err
		}
		return b, nil
	case KindMemory, "":
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage kind %q", opts.Kind)
	}
}
