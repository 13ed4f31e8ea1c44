// Package logging builds the zap logger shared by every component.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Config selects the encoder and minimum level.
type Config struct {
	Mode  string `help:"Log output mode (production: JSON, development: console)." enum:"production,development" default:"production" env:"LOG_MODE"`
	Level string `help:"Minimum log level." default:"info" env:"LOG_LEVEL"`
}

// New builds a logger for cfg. Both modes write to stderr.
func New(cfg Config) (*zap.Logger, error) {
	var zcfg zap.Config
	switch strings.ToLower(strings.TrimSpace(cfg.Mode)) {
	case "dev", "development":
		zcfg = zap.NewDevelopmentConfig()
	case "", "prod", "production":
		zcfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("unknown log mode %q", cfg.Mode)
	}

	if lvl := strings.TrimSpace(cfg.Level); lvl != "" {
		level, err := zap.ParseAtomicLevel(lvl)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		zcfg.Level = level
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
