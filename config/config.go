// Package config holds the storefront settings shared by every command.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"storefront/checkout"
	"storefront/logging"
	"storefront/storage"

	"github.com/shopspring/decimal"
)

// StoreConfig is what the shopper sees: branding, hand-off target and the
// free shipping threshold.
type StoreConfig struct {
	Name          string `help:"Store name shown in order messages." default:"Trinetram" env:"STOREFRONT_STORE_NAME"`
	ContactHandle string `help:"Chat handle orders are sent to." default:"919372340493" env:"STOREFRONT_CONTACT_HANDLE"`
	LinkBase      string `help:"Base URL of the chat deep link." default:"https://wa.me" env:"STOREFRONT_LINK_BASE"`
	FreeShipping  string `help:"Cart total that unlocks free shipping." default:"399" env:"STOREFRONT_FREE_SHIPPING"`
	Catalog       string `help:"YAML product catalog. The built-in catalog is used when empty." env:"STOREFRONT_CATALOG" placeholder:"FILE"`
}

// StorageConfig selects where the cart record lives.
type StorageConfig struct {
	Kind       string `name:"kind" help:"Cart storage backend." enum:"file,sqlite,redis,memory" default:"file" env:"STOREFRONT_STORAGE"`
	DataDir    string `help:"Directory for the file backend." default:".storefront" env:"STOREFRONT_DATA_DIR"`
	SQLitePath string `name:"sqlite-path" help:"Database file for the sqlite backend." default:".storefront/cart.db" env:"STOREFRONT_SQLITE_PATH"`
	RedisAddr  string `help:"Address of the redis backend." default:"localhost:6379" env:"REDIS_ADDR"`
	DeviceID   string `help:"Identifies this shopper's cart record." default:"local" env:"STOREFRONT_DEVICE_ID"`
}

// ServerConfig configures the network listeners.
type ServerConfig struct {
	Port     string `help:"gRPC port (health and reflection)." default:"50051" env:"PORT"`
	HTTPPort string `help:"HTTP JSON gateway port." default:"8080" env:"HTTP_PORT"`
}

// Config is embedded into the CLI.
type Config struct {
	Store   StoreConfig    `embed:"" prefix:"store-" group:"Store:"`
	Storage StorageConfig  `embed:"" prefix:"storage-" group:"Storage:"`
	Server  ServerConfig   `embed:"" group:"Server:"`
	Log     logging.Config `embed:"" prefix:"log-" group:"Logging:"`
}

// Validate rejects settings no command could run with.
func (c Config) Validate() error {
	var errs []error

	if _, err := c.FreeShippingThreshold(); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.Store.ContactHandle) == "" {
		errs = append(errs, errors.New("contact handle is required"))
	}
	if u, err := url.Parse(c.Store.LinkBase); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("invalid link base %q", c.Store.LinkBase))
	}
	if strings.TrimSpace(c.Storage.DeviceID) == "" {
		errs = append(errs, errors.New("device id is required"))
	}

	switch c.Storage.Kind {
	case storage.KindFile:
		if strings.TrimSpace(c.Storage.DataDir) == "" {
			errs = append(errs, errors.New("file storage requires a data directory"))
		}
	case storage.KindSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			errs = append(errs, errors.New("sqlite storage requires a database path"))
		}
	case storage.KindRedis:
		if strings.TrimSpace(c.Storage.RedisAddr) == "" {
			errs = append(errs, errors.New("redis storage requires an address"))
		}
	case storage.KindMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown storage kind %q", c.Storage.Kind))
	}

	if strings.TrimSpace(c.Server.Port) == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if strings.TrimSpace(c.Server.HTTPPort) == "" {
		errs = append(errs, errors.New("http port is required"))
	}

	return errors.Join(errs...)
}

// FreeShippingThreshold parses the configured threshold.
func (c Config) FreeShippingThreshold() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(c.Store.FreeShipping))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid free shipping threshold %q: %w", c.Store.FreeShipping, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("free shipping threshold cannot be negative: %s", d)
	}
	return d, nil
}

// Formatter builds the order formatter for the configured store.
func (c Config) Formatter() checkout.Formatter {
	return checkout.NewFormatter(c.Store.Name, c.Store.ContactHandle, c.Store.LinkBase)
}

// StorageOptions maps the storage flags onto storage.Options.
func (c Config) StorageOptions() storage.Options {
	return storage.Options{
		Kind:       c.Storage.Kind,
		DataDir:    c.Storage.DataDir,
		SQLitePath: c.Storage.SQLitePath,
		RedisAddr:  c.Storage.RedisAddr,
	}
}

// Default returns the configuration kong would produce with no flags or
// environment.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Name:          checkout.DefaultStoreName,
			ContactHandle: checkout.DefaultHandle,
			LinkBase:      checkout.DefaultLinkBase,
			FreeShipping:  "399",
		},
		Storage: StorageConfig{
			Kind:       storage.KindFile,
			DataDir:    ".storefront",
			SQLitePath: ".storefront/cart.db",
			RedisAddr:  "localhost:6379",
			DeviceID:   "local",
		},
		Server: ServerConfig{Port: "50051", HTTPPort: "8080"},
		Log:    logging.Config{Mode: "production", Level: "info"},
	}
}
