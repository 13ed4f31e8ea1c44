// Command storefront runs the cart engine as an HTTP service or drives a
// shopper's cart from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"storefront/cart"
	"storefront/catalog"
	"storefront/config"
	"storefront/logging"
	"storefront/server"
	"storefront/storage"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
)

var version = "dev"

type cli struct {
	Version kong.VersionFlag `help:"Show version information."`
	Plain   bool             `help:"Disable colour output." env:"STOREFRONT_PLAIN"`
	Config  config.Config    `embed:""`

	Serve    serveCmd    `cmd:"" help:"Serve the HTTP JSON gateway and gRPC health endpoint."`
	Show     showCmd     `cmd:"" default:"1" help:"Show the cart."`
	Add      addCmd      `cmd:"" help:"Add a catalog product to the cart."`
	Update   updateCmd   `cmd:"" help:"Change the quantity of a cart line. Zero removes it."`
	Remove   removeCmd   `cmd:"" help:"Remove a line from the cart."`
	Clear    clearCmd    `cmd:"" help:"Empty the cart."`
	Purge    purgeCmd    `cmd:"" help:"Delete the stored cart record."`
	Products productsCmd `cmd:"" help:"List catalog products."`
	Order    orderCmd    `cmd:"" help:"Print the quick order link for one product."`
	Checkout checkoutCmd `cmd:"" help:"Print the order message and chat link for the cart."`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("storefront"),
		kong.Description("Storefront cart engine."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	kctx.FatalIfErrorf(c.Config.Validate())

	logger, err := logging.New(c.Config.Log)
	kctx.FatalIfErrorf(err)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx, c.Config, logger)
	kctx.FatalIfErrorf(err)
	defer a.Close()

	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.Bind(a, newStyle(!c.Plain))
	err = kctx.Run()
	kctx.FatalIfErrorf(err)
}

// app is the wired engine every command runs against.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	backend storage.Backend
	adapter *storage.Adapter
	svc     *server.Service
}

func openApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	threshold, err := cfg.FreeShippingThreshold()
	if err != nil {
		return nil, err
	}
	cat, err := catalog.LoadOrDefault(cfg.Store.Catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	backend, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Kind, err)
	}

	adapter := storage.NewAdapter(backend, cfg.Storage.DeviceID, logger.Named("storage"))
	store := cart.NewStore(ctx, adapter, logger.Named("cart"))
	svc := server.NewService(store, cat, cfg.Formatter(), threshold, logger.Named("service"))

	logger.Debug("storefront ready",
		zap.String("storage", cfg.Storage.Kind),
		zap.String("cart_key", adapter.Key()),
		zap.Int("products", cat.Len()),
	)
	return &app{cfg: cfg, logger: logger, backend: backend, adapter: adapter, svc: svc}, nil
}

func (a *app) Close() {
	a.svc.Close()
	if err := a.backend.Close(); err != nil {
		a.logger.Warn("failed to close storage", zap.Error(err))
	}
}
