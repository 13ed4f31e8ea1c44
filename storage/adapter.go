package storage

import (
	"context"
	"fmt"

	"storefront/cart"

	"go.uber.org/zap"
)

// Adapter persists one device's cart through a Backend. It implements
// cart.Persister.
type Adapter struct {
	backend  Backend
	key      string
	upcaster *Upcaster
	logger   *zap.Logger
}

var _ cart.Persister = (*Adapter)(nil)

// NewAdapter binds backend to the cart record of deviceID.
func NewAdapter(backend Backend, deviceID string, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	key := CartKey(deviceID)
	return &Adapter{
		backend:  backend,
		key:      key,
		upcaster: DefaultUpcaster(),
		logger:   logger.With(zap.String("cart_key", key)),
	}
}

// WithUpcaster replaces the legacy record handlers.
func (a *Adapter) WithUpcaster(up *Upcaster) *Adapter {
	a.upcaster = up
	return a
}

// Key returns the backend key the cart is stored under.
func (a *Adapter) Key() string {
	return a.key
}

// Load reads the stored cart. A missing, unreadable or undecodable record
// yields an empty cart.
func (a *Adapter) Load(ctx context.Context) []cart.CartItem {
	body, err := a.backend.Get(ctx, a.key)
	if err != nil {
		if IsNotFound(err) {
			a.logger.Debug("no stored cart")
			return []cart.CartItem{}
		}
		a.logger.Warn("stored cart unreadable, starting empty", zap.Error(err))
		return []cart.CartItem{}
	}

	result, err := DecodeItems(body, a.upcaster)
	if err != nil {
		a.logger.Warn("stored cart corrupt, starting empty",
			zap.Error(err),
			zap.Int("bytes", len(body)),
		)
		return []cart.CartItem{}
	}
	if result.Dropped > 0 {
		a.logger.Warn("dropped malformed cart lines", zap.Int("dropped", result.Dropped))
	}
	if result.Items == nil {
		return []cart.CartItem{}
	}
	return result.Items
}

// Save overwrites the stored cart with items.
func (a *Adapter) Save(ctx context.Context, items []cart.CartItem) error {
	body, err := EncodeItems(items)
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	if err := a.backend.Put(ctx, a.key, body); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Purge removes the stored record entirely.
func (a *Adapter) Purge(ctx context.Context) error {
	if err := a.backend.Delete(ctx, a.key); err != nil {
		return fmt.Errorf("purge cart: %w", err)
	}
	return nil
}
