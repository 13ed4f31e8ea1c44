package server

import (
	"context"
	"strings"

	"storefront/cart"
	"storefront/catalog"
	"storefront/checkout"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service is the storefront use-case layer shared by the HTTP gateway and
// the CLI.
type Service struct {
	store     *cart.Store
	catalog   *catalog.Catalog
	formatter checkout.Formatter
	threshold decimal.Decimal
	logger    *zap.Logger

	unsubscribe func()
}

// NewService wires the cart store to the catalog and order formatter.
func NewService(store *cart.Store, cat *catalog.Catalog, formatter checkout.Formatter, threshold decimal.Decimal, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cat == nil {
		cat = catalog.Default()
	}
	s := &Service{
		store:     store,
		catalog:   cat,
		formatter: formatter,
		threshold: threshold,
		logger:    logger,
	}
	s.unsubscribe = store.Subscribe(func(st cart.CartState) {
		logger.Debug("cart changed",
			zap.Int("lines", len(st.Items)),
			zap.Int("units", st.TotalItemCount()),
			zap.String("total", st.TotalPrice().String()),
			zap.Bool("open", st.Open),
		)
	})
	return s
}

// Close detaches the service from the store.
func (s *Service) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Cart returns the current snapshot with derived totals.
func (s *Service) Cart() CartView {
	return newCartView(s.store.Query(), s.threshold)
}

// AddItem adds a catalog product or an explicit line, then returns the cart.
func (s *Service) AddItem(ctx context.Context, req AddItemRequest) (CartView, error) {
	candidate, err := s.candidate(req)
	if err != nil {
		return CartView{}, err
	}
	if err := s.store.AddItem(ctx, candidate); err != nil {
		return CartView{}, err
	}
	return s.Cart(), nil
}

func (s *Service) candidate(req AddItemRequest) (cart.CartItem, error) {
	if id := strings.TrimSpace(req.ProductID); id != "" {
		p, err := s.catalog.Lookup(id)
		if err != nil {
			return cart.CartItem{}, err
		}
		return p.CartItem(req.Quantity), nil
	}

	price, err := decimal.NewFromString(strings.TrimSpace(req.Price.String()))
	if err != nil {
		return cart.CartItem{}, cart.NewInvalidArgument(cart.ErrMsgPriceInvalid)
	}
	return cart.CartItem{
		ID:       req.ID,
		Title:    req.Title,
		Price:    price,
		Quantity: req.Quantity,
		Images:   []string{req.Image, req.Image2, req.Image3},
	}, nil
}

// UpdateQuantity replaces the quantity of line id; zero or less removes it.
func (s *Service) UpdateQuantity(ctx context.Context, id string, quantity int) CartView {
	s.store.UpdateQuantity(ctx, id, quantity)
	return s.Cart()
}

// RemoveItem deletes line id.
func (s *Service) RemoveItem(ctx context.Context, id string) CartView {
	s.store.RemoveItem(ctx, id)
	return s.Cart()
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) CartView {
	s.store.Clear(ctx)
	return s.Cart()
}

// SetOpen toggles the cart panel.
func (s *Service) SetOpen(open bool) CartView {
	s.store.SetOpen(open)
	return s.Cart()
}

// Products returns one page of the catalog, flagging products already in
// the cart.
func (s *Service) Products(offset, limit int) ProductPage {
	page := s.catalog.Page(offset, limit)
	st := s.store.Query()

	views := make([]ProductView, 0, len(page.Products))
	for _, p := range page.Products {
		views = append(views, newProductView(p, st))
	}
	return ProductPage{
		Products:   views,
		Offset:     page.Offset,
		NextOffset: page.NextOffset,
		Total:      page.Total,
		HasMore:    page.HasMore,
	}
}

// Product returns a single catalog entry.
func (s *Service) Product(id string) (ProductView, error) {
	p, err := s.catalog.Lookup(strings.TrimSpace(id))
	if err != nil {
		return ProductView{}, err
	}
	return newProductView(p, s.store.Query()), nil
}

// Checkout renders the order hand-off for the current cart. The cart is left
// as it is whether or not checkout succeeds.
func (s *Service) Checkout(contact checkout.Contact) (checkout.Order, error) {
	st := s.store.Query()
	order, err := s.formatter.Checkout(st.Items, contact)
	if err != nil {
		s.logger.Info("checkout rejected", zap.Error(err))
		return checkout.Order{}, err
	}
	s.logger.Info("checkout rendered",
		zap.Int("lines", len(st.Items)),
		zap.String("total", st.TotalPrice().String()),
	)
	return order, nil
}

// QuickOrder renders the single-product hand-off from a product page.
func (s *Service) QuickOrder(productID string, quantity int) (checkout.Order, error) {
	if err := cart.RequirePositive(quantity, cart.ErrMsgQuantityPositive); err != nil {
		return checkout.Order{}, err
	}
	p, err := s.catalog.Lookup(strings.TrimSpace(productID))
	if err != nil {
		return checkout.Order{}, err
	}
	return s.formatter.QuickOrderLink(p.Title, quantity, p.Price), nil
}
