package cart

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Persister is the durable side of the store. Load never fails: anything it
// cannot read comes back as an empty cart.
type Persister interface {
	Load(ctx context.Context) []CartItem
	Save(ctx context.Context, items []CartItem) error
}

// Listener receives the snapshot produced by a mutation.
type Listener func(CartState)

type subscription struct {
	id int
	fn Listener
}

// Store is the authoritative cart for one shopper.
//
// Every mutation builds a new item slice and swaps it in whole, writes it
// through to the persister and then notifies listeners before returning.
// Mutations are serialized; readers never take the lock. Listeners run one at
// a time in commit order and must not mutate the store.
type Store struct {
	mu        sync.Mutex
	notifyMu  sync.Mutex
	state     atomic.Pointer[CartState]
	persister Persister
	logger    *zap.Logger

	subs   []subscription
	nextID int
}

// NewStore builds a store hydrated from persister. A nil persister keeps the
// cart in memory only.
func NewStore(ctx context.Context, persister Persister, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{persister: persister, logger: logger}

	initial := EmptyState()
	if persister != nil {
		initial.Items = hydrate(persister.Load(ctx))
	}
	s.state.Store(&initial)

	logger.Info("cart store ready",
		zap.Int("lines", len(initial.Items)),
		zap.Int("units", TotalItemCount(initial.Items)),
	)
	return s
}

// hydrate re-applies the line invariants to whatever the persister produced.
func hydrate(loaded []CartItem) []CartItem {
	items := make([]CartItem, 0, len(loaded))
	seen := make(map[string]struct{}, len(loaded))
	for _, it := range loaded {
		if ValidateCandidate(it) != nil {
			continue
		}
		it = it.normalize()
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		items = append(items, it)
	}
	return items
}

func (s *Store) current() CartState {
	return *s.state.Load()
}

// AddItem inserts candidate as a new line. A candidate whose ID is already in
// the cart is ignored: one listing, one line. A quantity below one becomes one.
func (s *Store) AddItem(ctx context.Context, candidate CartItem) error {
	if err := ValidateCandidate(candidate); err != nil {
		return err
	}
	item := candidate.normalize()

	s.mu.Lock()
	cur := s.current()
	if cur.Contains(item.ID) {
		s.mu.Unlock()
		s.logger.Debug("duplicate add ignored", zap.String("item_id", item.ID))
		return nil
	}

	next := make([]CartItem, 0, len(cur.Items)+1)
	next = append(next, cur.Items...)
	next = append(next, item)

	st, subs := s.commitLocked(ctx, "add_item", cur.withItems(next))
	s.logger.Info("item added",
		zap.String("item_id", item.ID),
		zap.Int("quantity", item.Quantity),
		zap.String("price", item.Price.String()),
	)
	s.publishLocked(subs, st)
	return nil
}

// UpdateQuantity replaces the quantity of line id. A quantity of zero or less
// removes the line. Unknown ids are ignored.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) {
	id = strings.TrimSpace(id)
	if quantity <= 0 {
		s.logger.Debug("non-positive quantity treated as removal",
			zap.String("item_id", id),
			zap.Int("quantity", quantity),
		)
		s.RemoveItem(ctx, id)
		return
	}

	s.mu.Lock()
	cur := s.current()
	idx := cur.IndexOf(id)
	if idx < 0 || cur.Items[idx].Quantity == quantity {
		s.mu.Unlock()
		return
	}

	next := make([]CartItem, len(cur.Items))
	copy(next, cur.Items)
	next[idx].Quantity = quantity

	st, subs := s.commitLocked(ctx, "update_quantity", cur.withItems(next))
	s.logger.Info("quantity updated", zap.String("item_id", id), zap.Int("quantity", quantity))
	s.publishLocked(subs, st)
}

// RemoveItem deletes line id if present.
func (s *Store) RemoveItem(ctx context.Context, id string) {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	cur := s.current()
	idx := cur.IndexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	next := make([]CartItem, 0, len(cur.Items)-1)
	next = append(next, cur.Items[:idx]...)
	next = append(next, cur.Items[idx+1:]...)

	st, subs := s.commitLocked(ctx, "remove_item", cur.withItems(next))
	s.logger.Info("item removed", zap.String("item_id", id))
	s.publishLocked(subs, st)
}

// Clear empties the cart. The open flag is left alone.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	cur := s.current()
	if cur.IsEmpty() {
		s.mu.Unlock()
		return
	}

	st, subs := s.commitLocked(ctx, "clear", cur.withItems([]CartItem{}))
	s.logger.Info("cart cleared")
	s.publishLocked(subs, st)
}

// SetOpen toggles cart panel visibility. It is never persisted.
func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	cur := s.current()
	if cur.Open == open {
		s.mu.Unlock()
		return
	}

	next := CartState{Items: cur.Items, Open: open}
	s.state.Store(&next)
	s.publishLocked(s.subscribersLocked(), next)
}

// commitLocked swaps in next and writes its items through. Callers hold s.mu,
// so saves reach the persister in mutation order.
func (s *Store) commitLocked(ctx context.Context, op string, next CartState) (CartState, []subscription) {
	s.state.Store(&next)
	if s.persister != nil {
		if err := s.persister.Save(ctx, CloneItems(next.Items)); err != nil {
			s.logger.Warn("cart write-through failed",
				zap.String("op", op),
				zap.Error(err),
			)
		}
	}
	return next, s.subscribersLocked()
}

func (s *Store) subscribersLocked() []subscription {
	return append([]subscription(nil), s.subs...)
}

// publishLocked hands the mutation lock over to the notify lock, so listeners
// see snapshots in commit order while readers and the next writer proceed.
// Callers hold s.mu; it is released on return.
func (s *Store) publishLocked(subs []subscription, st CartState) {
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()
	s.notify(subs, st)
}

func (s *Store) notify(subs []subscription, st CartState) {
	for _, sub := range subs {
		sub.fn(copyState(st))
	}
}

// Subscribe registers fn to run after every state change. The returned func
// removes the registration.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for idx, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:idx:idx], s.subs[idx+1:]...)
				return
			}
		}
	}
}

// Query returns a snapshot the caller may modify freely.
func (s *Store) Query() CartState {
	return copyState(s.current())
}

// Items returns the current lines in insertion order.
func (s *Store) Items() []CartItem {
	return CloneItems(s.current().Items)
}

// IsOpen reports the cart panel visibility flag.
func (s *Store) IsOpen() bool {
	return s.current().Open
}

// TotalPrice recomputes the cart total from the current lines.
func (s *Store) TotalPrice() decimal.Decimal {
	return TotalPrice(s.current().Items)
}

// TotalItemCount recomputes the number of units in the cart.
func (s *Store) TotalItemCount() int {
	return TotalItemCount(s.current().Items)
}
