package cart

import (
	"context"
	"encoding/json"
	"errors"

	"swarachna-api/internal/storage"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StorageKey is the session key holding the serialized cart. Logout must
// delete it together with the signed-in user.
const StorageKey = "cart"

// MaxQuantity caps a single line. Order items store quantities as int32.
const MaxQuantity = 999

type Item struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Image     string           `json:"image"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	ServiceID string           `json:"serviceId"`
	Quantity  int              `json:"quantity"`
}

// Entry is what a visitor picks from the gallery. A nil Price means the item
// needs a quote.
type Entry struct {
	ID        string
	Title     string
	Image     string
	Price     *decimal.Decimal
	ServiceID string
}

// Store is the cart of one session. It is owned by a single caller at a time;
// Service serializes access per session.
//
// Every mutation writes the whole cart back to storage. Write failures are
// logged and otherwise ignored: the in-memory state stays authoritative for
// the current call.
type Store struct {
	kv     storage.Store
	logger *zap.Logger
	items  []Item
}

// Load restores the cart persisted in kv. Missing or malformed data yields an
// empty cart.
func Load(ctx context.Context, kv storage.Store, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{kv: kv, logger: logger}

	raw, err := kv.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("cart load failed, starting empty", zap.Error(err))
		}
		return s
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Debug("discarding malformed cart", zap.Error(err))
		return s
	}
	s.items = sanitize(items)
	return s
}

// sanitize drops entries that break the cart invariants: empty ids,
// quantities below one, and repeated ids (first occurrence wins). Quantities
// above MaxQuantity are clamped.
func sanitize(items []Item) []Item {
	seen := make(map[string]struct{}, len(items))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID == "" || it.Quantity < 1 {
			continue
		}
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		if it.Quantity > MaxQuantity {
			it.Quantity = MaxQuantity
		}
		out = append(out, it)
	}
	return out
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// AddItem increments the quantity of an existing line or appends a new one
// with quantity 1. The metadata of an existing line is kept as is. A line at
// MaxQuantity stays there.
func (s *Store) AddItem(ctx context.Context, e Entry) {
	defer s.persist(ctx)

	for i := range s.items {
		if s.items[i].ID == e.ID {
			if s.items[i].Quantity < MaxQuantity {
				s.items[i].Quantity++
			}
			return
		}
	}

	s.items = append(s.items, Item{
		ID:        e.ID,
		Title:     e.Title,
		Image:     e.Image,
		Price:     e.Price,
		ServiceID: e.ServiceID,
		Quantity:  1,
	})
}

// RemoveItem deletes the line with id. Unknown ids are ignored.
func (s *Store) RemoveItem(ctx context.Context, id string) {
	defer s.persist(ctx)

	kept := s.items[:0]
	for _, it := range s.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
}

// UpdateQuantity sets the quantity of a line; anything below 1 removes it and
// anything above MaxQuantity is clamped.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) {
	if quantity < 1 {
		s.RemoveItem(ctx, id)
		return
	}
	if quantity > MaxQuantity {
		quantity = MaxQuantity
	}

	defer s.persist(ctx)
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			return
		}
	}
}

func (s *Store) Clear(ctx context.Context) {
	s.items = nil
	s.persist(ctx)
}

// ItemCount is the sum of all quantities, not the number of lines.
func (s *Store) ItemCount() int {
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Total sums price*quantity; unpriced lines contribute zero, so a zero total
// does not tell free from quote-only. Use QuoteRequired for that.
func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.items {
		if it.Price == nil {
			continue
		}
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// QuoteRequired reports whether any line lacks a price.
func (s *Store) QuoteRequired() bool {
	for _, it := range s.items {
		if it.Price == nil {
			return true
		}
	}
	return false
}

func (s *Store) Len() int {
	return len(s.items)
}

func (s *Store) persist(ctx context.Context) {
	items := s.items
	if items == nil {
		items = []Item{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		s.logger.Error("cart encode failed", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, StorageKey, string(raw)); err != nil {
		s.logger.Warn("cart persist failed", zap.Error(err))
	}
}
