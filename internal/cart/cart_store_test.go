package cart_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"swarachna-api/internal/cart"
	"swarachna-api/internal/storage"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// failingKV accepts reads and rejects every write.
type failingKV struct {
	storage.Store
	writes int
}

func (f *failingKV) Set(context.Context, string, string) error {
	f.writes++
	return errors.New("quota exceeded")
}

func persisted(t *testing.T, kv storage.Store) []cart.Item {
	t.Helper()
	raw, err := kv.Get(context.Background(), cart.StorageKey)
	require.NoError(t, err)

	var items []cart.Item
	require.NoError(t, json.Unmarshal([]byte(raw), &items))
	return items
}

func TestStore_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("repeated ids merge into one line", func(t *testing.T) {
		s := cart.Load(ctx, storage.NewMemoryStore(), nil)
		for _, id := range []string{"a", "b", "a", "c", "a", "b"} {
			s.AddItem(ctx, cart.Entry{ID: id, Price: price(10)})
		}

		assert.Equal(t, 6, s.ItemCount())
		assert.Equal(t, 3, s.Len())

		got := map[string]int{}
		for _, it := range s.Items() {
			got[it.ID] = it.Quantity
		}
		if diff := cmp.Diff(map[string]int{"a": 3, "b": 2, "c": 1}, got); diff != "" {
			t.Errorf("quantities mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("first write metadata wins", func(t *testing.T) {
		s := cart.Load(ctx, storage.NewMemoryStore(), nil)
		s.AddItem(ctx, cart.Entry{ID: "a", Title: "Logo", Price: price(100)})
		s.AddItem(ctx, cart.Entry{ID: "a", Title: "Other", Price: price(999)})

		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
		assert.Equal(t, "Logo", items[0].Title)
		assert.True(t, items[0].Price.Equal(decimal.NewFromInt(100)))
		assert.True(t, s.Total().Equal(decimal.NewFromInt(200)))
	})

	t.Run("unpriced item counts but adds nothing to total", func(t *testing.T) {
		s := cart.Load(ctx, storage.NewMemoryStore(), nil)
		s.AddItem(ctx, cart.Entry{ID: "b", Title: "Brand Identity"})

		assert.Equal(t, 1, s.ItemCount())
		assert.True(t, s.Total().IsZero())
		assert.True(t, s.QuoteRequired())
	})

	t.Run("insertion order is stable", func(t *testing.T) {
		s := cart.Load(ctx, storage.NewMemoryStore(), nil)
		s.AddItem(ctx, cart.Entry{ID: "z"})
		s.AddItem(ctx, cart.Entry{ID: "a"})
		s.AddItem(ctx, cart.Entry{ID: "z"})

		items := s.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "z", items[0].ID)
		assert.Equal(t, "a", items[1].ID)
	})
}

func TestStore_UpdateQuantity(t *testing.T) {
	ctx := context.Background()

	seed := func() *cart.Store {
		s := cart.Load(ctx, storage.NewMemoryStore(), nil)
		s.AddItem(ctx, cart.Entry{ID: "a", Price: price(5)})
		s.AddItem(ctx, cart.Entry{ID: "b", Price: price(7)})
		return s
	}

	removed := seed()
	removed.RemoveItem(ctx, "a")

	for _, q := range []int{0, -1} {
		s := seed()
		s.UpdateQuantity(ctx, "a", q)
		if diff := cmp.Diff(removed.Items(), s.Items()); diff != "" {
			t.Errorf("quantity %d differs from RemoveItem (-want +got):\n%s", q, diff)
		}
	}

	s := seed()
	s.UpdateQuantity(ctx, "b", 4)
	assert.Equal(t, 5, s.ItemCount())
	assert.True(t, s.Total().Equal(decimal.NewFromInt(33)))

	s.UpdateQuantity(ctx, "missing", 9)
	assert.Equal(t, 2, s.Len())

	s.RemoveItem(ctx, "missing")
	assert.Equal(t, 2, s.Len())
}

func TestStore_TotalIsOrderIndependent(t *testing.T) {
	ctx := context.Background()
	entries := []cart.Entry{
		{ID: "a", Price: price(100)},
		{ID: "b"},
		{ID: "c", Price: price(250)},
		{ID: "a", Price: price(100)},
	}

	forward := cart.Load(ctx, storage.NewMemoryStore(), nil)
	for _, e := range entries {
		forward.AddItem(ctx, e)
	}
	backward := cart.Load(ctx, storage.NewMemoryStore(), nil)
	for i := len(entries) - 1; i >= 0; i-- {
		backward.AddItem(ctx, entries[i])
	}

	assert.True(t, forward.Total().Equal(backward.Total()))
	assert.True(t, forward.Total().Equal(decimal.NewFromInt(450)))
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()

	s := cart.Load(ctx, kv, nil)
	s.AddItem(ctx, cart.Entry{ID: "a", Price: price(3)})
	s.Clear(ctx)

	assert.Equal(t, 0, s.ItemCount())
	assert.True(t, s.Total().IsZero())

	raw, err := kv.Get(ctx, cart.StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, raw)
}

func TestStore_PersistsEveryMutation(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()

	s := cart.Load(ctx, kv, nil)
	s.AddItem(ctx, cart.Entry{ID: "a", Title: "Flyer Design", Price: price(20), ServiceID: "marketing-materials"})
	s.AddItem(ctx, cart.Entry{ID: "b"})
	s.UpdateQuantity(ctx, "a", 3)

	if diff := cmp.Diff(s.Items(), persisted(t, kv)); diff != "" {
		t.Errorf("persisted cart mismatch (-want +got):\n%s", diff)
	}

	reloaded := cart.Load(ctx, kv, nil)
	assert.Equal(t, s.ItemCount(), reloaded.ItemCount())
	assert.True(t, s.Total().Equal(reloaded.Total()))
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		raw       *string
		wantIDs   []string
		wantCount int
	}{
		{name: "absent", raw: nil, wantIDs: []string{}},
		{name: "malformed", raw: strPtr(`{"id":`), wantIDs: []string{}},
		{name: "wrong shape", raw: strPtr(`{"id":"a"}`), wantIDs: []string{}},
		{
			name:      "drops invalid and duplicate lines",
			raw:       strPtr(`[{"id":"a","quantity":2},{"id":"","quantity":1},{"id":"b","quantity":0},{"id":"a","quantity":5},{"id":"c","quantity":1}]`),
			wantIDs:   []string{"a", "c"},
			wantCount: 3,
		},
		{
			name:      "clamps oversized quantity",
			raw:       strPtr(`[{"id":"a","quantity":4294967297}]`),
			wantIDs:   []string{"a"},
			wantCount: cart.MaxQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemoryStore()
			if tt.raw != nil {
				require.NoError(t, kv.Set(ctx, cart.StorageKey, *tt.raw))
			}

			s := cart.Load(ctx, kv, nil)
			ids := []string{}
			for _, it := range s.Items() {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantCount, s.ItemCount())
		})
	}
}

func TestStore_QuantityCap(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	s := cart.Load(ctx, kv, nil)

	s.AddItem(ctx, cart.Entry{ID: "a", Price: price(1)})
	s.UpdateQuantity(ctx, "a", 4294967297)
	assert.Equal(t, cart.MaxQuantity, s.ItemCount())

	s.AddItem(ctx, cart.Entry{ID: "a", Price: price(1)})
	assert.Equal(t, cart.MaxQuantity, s.ItemCount())
	assert.Equal(t, cart.MaxQuantity, persisted(t, kv)[0].Quantity)
}

func TestStore_PersistFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{Store: storage.NewMemoryStore()}

	s := cart.Load(ctx, kv, nil)
	s.AddItem(ctx, cart.Entry{ID: "a", Price: price(1)})
	s.UpdateQuantity(ctx, "a", 2)
	s.Clear(ctx)
	s.AddItem(ctx, cart.Entry{ID: "b"})

	assert.Equal(t, 4, kv.writes)
	assert.Equal(t, 1, s.ItemCount())
}

func strPtr(s string) *string { return &s }
