package cart_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"swarachna-api/internal/cart"
	carterrors "swarachna-api/internal/cart/errors"
	"swarachna-api/internal/catalog"
	"swarachna-api/internal/session"
	"swarachna-api/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const testCatalog = `
services: [{id: logo-design, title: Logo Design Service}]
categories: [{id: logo, label: Logo Design}]
gallery:
  - {id: logo-1, title: Logo Design, image: /uploads/logo.png, category: logo, serviceId: logo-design, price: '1500'}
  - {id: brand-1, title: Brand Identity, image: /uploads/brand.png, category: logo, serviceId: logo-design}
  - {id: a, title: A, category: logo, serviceId: logo-design, price: '10'}
  - {id: b, title: B, category: logo, serviceId: logo-design, price: '20'}
  - {id: same, title: Same, category: logo, serviceId: logo-design, price: '2'}
`

func newTestService() (cart.Service, *session.Manager) {
	cat, err := catalog.Parse([]byte(testCatalog))
	if err != nil {
		panic(err)
	}
	m := session.NewManager(storage.NewMemoryStore())
	return cart.NewService(m, cat), m
}

func TestService_AddItem(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestService()
	sid := m.Start().ID

	t.Run("success", func(t *testing.T) {
		res, err := svc.AddItem(ctx, sid, cart.AddItemRequest{ID: " logo-1 "})
		require.NoError(t, err)
		require.Len(t, res.Items, 1)
		assert.Equal(t, "logo-1", res.Items[0].ID)
		assert.Equal(t, "Logo Design", res.Items[0].Title)
		assert.Equal(t, "/uploads/logo.png", res.Items[0].Image)
		assert.Equal(t, "logo-design", res.Items[0].ServiceID)
		assert.Equal(t, 1, res.ItemCount)
		assert.False(t, res.QuoteRequired)
		require.NotNil(t, res.Items[0].Subtotal)
		assert.True(t, res.Items[0].Subtotal.Equal(decimal.NewFromInt(1500)))
	})

	t.Run("unpriced item marks quote", func(t *testing.T) {
		res, err := svc.AddItem(ctx, sid, cart.AddItemRequest{ID: "brand-1"})
		require.NoError(t, err)
		assert.True(t, res.QuoteRequired)
		assert.Equal(t, 2, res.ItemCount)
		assert.Nil(t, res.Items[1].Subtotal)
		assert.True(t, res.Items[1].QuoteRequired)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := svc.AddItem(ctx, sid, cart.AddItemRequest{ID: "  "})
		assert.ErrorIs(t, err, carterrors.ErrInvalidItemID)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := svc.AddItem(ctx, sid, cart.AddItemRequest{ID: "not-in-catalog"})
		assert.ErrorIs(t, err, carterrors.ErrUnknownItem)

		res, err := svc.Detail(ctx, sid)
		require.NoError(t, err)
		assert.Len(t, res.Items, 2)
	})

	t.Run("invalid session", func(t *testing.T) {
		_, err := svc.AddItem(ctx, "not-a-uuid", cart.AddItemRequest{ID: "a"})
		assert.ErrorIs(t, err, session.ErrInvalidSessionID)
	})
}

func TestService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestService()
	sid := m.Start().ID

	_, err := svc.AddItem(ctx, sid, cart.AddItemRequest{ID: "a"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, sid, cart.AddItemRequest{ID: "b"})
	require.NoError(t, err)

	qty := 3
	res, err := svc.UpdateQty(ctx, sid, "a", cart.UpdateQtyRequest{Qty: &qty})
	require.NoError(t, err)
	assert.Equal(t, 4, res.ItemCount)
	assert.True(t, res.Total.Equal(decimal.NewFromInt(50)))

	zero := 0
	res, err = svc.UpdateQty(ctx, sid, "a", cart.UpdateQtyRequest{Qty: &zero})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "b", res.Items[0].ID)

	_, err = svc.UpdateQty(ctx, sid, "b", cart.UpdateQtyRequest{})
	assert.ErrorIs(t, err, carterrors.ErrInvalidQty)

	huge := 4294967297
	_, err = svc.UpdateQty(ctx, sid, "b", cart.UpdateQtyRequest{Qty: &huge})
	assert.ErrorIs(t, err, carterrors.ErrQtyTooLarge)

	_, err = svc.DeleteItem(ctx, sid, " ")
	assert.ErrorIs(t, err, carterrors.ErrInvalidItemID)

	res, err = svc.DeleteItem(ctx, sid, "b")
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	count, err := svc.Count(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestService_PricesComeFromCatalog(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestService()
	sid := m.Start().ID

	// extra fields a client might send are not part of the request type
	var req cart.AddItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"id":"logo-1","price":"0.01","title":"Free"}`), &req))

	res, err := svc.AddItem(ctx, sid, req)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Logo Design", res.Items[0].Title)
	require.NotNil(t, res.Items[0].Price)
	assert.True(t, res.Items[0].Price.Equal(decimal.NewFromInt(1500)))
	assert.True(t, res.Total.Equal(decimal.NewFromInt(1500)))
}

func TestService_Discard(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestService()
	sess := m.Start()

	_, err := svc.AddItem(ctx, sess.ID, cart.AddItemRequest{ID: "a"})
	require.NoError(t, err)

	require.NoError(t, svc.Discard(ctx, sess.ID))
	_, err = sess.Store.Get(ctx, cart.StorageKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, svc.Discard(ctx, "bogus"), session.ErrInvalidSessionID)
}

func TestService_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestService()
	first, second := m.Start().ID, m.Start().ID

	_, err := svc.AddItem(ctx, first, cart.AddItemRequest{ID: "a"})
	require.NoError(t, err)

	res, err := svc.Detail(ctx, second)
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	_, err = svc.ClearCart(ctx, first)
	require.NoError(t, err)
	res, err = svc.Detail(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, 0, res.ItemCount)
}

func TestService_ConcurrentAdds(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	svc, _ := newTestService()
	sid := uuid.NewString()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.AddItem(ctx, sid, cart.AddItemRequest{ID: "same"})
		}()
	}
	wg.Wait()

	count, err := svc.Count(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, n, count)
}
