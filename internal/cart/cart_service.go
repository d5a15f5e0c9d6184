package cart

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"

	carterrors "swarachna-api/internal/cart/errors"
	"swarachna-api/internal/catalog"
	"swarachna-api/internal/session"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

//go:generate mockgen -source=cart_service.go -destination=../mock/cart/cart_service_mock.go -package=mock
type Service interface {
	Detail(ctx context.Context, sessionID string) (CartResponse, error)
	Count(ctx context.Context, sessionID string) (int, error)

	AddItem(ctx context.Context, sessionID string, req AddItemRequest) (CartResponse, error)
	UpdateQty(ctx context.Context, sessionID, itemID string, req UpdateQtyRequest) (CartResponse, error)
	DeleteItem(ctx context.Context, sessionID, itemID string) (CartResponse, error)

	ClearCart(ctx context.Context, sessionID string) (CartResponse, error)
	// Discard deletes the stored cart, as logout requires.
	Discard(ctx context.Context, sessionID string) error
}

const lockStripes = 64

type service struct {
	sessions *session.Manager
	catalog  *catalog.Catalog
	validate *validator.Validate
	logger   *zap.Logger

	// requests of one session are serialized so load-mutate-persist does not
	// lose updates; striped to keep the lock set bounded
	locks [lockStripes]sync.Mutex
}

func NewService(sessions *session.Manager, cat *catalog.Catalog, logger ...*zap.Logger) Service {
	if cat == nil {
		panic("cart.NewService: catalog is nil")
	}
	l := zap.NewNop()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("cart.service")
	}
	return &service{
		sessions: sessions,
		catalog:  cat,
		validate: validator.New(),
		logger:   l,
	}
}

// ========================
// helpers
// ========================

func (s *service) lockFor(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return &s.locks[h.Sum32()%lockStripes]
}

func (s *service) lockSession(sessionID string) (*session.Session, func(), error) {
	sess, err := s.sessions.Open(sessionID)
	if err != nil {
		return nil, nil, err
	}
	mu := s.lockFor(sess.ID)
	mu.Lock()
	return sess, mu.Unlock, nil
}

func (s *service) withStore(ctx context.Context, sessionID string, fn func(*Store)) (CartResponse, error) {
	sess, unlock, err := s.lockSession(sessionID)
	if err != nil {
		return CartResponse{}, err
	}
	defer unlock()

	store := Load(ctx, sess.Store, s.logger.With(zap.String("session_id", sess.ID)))
	if fn != nil {
		fn(store)
	}
	return toResponse(store), nil
}

func parseItemID(itemID string) (string, error) {
	id := strings.TrimSpace(itemID)
	if id == "" {
		return "", carterrors.ErrInvalidItemID
	}
	return id, nil
}

func (s *service) Detail(ctx context.Context, sessionID string) (CartResponse, error) {
	return s.withStore(ctx, sessionID, nil)
}

func (s *service) Count(ctx context.Context, sessionID string) (int, error) {
	res, err := s.withStore(ctx, sessionID, nil)
	if err != nil {
		return 0, err
	}
	return res.ItemCount, nil
}

func (s *service) AddItem(ctx context.Context, sessionID string, req AddItemRequest) (CartResponse, error) {
	req.ID = strings.TrimSpace(req.ID)
	if err := s.validate.Struct(req); err != nil {
		return CartResponse{}, carterrors.MapValidationError(err)
	}

	item, ok := s.catalog.GalleryItem(req.ID)
	if !ok {
		return CartResponse{}, carterrors.ErrUnknownItem
	}

	return s.withStore(ctx, sessionID, func(st *Store) {
		st.AddItem(ctx, Entry{
			ID:        item.ID,
			Title:     item.Title,
			Image:     item.Image,
			Price:     item.Price,
			ServiceID: item.ServiceID,
		})
	})
}

func (s *service) UpdateQty(ctx context.Context, sessionID, itemID string, req UpdateQtyRequest) (CartResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return CartResponse{}, carterrors.MapValidationError(err)
	}

	id, err := parseItemID(itemID)
	if err != nil {
		return CartResponse{}, err
	}

	return s.withStore(ctx, sessionID, func(st *Store) {
		st.UpdateQuantity(ctx, id, *req.Qty)
	})
}

func (s *service) DeleteItem(ctx context.Context, sessionID, itemID string) (CartResponse, error) {
	id, err := parseItemID(itemID)
	if err != nil {
		return CartResponse{}, err
	}

	return s.withStore(ctx, sessionID, func(st *Store) {
		st.RemoveItem(ctx, id)
	})
}

func (s *service) ClearCart(ctx context.Context, sessionID string) (CartResponse, error) {
	return s.withStore(ctx, sessionID, func(st *Store) {
		st.Clear(ctx)
	})
}

func (s *service) Discard(ctx context.Context, sessionID string) error {
	sess, unlock, err := s.lockSession(sessionID)
	if err != nil {
		return err
	}
	defer unlock()

	return sess.Store.Delete(ctx, StorageKey)
}
