package order

import (
	"context"
	"database/sql"

	"swarachna-api/internal/shared/database/dbgen"

	"github.com/google/uuid"
)

//go:generate mockgen -source=order_repo.go -destination=../mock/order/order_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx dbgen.DBTX) Repository
	CreateOrder(ctx context.Context, arg dbgen.CreateOrderParams) (dbgen.Order, error)
	CreateOrderItem(ctx context.Context, arg dbgen.CreateOrderItemParams) error
	GetByOrderNumber(ctx context.Context, orderNumber string) (dbgen.Order, error)
	GetByOrderNumberForUpdate(ctx context.Context, orderNumber string) (dbgen.Order, error)
	GetItems(ctx context.Context, orderID uuid.UUID) ([]dbgen.OrderItem, error)
	ListByUser(ctx context.Context, arg dbgen.ListOrdersByUserParams) ([]dbgen.ListOrdersByUserRow, error)
	UpdatePaymentStatus(ctx context.Context, arg dbgen.UpdateOrderPaymentStatusParams) (dbgen.Order, error)
	UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status string) error
}

type repository struct {
	queries *dbgen.Queries
}

func NewRepository(q *dbgen.Queries) Repository {
	return &repository{queries: q}
}

func (r *repository) WithTx(tx dbgen.DBTX) Repository {
	if sqlTx, ok := tx.(*sql.Tx); ok {
		return &repository{
			queries: r.queries.WithTx(sqlTx),
		}
	}

	return r
}

func (r *repository) CreateOrder(ctx context.Context, arg dbgen.CreateOrderParams) (dbgen.Order, error) {
	return r.queries.CreateOrder(ctx, arg)
}

func (r *repository) CreateOrderItem(ctx context.Context, arg dbgen.CreateOrderItemParams) error {
	return r.queries.CreateOrderItem(ctx, arg)
}

func (r *repository) GetByOrderNumber(ctx context.Context, orderNumber string) (dbgen.Order, error) {
	return r.queries.GetOrderByOrderNumber(ctx, orderNumber)
}

func (r *repository) GetByOrderNumberForUpdate(ctx context.Context, orderNumber string) (dbgen.Order, error) {
	return r.queries.GetOrderByOrderNumberForUpdate(ctx, orderNumber)
}

func (r *repository) GetItems(ctx context.Context, orderID uuid.UUID) ([]dbgen.OrderItem, error) {
	return r.queries.GetOrderItems(ctx, orderID)
}

func (r *repository) ListByUser(ctx context.Context, arg dbgen.ListOrdersByUserParams) ([]dbgen.ListOrdersByUserRow, error) {
	return r.queries.ListOrdersByUser(ctx, arg)
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, arg dbgen.UpdateOrderPaymentStatusParams) (dbgen.Order, error) {
	return r.queries.UpdateOrderPaymentStatus(ctx, arg)
}

func (r *repository) UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.queries.UpdateOrderNotificationStatus(ctx, dbgen.UpdateOrderNotificationStatusParams{
		ID:                 id,
		NotificationStatus: status,
	})
}
