package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"swarachna-api/internal/cart"
	"swarachna-api/internal/email"
	"swarachna-api/internal/midtrans"
	"swarachna-api/internal/outbox"
	"swarachna-api/internal/shared/database/dbgen"
	"swarachna-api/internal/shared/database/helper"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	StatusPending = "PENDING"
	StatusPaid    = "PAID"
	StatusFailed  = "FAILED"

	PaymentUnpaid = "UNPAID"
	PaymentPaid   = "PAID"
	PaymentFailed = "FAILED"

	NotificationPending = "PENDING"
	NotificationSent    = "SENT"
	NotificationFailed  = "FAILED"

	defaultPageLimit = 10
	maxPageLimit     = 50
)

//go:generate mockgen -source=order_service.go -destination=../mock/order/order_service_mock.go -package=mock
type Service interface {
	Checkout(ctx context.Context, userID, sessionID string, req CheckoutRequest) (CheckoutResponse, error)
	List(ctx context.Context, userID string, page, limit int) ([]OrderResponse, int64, error)
	Detail(ctx context.Context, userID, orderNumber string) (OrderResponse, error)
	HandleMidtransNotification(ctx context.Context, payload MidtransNotificationRequest) error
}

type service struct {
	db          *sql.DB
	repo        Repository
	outboxRepo  outbox.Repository
	cartSvc     cart.Service
	midtransSvc midtrans.Service
	emailSvc    email.Service
	logger      *zap.Logger
	now         func() time.Time
}

type Deps struct {
	DB          *sql.DB
	Repo        Repository
	OutboxRepo  outbox.Repository
	CartSvc     cart.Service
	MidtransSvc midtrans.Service
	EmailSvc    email.Service
	Logger      *zap.Logger
	Now         func() time.Time
}

// Only forward moves are allowed. A late settlement may still rescue an
// order that was marked FAILED.
var paymentStatusTransitions = map[string]map[string]struct{}{
	PaymentUnpaid: {
		PaymentPaid:   {},
		PaymentFailed: {},
	},
	PaymentFailed: {
		PaymentPaid: {},
	},
	PaymentPaid: {},
}

func NewService(deps Deps) Service {
	if deps.DB == nil {
		panic("db cannot be nil")
	}
	if deps.Repo == nil {
		panic("order repository cannot be nil")
	}
	if deps.OutboxRepo == nil {
		panic("outbox repository cannot be nil")
	}
	if deps.CartSvc == nil {
		panic("cart service cannot be nil")
	}
	if deps.MidtransSvc == nil {
		panic("midtrans service cannot be nil")
	}
	if deps.EmailSvc == nil {
		deps.EmailSvc = email.NewNoopService()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &service{
		db:          deps.DB,
		repo:        deps.Repo,
		outboxRepo:  deps.OutboxRepo,
		cartSvc:     deps.CartSvc,
		midtransSvc: deps.MidtransSvc,
		emailSvc:    deps.EmailSvc,
		logger:      deps.Logger,
		now:         deps.Now,
	}
}

func (s *service) Checkout(ctx context.Context, userID, sessionID string, req CheckoutRequest) (CheckoutResponse, error) {
	logger := s.logger.With(zap.String("user_id", userID), zap.String("session_id", sessionID))

	cartData, err := s.cartSvc.Detail(ctx, sessionID)
	if err != nil {
		logger.Error("failed to fetch cart detail", zap.Error(err))
		return CheckoutResponse{}, err
	}
	if len(cartData.Items) == 0 {
		return CheckoutResponse{}, ErrCartEmpty
	}

	currency := s.midtransSvc.Currency()
	gross, err := midtrans.PayableAmount(currency, cartData.Total)
	if err != nil {
		logger.Error("failed to compute payable amount", zap.String("currency", currency), zap.Error(err))
		return CheckoutResponse{}, ErrOrderFailed.Wrap(err)
	}

	now := s.now()
	orderNumber := fmt.Sprintf("SWA-%d-%s", now.Unix(), strings.ToUpper(uuid.NewString()[:4]))
	logger = logger.With(zap.String("order_number", orderNumber))

	midtransItems := make([]midtrans.ItemDetail, 0, len(cartData.Items))
	for _, item := range cartData.Items {
		var price int64
		if item.Price != nil {
			price, err = midtrans.ToMinorUnits(currency, *item.Price)
			if err != nil {
				return CheckoutResponse{}, ErrOrderFailed.Wrap(err)
			}
		}
		midtransItems = append(midtransItems, midtrans.ItemDetail{
			ID:       item.ID,
			Name:     itemName(item),
			Price:    price,
			Quantity: int32(item.Quantity),
		})
	}

	firstName, lastName := splitName(req.Name)
	midtransResp, err := s.midtransSvc.CreateTransactionToken(&midtrans.CreateTransactionRequest{
		OrderID:     orderNumber,
		GrossAmount: gross,
		Customer: &midtrans.CustomerDetails{
			FirstName: firstName,
			LastName:  lastName,
			Email:     req.Email,
			Phone:     req.Phone,
		},
		Items: midtransItems,
	})
	if err != nil {
		logger.Error("failed to create midtrans transaction", zap.Error(err))
		return CheckoutResponse{}, err
	}
	if midtransResp == nil {
		logger.Error("midtrans response is nil")
		return CheckoutResponse{}, ErrOrderFailed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", zap.Error(err))
		return CheckoutResponse{}, ErrOrderFailed
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
			logger.Warn("transaction rolled back")
		}
	}()

	qtx := s.repo.WithTx(tx)

	order, err := qtx.CreateOrder(ctx, dbgen.CreateOrderParams{
		ID:              uuid.New(),
		OrderNumber:     orderNumber,
		UserID:          userID,
		SessionID:       sessionID,
		CustomerName:    strings.TrimSpace(req.Name),
		CustomerEmail:   strings.TrimSpace(req.Email),
		CustomerPhone:   helper.RawStringToNull(req.Phone),
		Status:          StatusPending,
		PaymentStatus:   PaymentUnpaid,
		Currency:        currency,
		TotalPrice:      cartData.Total.StringFixed(2),
		GrossAmount:     gross,
		SnapToken:       helper.RawStringToNull(midtransResp.Token),
		SnapRedirectUrl: helper.RawStringToNull(midtransResp.RedirectURL),
	})
	if err != nil {
		logger.Error("failed to create order record", zap.Error(err))
		return CheckoutResponse{}, ErrOrderFailed.Wrap(err)
	}

	items := make([]dbgen.OrderItem, 0, len(cartData.Items))
	for _, item := range cartData.Items {
		row := dbgen.OrderItem{
			ID:         uuid.New(),
			OrderID:    order.ID,
			ItemID:     item.ID,
			ServiceID:  item.ServiceID,
			Title:      itemName(item),
			Image:      item.Image,
			UnitPrice:  helper.DecimalToNull(item.Price),
			Quantity:   int32(item.Quantity),
			TotalPrice: helper.DecimalToNull(item.Subtotal),
		}
		err = qtx.CreateOrderItem(ctx, dbgen.CreateOrderItemParams{
			ID:         row.ID,
			OrderID:    row.OrderID,
			ItemID:     row.ItemID,
			ServiceID:  row.ServiceID,
			Title:      row.Title,
			Image:      row.Image,
			UnitPrice:  row.UnitPrice,
			Quantity:   row.Quantity,
			TotalPrice: row.TotalPrice,
		})
		if err != nil {
			logger.Error("failed to create order item", zap.String("item_id", item.ID), zap.Error(err))
			return CheckoutResponse{}, ErrOrderFailed.Wrap(err)
		}
		items = append(items, row)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", zap.Error(err))
		return CheckoutResponse{}, ErrOrderFailed
	}
	committed = true

	logger.Info("checkout success",
		zap.String("order_id", order.ID.String()),
		zap.Int64("gross_amount", gross),
	)

	return CheckoutResponse{
		Order: mapOrderToResponse(order, items),
		Payment: PaymentResponse{
			SnapToken:   midtransResp.Token,
			RedirectURL: midtransResp.RedirectURL,
		},
	}, nil
}

func (s *service) List(ctx context.Context, userID string, page, limit int) ([]OrderResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	rows, err := s.repo.ListByUser(ctx, dbgen.ListOrdersByUserParams{
		UserID: userID,
		Limit:  int32(limit),
		Offset: int32((page - 1) * limit),
	})
	if err != nil {
		s.logger.Error("failed to list orders", zap.String("user_id", userID), zap.Error(err))
		return nil, 0, ErrOrderFailed.Wrap(err)
	}

	res := make([]OrderResponse, 0, len(rows))
	var total int64
	for _, r := range rows {
		total = r.TotalCount
		res = append(res, mapOrderToResponse(dbgen.Order{
			ID:                 r.ID,
			OrderNumber:        r.OrderNumber,
			UserID:             r.UserID,
			SessionID:          r.SessionID,
			CustomerName:       r.CustomerName,
			CustomerEmail:      r.CustomerEmail,
			CustomerPhone:      r.CustomerPhone,
			Status:             r.Status,
			PaymentStatus:      r.PaymentStatus,
			PaymentMethod:      r.PaymentMethod,
			Currency:           r.Currency,
			TotalPrice:         r.TotalPrice,
			GrossAmount:        r.GrossAmount,
			SnapToken:          r.SnapToken,
			SnapRedirectUrl:    r.SnapRedirectUrl,
			NotificationStatus: r.NotificationStatus,
			PaidAt:             r.PaidAt,
			PlacedAt:           r.PlacedAt,
			UpdatedAt:          r.UpdatedAt,
		}, nil))
	}

	return res, total, nil
}

func (s *service) Detail(ctx context.Context, userID, orderNumber string) (OrderResponse, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return OrderResponse{}, ErrInvalidOrderNumber
	}

	o, err := s.repo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderResponse{}, ErrOrderNotFound
		}
		return OrderResponse{}, ErrOrderFailed.Wrap(err)
	}
	// someone else's order reads as missing
	if o.UserID != userID {
		return OrderResponse{}, ErrOrderNotFound
	}

	items, err := s.repo.GetItems(ctx, o.ID)
	if err != nil {
		return OrderResponse{}, ErrOrderFailed.Wrap(err)
	}

	return mapOrderToResponse(o, items), nil
}

func (s *service) HandleMidtransNotification(ctx context.Context, payload MidtransNotificationRequest) error {
	if !s.midtransSvc.VerifySignature(
		strings.TrimSpace(payload.OrderID),
		strings.TrimSpace(payload.StatusCode),
		strings.TrimSpace(payload.GrossAmount),
		strings.TrimSpace(payload.SignatureKey),
	) {
		return ErrInvalidMidtransSignature
	}

	logger := s.logger.With(
		zap.String("order_number", payload.OrderID),
		zap.String("transaction_status", payload.TransactionStatus),
	)

	next, ok := targetPaymentStatus(payload.TransactionStatus, payload.FraudStatus)
	if !ok {
		logger.Info("midtrans notification ignored", zap.String("fraud_status", payload.FraudStatus))
		return nil
	}

	paidAt := sql.NullTime{}
	if next == PaymentPaid {
		t, err := parseMidtransTransactionTime(payload.TransactionTime, s.now)
		if err != nil {
			return err
		}
		paidAt = sql.NullTime{Time: t, Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", zap.Error(err))
		return ErrOrderFailed
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	qtx := s.repo.WithTx(tx)

	current, err := qtx.GetByOrderNumberForUpdate(ctx, strings.TrimSpace(payload.OrderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		logger.Error("failed to load order", zap.Error(err))
		return ErrOrderFailed.Wrap(err)
	}

	if err := verifyGrossAmount(current, payload.GrossAmount); err != nil {
		logger.Warn("gross amount mismatch",
			zap.String("gross_amount", payload.GrossAmount),
			zap.Int64("expected", current.GrossAmount),
		)
		return err
	}

	if current.PaymentStatus == next {
		// duplicate delivery
		if err := tx.Commit(); err != nil {
			return ErrOrderFailed
		}
		committed = true
		return nil
	}

	if _, allowed := paymentStatusTransitions[current.PaymentStatus][next]; !allowed {
		logger.Warn("payment status transition rejected", zap.String("from", current.PaymentStatus), zap.String("to", next))
		return ErrInvalidPaymentStatusTransition
	}

	orderStatus := StatusFailed
	if next == PaymentPaid {
		orderStatus = StatusPaid
	}

	updated, err := qtx.UpdatePaymentStatus(ctx, dbgen.UpdateOrderPaymentStatusParams{
		ID:            current.ID,
		Status:        orderStatus,
		PaymentStatus: next,
		PaymentMethod: helper.RawStringToNull(payload.PaymentType),
		PaidAt:        paidAt,
	})
	if err != nil {
		logger.Error("failed to update payment status", zap.Error(err))
		return ErrOrderFailed.Wrap(err)
	}

	if next == PaymentPaid {
		event, err := outbox.NewClearCartEvent(updated.ID, outbox.ClearCartPayload{
			SessionID:   updated.SessionID,
			UserID:      updated.UserID,
			OrderNumber: updated.OrderNumber,
		})
		if err != nil {
			return ErrOrderFailed.Wrap(err)
		}
		if err := s.outboxRepo.WithTx(tx).CreateOutboxEvent(ctx, event); err != nil {
			logger.Error("failed to create outbox event", zap.Error(err))
			return ErrOrderFailed.Wrap(err)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", zap.Error(err))
		return ErrOrderFailed
	}
	committed = true

	logger.Info("payment status updated", zap.String("payment_status", next))

	if next == PaymentPaid {
		s.notifyPaid(ctx, updated, logger)
	}

	return nil
}

// notifyPaid sends the order email and records the outcome. Failures here
// never undo the payment.
func (s *service) notifyPaid(ctx context.Context, o dbgen.Order, logger *zap.Logger) {
	status := NotificationSent

	items, err := s.repo.GetItems(ctx, o.ID)
	if err == nil {
		err = s.emailSvc.SendOrderEmail(ctx, toOrderEmail(o, items))
	}
	if err != nil {
		logger.Error("order email failed", zap.Error(err))
		status = NotificationFailed
	}

	if err := s.repo.UpdateNotificationStatus(ctx, o.ID, status); err != nil {
		logger.Error("failed to record notification status", zap.String("status", status), zap.Error(err))
	}
}

// targetPaymentStatus maps a Midtrans transaction status to the payment status
// it settles to. ok is false when the notification changes nothing.
func targetPaymentStatus(transactionStatus, fraudStatus string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(transactionStatus)) {
	case "settlement":
		return PaymentPaid, true
	case "capture":
		switch strings.ToLower(strings.TrimSpace(fraudStatus)) {
		case "", "accept":
			return PaymentPaid, true
		case "deny":
			return PaymentFailed, true
		default:
			return "", false
		}
	case "expire", "cancel", "deny", "failure":
		return PaymentFailed, true
	default:
		return "", false
	}
}

func verifyGrossAmount(o dbgen.Order, raw string) error {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return ErrInvalidGrossAmount
	}
	minor, err := midtrans.ToMinorUnits(o.Currency, amount)
	if err != nil || minor != o.GrossAmount {
		return ErrInvalidGrossAmount
	}
	return nil
}

func parseMidtransTransactionTime(raw string, now func() time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now(), nil
	}

	// Midtrans sends local Jakarta time without a zone.
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		loc = time.FixedZone("WIB", 7*60*60)
	}
	if parsed, err := time.ParseInLocation("2006-01-02 15:04:05", raw, loc); err == nil {
		return parsed, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-0700"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, ErrInvalidTransactionTime
}

func itemName(item cart.CartItemResponse) string {
	if t := strings.TrimSpace(item.Title); t != "" {
		return t
	}
	return item.ID
}

func splitName(name string) (string, string) {
	name = strings.TrimSpace(name)
	first, last, _ := strings.Cut(name, " ")
	return first, strings.TrimSpace(last)
}

func toOrderEmail(o dbgen.Order, items []dbgen.OrderItem) email.OrderEmail {
	msg := email.OrderEmail{
		OrderNumber: o.OrderNumber,
		PlacedAt:    o.PlacedAt,
		Currency:    o.Currency,
		Total:       helper.StringToDecimal(o.TotalPrice),
		Customer: email.Customer{
			Name:  o.CustomerName,
			Email: o.CustomerEmail,
			Phone: o.CustomerPhone.String,
		},
	}
	for _, it := range items {
		msg.Items = append(msg.Items, email.OrderEmailItem{
			Title:     it.Title,
			ServiceID: it.ServiceID,
			Quantity:  int(it.Quantity),
			Price:     helper.NullToDecimal(it.UnitPrice),
		})
	}
	return msg
}

func mapOrderToResponse(o dbgen.Order, items []dbgen.OrderItem) OrderResponse {
	res := OrderResponse{
		ID:                 o.ID.String(),
		OrderNumber:        o.OrderNumber,
		Status:             o.Status,
		PaymentStatus:      o.PaymentStatus,
		PaymentMethod:      helper.NullStringPtr(o.PaymentMethod),
		NotificationStatus: o.NotificationStatus,
		Currency:           o.Currency,
		TotalPrice:         helper.StringToDecimal(o.TotalPrice),
		GrossAmount:        o.GrossAmount,
		Customer: CustomerResponse{
			Name:  o.CustomerName,
			Email: o.CustomerEmail,
			Phone: helper.NullStringPtr(o.CustomerPhone),
		},
		SnapToken:       helper.NullStringPtr(o.SnapToken),
		SnapRedirectUrl: helper.NullStringPtr(o.SnapRedirectUrl),
		PaidAt:          helper.NullTimePtr(o.PaidAt),
		PlacedAt:        o.PlacedAt,
	}
	if res.NotificationStatus == "" {
		res.NotificationStatus = NotificationPending
	}

	for _, item := range items {
		unit := helper.NullToDecimal(item.UnitPrice)
		res.Items = append(res.Items, OrderItemResponse{
			ID:            item.ID.String(),
			ItemID:        item.ItemID,
			ServiceID:     item.ServiceID,
			Title:         item.Title,
			Image:         item.Image,
			UnitPrice:     unit,
			Quantity:      item.Quantity,
			Subtotal:      helper.NullToDecimal(item.TotalPrice),
			QuoteRequired: unit == nil,
		})
	}
	return res
}
