package midtrans

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	midtransgo "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// Snap only settles in rupiah.
const gatewayCurrency = "IDR"

//go:generate mockgen -source=midtrans_service.go -destination=../mock/midtrans/midtrans_service_mock.go -package=mock
type Service interface {
	CreateTransactionToken(req *CreateTransactionRequest) (*CreateTransactionResponse, error)
	// VerifySignature checks a notification's signature_key.
	VerifySignature(orderID, statusCode, grossAmount, signature string) bool
	Currency() string
}

type Config struct {
	ServerKey    string
	IsProduction bool
	Currency     string
	FinishURL    string
}

type service struct {
	client    snap.Client
	serverKey string
	currency  string
	finishURL string
}

func NewServiceFromEnv() (Service, error) {
	return NewService(Config{
		ServerKey:    os.Getenv("MIDTRANS_SERVER_KEY"),
		IsProduction: os.Getenv("MIDTRANS_IS_PRODUCTION") == "true",
		Currency:     os.Getenv("PAYMENT_CURRENCY"),
		FinishURL:    os.Getenv("MIDTRANS_FINISH_URL"),
	})
}

func NewService(cfg Config) (Service, error) {
	if cfg.ServerKey == "" {
		return nil, fmt.Errorf("MIDTRANS_SERVER_KEY is not configured")
	}
	currency := strings.ToUpper(strings.TrimSpace(cfg.Currency))
	if currency == "" {
		currency = gatewayCurrency
	}
	if currency != gatewayCurrency {
		return nil, fmt.Errorf("%w: midtrans settles %s only, got %s", ErrUnsupportedCurrency, gatewayCurrency, currency)
	}

	var env midtransgo.EnvironmentType
	if cfg.IsProduction {
		env = midtransgo.Production
	} else {
		env = midtransgo.Sandbox
	}

	c := snap.Client{}
	c.New(cfg.ServerKey, env)

	return &service{
		client:    c,
		serverKey: cfg.ServerKey,
		currency:  currency,
		finishURL: cfg.FinishURL,
	}, nil
}

func (s *service) Currency() string {
	return s.currency
}

func (s *service) CreateTransactionToken(req *CreateTransactionRequest) (*CreateTransactionResponse, error) {
	snapReq := &snap.Request{
		TransactionDetails: midtransgo.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.GrossAmount,
		},
	}
	if req.Customer != nil {
		snapReq.CustomerDetail = &midtransgo.CustomerDetails{
			FName: req.Customer.FirstName,
			LName: req.Customer.LastName,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		}
	}
	if s.finishURL != "" {
		snapReq.Callbacks = &snap.Callbacks{Finish: s.finishURL}
	}

	items := reconcileItems(req)
	snapReq.Items = &items

	snapResp, err := s.client.CreateTransaction(snapReq)
	if err != nil {
		return nil, ErrPaymentGateway.Wrap(err)
	}

	return &CreateTransactionResponse{
		Token:       snapResp.Token,
		RedirectURL: snapResp.RedirectURL,
	}, nil
}

func (s *service) VerifySignature(orderID, statusCode, grossAmount, signature string) bool {
	return subtle.ConstantTimeCompare(
		[]byte(Signature(orderID, statusCode, grossAmount, s.serverKey)),
		[]byte(strings.ToLower(signature)),
	) == 1
}

// Signature is the notification signature_key for the given fields.
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// reconcileItems returns the item lines when they add up to the gross amount.
// Quote-only lines do not, so the charge is then sent as a single deposit line.
func reconcileItems(req *CreateTransactionRequest) []midtransgo.ItemDetails {
	var sum int64
	items := make([]midtransgo.ItemDetails, 0, len(req.Items))
	for _, item := range req.Items {
		sum += item.Price * int64(item.Quantity)
		items = append(items, midtransgo.ItemDetails{
			ID:    item.ID,
			Price: item.Price,
			Qty:   item.Quantity,
			Name:  truncate(item.Name, 50),
		})
	}
	if sum == req.GrossAmount && len(items) > 0 {
		return items
	}

	return []midtransgo.ItemDetails{{
		ID:    req.OrderID,
		Price: req.GrossAmount,
		Qty:   1,
		Name:  truncate("Order "+req.OrderID+" deposit", 50),
	}}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
