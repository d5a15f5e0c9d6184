package order_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	orderMock "swarachna-api/internal/mock/order"
	"swarachna-api/internal/order"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupOrderRouter(svc order.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := order.NewHandler(svc, nil)

	withUser := func(c *gin.Context) {
		c.Set("session_id", "sess-1")
		if uid := c.GetHeader("X-Test-User"); uid != "" {
			c.Set("user_id_validated", uid)
		}
		c.Next()
	}

	r.POST("/orders/checkout", withUser, h.Checkout)
	r.GET("/orders", withUser, h.List)
	r.GET("/orders/:orderNumber", withUser, h.Detail)
	r.POST("/payments/midtrans/notification", h.HandleMidtransNotification)
	return r
}

func doJSON(r http.Handler, method, path, user string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOrderHandler_Checkout(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := orderMock.NewMockService(ctrl)
		r := setupOrderRouter(svc)

		svc.EXPECT().
			Checkout(gomock.Any(), "user-1", "sess-1", validCheckout).
			Return(order.CheckoutResponse{
				Order:   order.OrderResponse{OrderNumber: "SWA-1"},
				Payment: order.PaymentResponse{SnapToken: "tok"},
			}, nil)

		w := doJSON(r, http.MethodPost, "/orders/checkout", "user-1", validCheckout)
		require.Equal(t, http.StatusCreated, w.Code)

		var body struct {
			Data order.CheckoutResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "SWA-1", body.Data.Order.OrderNumber)
		assert.Equal(t, "tok", body.Data.Payment.SnapToken)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := setupOrderRouter(orderMock.NewMockService(ctrl))

		w := doJSON(r, http.MethodPost, "/orders/checkout", "", validCheckout)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("validation_error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := setupOrderRouter(orderMock.NewMockService(ctrl))

		w := doJSON(r, http.MethodPost, "/orders/checkout", "user-1", map[string]string{"name": "A", "email": "bad"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty_cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := orderMock.NewMockService(ctrl)
		r := setupOrderRouter(svc)

		svc.EXPECT().Checkout(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(order.CheckoutResponse{}, order.ErrCartEmpty)

		w := doJSON(r, http.MethodPost, "/orders/checkout", "user-1", validCheckout)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Your cart is empty")
	})
}

func TestOrderHandler_ListAndDetail(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := orderMock.NewMockService(ctrl)
	r := setupOrderRouter(svc)

	svc.EXPECT().List(gomock.Any(), "user-1", 2, 5).Return([]order.OrderResponse{{OrderNumber: "SWA-9"}}, int64(6), nil)
	w := doJSON(r, http.MethodGet, "/orders?page=2&limit=5", "user-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SWA-9")
	assert.Contains(t, w.Body.String(), `"totalItems":6`)

	svc.EXPECT().Detail(gomock.Any(), "user-1", "SWA-404").Return(order.OrderResponse{}, order.ErrOrderNotFound)
	w = doJSON(r, http.MethodGet, "/orders/SWA-404", "user-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_MidtransNotification(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := orderMock.NewMockService(ctrl)
	r := setupOrderRouter(svc)

	payload := notification("settlement")

	svc.EXPECT().HandleMidtransNotification(gomock.Any(), payload).Return(nil)
	w := doJSON(r, http.MethodPost, "/payments/midtrans/notification", "", payload)
	assert.Equal(t, http.StatusOK, w.Code)

	svc.EXPECT().HandleMidtransNotification(gomock.Any(), gomock.Any()).Return(order.ErrInvalidMidtransSignature)
	w = doJSON(r, http.MethodPost, "/payments/midtrans/notification", "", payload)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodPost, "/payments/midtrans/notification", "", map[string]string{"order_id": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
