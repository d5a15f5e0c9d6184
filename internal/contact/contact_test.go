package contact_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"swarachna-api/internal/contact"
	"swarachna-api/internal/email"
	emailMock "swarachna-api/internal/mock/email"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var validRequest = contact.ContactRequest{
	Name:    "Meera",
	Email:   "meera@example.com",
	Message: "  Need a wedding invitation suite.  ",
}

func TestService_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mailer := emailMock.NewMockService(ctrl)
		svc := contact.NewService(mailer, nil)

		mailer.EXPECT().
			SendContactEmail(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, msg email.ContactEmail) error {
				assert.Equal(t, "Need a wedding invitation suite.", msg.Message)
				assert.Equal(t, "meera@example.com", msg.Email)
				assert.False(t, msg.SentAt.IsZero())
				return nil
			})

		res, err := svc.Send(ctx, validRequest)
		require.NoError(t, err)
		assert.True(t, res.Sent)
	})

	t.Run("blank_message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := contact.NewService(emailMock.NewMockService(ctrl), nil)

		req := validRequest
		req.Message = "   "
		_, err := svc.Send(ctx, req)
		assert.ErrorIs(t, err, contact.ErrEmptyMessage)
	})

	t.Run("email_failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mailer := emailMock.NewMockService(ctrl)
		svc := contact.NewService(mailer, nil)

		mailer.EXPECT().SendContactEmail(gomock.Any(), gomock.Any()).Return(errors.New("resend 500"))

		_, err := svc.Send(ctx, validRequest)
		assert.ErrorIs(t, err, contact.ErrSendFailed)
	})
}

func TestHandler_Send(t *testing.T) {
	gin.SetMode(gin.TestMode)

	post := func(r http.Handler, body any) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}
	newRouter := func(mailer email.Service) *gin.Engine {
		r := gin.New()
		contact.RegisterRoutes(r.Group("/api/v1"), contact.NewHandler(contact.NewService(mailer, nil)))
		return r
	}

	t.Run("ok", func(t *testing.T) {
		w := post(newRouter(email.NewNoopService()), validRequest)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("upstream_failure_is_502", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mailer := emailMock.NewMockService(ctrl)
		mailer.EXPECT().SendContactEmail(gomock.Any(), gomock.Any()).Return(errors.New("down"))

		w := post(newRouter(mailer), validRequest)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "We couldn't send your message. Please try again later.")
	})

	t.Run("missing_email", func(t *testing.T) {
		w := post(newRouter(email.NewNoopService()), map[string]string{"name": "Meera", "message": "hi"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rate_limited", func(t *testing.T) {
		r := newRouter(email.NewNoopService())
		codes := make([]int, 0, 4)
		for i := 0; i < 4; i++ {
			codes = append(codes, post(r, validRequest).Code)
		}
		assert.Equal(t, []int{200, 200, 200, http.StatusTooManyRequests}, codes)
	})
}
