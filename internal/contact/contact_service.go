package contact

import (
	"context"
	"strings"
	"time"

	"swarachna-api/internal/email"

	"go.uber.org/zap"
)

const sentMessage = "We've received your message and will contact you soon."

//go:generate mockgen -source=contact_service.go -destination=../mock/contact/contact_service_mock.go -package=mock
type Service interface {
	Send(ctx context.Context, req ContactRequest) (ContactResponse, error)
}

type service struct {
	emailSvc email.Service
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(emailSvc email.Service, logger *zap.Logger) Service {
	if emailSvc == nil {
		panic("email service cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{emailSvc: emailSvc, logger: logger, now: time.Now}
}

func (s *service) Send(ctx context.Context, req ContactRequest) (ContactResponse, error) {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return ContactResponse{}, ErrEmptyMessage
	}

	err := s.emailSvc.SendContactEmail(ctx, email.ContactEmail{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Message: msg,
		SentAt:  s.now(),
	})
	if err != nil {
		s.logger.Error("contact email failed", zap.String("email", req.Email), zap.Error(err))
		return ContactResponse{}, ErrSendFailed.Wrap(err)
	}

	return ContactResponse{Sent: true, Message: sentMessage}, nil
}
