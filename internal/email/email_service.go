package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultOwnerEmail = "swarachnaa@gmail.com"

//go:generate mockgen -source=email_service.go -destination=../mock/email/email_service_mock.go -package=mock
type Service interface {
	SendOrderEmail(ctx context.Context, msg OrderEmail) error
	SendContactEmail(ctx context.Context, msg ContactEmail) error
	SendDesignSubmissionEmail(ctx context.Context, msg DesignSubmissionEmail) error
}

type Config struct {
	APIKey     string
	FromEmail  string
	OwnerEmail string
	BaseURL    string
}

type resendService struct {
	apiKey     string
	fromEmail  string
	ownerEmail string
	baseURL    string
	client     *http.Client
}

func NewResendServiceFromEnv() (Service, error) {
	apiKey := strings.Trim(os.Getenv("RESEND_API_KEY"), "\"")
	if apiKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY is not configured")
	}

	return NewResendService(Config{
		APIKey:     apiKey,
		FromEmail:  strings.TrimSpace(strings.Trim(os.Getenv("RESEND_FROM_EMAIL"), "\"")),
		OwnerEmail: strings.TrimSpace(os.Getenv("NOTIFY_OWNER_EMAIL")),
	}), nil
}

func NewResendService(cfg Config) Service {
	if cfg.FromEmail == "" {
		cfg.FromEmail = "onboarding@resend.dev"
	}
	if cfg.OwnerEmail == "" {
		cfg.OwnerEmail = defaultOwnerEmail
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.resend.com"
	}
	return &resendService{
		apiKey:     cfg.APIKey,
		fromEmail:  cfg.FromEmail,
		ownerEmail: cfg.OwnerEmail,
		baseURL:    cfg.BaseURL,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

func NewNoopService() Service {
	return &noopService{}
}

func (s *resendService) SendOrderEmail(ctx context.Context, msg OrderEmail) error {
	if msg.PlacedAt.IsZero() {
		msg.PlacedAt = time.Now()
	}
	html, err := render(orderTmpl, struct {
		Heading, Footer string
		Order           OrderEmail
	}{"Swarachna - New Order", "Thank you for using Swarachna services!", msg})
	if err != nil {
		return fmt.Errorf("render order email: %w", err)
	}

	subject := fmt.Sprintf("New Order #%s from %s", msg.OrderNumber, msg.Customer.Name)
	return s.send(ctx, msg.Customer.Email, subject, html)
}

func (s *resendService) SendContactEmail(ctx context.Context, msg ContactEmail) error {
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now()
	}
	html, err := render(contactTmpl, struct {
		Heading, Footer string
		Contact         ContactEmail
	}{"Swarachna - Contact Form Submission", "This is an automated message from your website contact form.", msg})
	if err != nil {
		return fmt.Errorf("render contact email: %w", err)
	}

	return s.send(ctx, msg.Email, "New Contact Form Submission from "+msg.Name, html)
}

func (s *resendService) SendDesignSubmissionEmail(ctx context.Context, msg DesignSubmissionEmail) error {
	if msg.SubmittedAt.IsZero() {
		msg.SubmittedAt = time.Now()
	}
	html, err := render(designTmpl, struct {
		Heading, Footer string
		Design          DesignSubmissionEmail
	}{"Swarachna - Design Upload", "This is an automated message from your design upload form.", msg})
	if err != nil {
		return fmt.Errorf("render design email: %w", err)
	}

	return s.send(ctx, "", "New Design Submission for "+msg.ServiceTitle, html)
}

// send delivers to the studio owner; replyTo lets the owner answer the
// customer directly.
func (s *resendService) send(ctx context.Context, replyTo, subject, html string) error {
	payload := map[string]any{
		"from":    s.fromEmail,
		"to":      []string{s.ownerEmail},
		"subject": subject,
		"html":    html,
	}
	if replyTo != "" {
		payload["reply_to"] = replyTo
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		msg := strings.TrimSpace(string(respBody))
		if len(msg) > 500 {
			msg = msg[:500]
		}
		if msg == "" {
			return fmt.Errorf("resend API returned status %d", resp.StatusCode)
		}
		return fmt.Errorf("resend API returned status %d: %s", resp.StatusCode, msg)
	}

	return nil
}

type noopService struct{}

func (s *noopService) SendOrderEmail(_ context.Context, _ OrderEmail) error {
	return nil
}

func (s *noopService) SendContactEmail(_ context.Context, _ ContactEmail) error {
	return nil
}

func (s *noopService) SendDesignSubmissionEmail(_ context.Context, _ DesignSubmissionEmail) error {
	return nil
}
