package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"swarachna-api/internal/pkg/apperror"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const defaultFolder = "swarachna/design-requests"

var ErrUploadsDisabled = apperror.New(
	apperror.CodeUpstream,
	"File uploads are not available right now",
	http.StatusServiceUnavailable,
)

var ErrUploadFailed = apperror.New(
	apperror.CodeUpstream,
	"We couldn't upload your file. Please try again.",
	http.StatusBadGateway,
)

type UploadedFile struct {
	URL          string
	PublicID     string
	ResourceType string
	Bytes        int
}

//go:generate mockgen -source=cloudinary_service.go -destination=../mock/cloudinary/cloudinary_service_mock.go -package=mock
type Service interface {
	Upload(ctx context.Context, file io.Reader, filename string) (UploadedFile, error)
	Delete(ctx context.Context, publicID, resourceType string) error
}

type service struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewServiceFromEnv falls back to a disabled uploader when no cloud is
// configured so the rest of the API still starts.
func NewServiceFromEnv() (Service, error) {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	if cloudName == "" {
		return NewDisabledService(), nil
	}
	return NewService(
		cloudName,
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
		os.Getenv("CLOUDINARY_FOLDER"),
	)
}

func NewService(cloudName, apiKey, apiSecret, folder string) (Service, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	if folder == "" {
		folder = defaultFolder
	}

	return &service{
		cld:    cld,
		folder: folder,
	}, nil
}

// Upload stores a design file (image or PDF) and returns where it lives.
func (s *service) Upload(ctx context.Context, file io.Reader, filename string) (UploadedFile, error) {
	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     PublicIDFor(filename),
		ResourceType: "auto",
	})
	if err != nil {
		return UploadedFile{}, ErrUploadFailed.Wrap(err)
	}
	if res.Error.Message != "" {
		return UploadedFile{}, ErrUploadFailed.Wrap(errors.New(res.Error.Message))
	}

	return UploadedFile{
		URL:          res.SecureURL,
		PublicID:     res.PublicID,
		ResourceType: res.ResourceType,
		Bytes:        res.Bytes,
	}, nil
}

func (s *service) Delete(ctx context.Context, publicID, resourceType string) error {
	if resourceType == "" {
		resourceType = "image"
	}
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", publicID, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("failed to delete %s: %s", publicID, res.Error.Message)
	}

	return nil
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// PublicIDFor derives a unique, URL-safe public id from an uploaded file name.
func PublicIDFor(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = unsafeChars.ReplaceAllString(strings.ToLower(base), "-")
	base = strings.Trim(base, "-")
	if len(base) > 60 {
		base = base[:60]
	}
	if base == "" {
		base = "design"
	}
	return base + "-" + uuid.NewString()[:8]
}

type disabledService struct{}

func NewDisabledService() Service {
	return disabledService{}
}

func (disabledService) Upload(context.Context, io.Reader, string) (UploadedFile, error) {
	return UploadedFile{}, ErrUploadsDisabled
}

func (disabledService) Delete(context.Context, string, string) error {
	return nil
}
