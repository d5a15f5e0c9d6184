package cloudinary

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicIDFor(t *testing.T) {
	tests := []struct {
		in     string
		prefix string
	}{
		{"Wedding Card (final).PDF", "wedding-card-final-"},
		{"../../etc/passwd", "passwd-"},
		{"логотип.png", "design-"},
		{"", "design-"},
	}
	for _, tt := range tests {
		got := PublicIDFor(tt.in)
		assert.True(t, strings.HasPrefix(got, tt.prefix), "%q -> %q", tt.in, got)
		assert.Len(t, got, len(tt.prefix)+8)
	}

	assert.NotEqual(t, PublicIDFor("a.png"), PublicIDFor("a.png"))
}

func TestDisabledService(t *testing.T) {
	svc := NewDisabledService()

	_, err := svc.Upload(context.Background(), strings.NewReader("x"), "a.png")
	assert.ErrorIs(t, err, ErrUploadsDisabled)
	assert.NoError(t, svc.Delete(context.Background(), "id", "image"))
}

func TestNewService_DefaultFolder(t *testing.T) {
	svc, err := NewService("demo", "key", "secret", "")
	require.NoError(t, err)
	assert.Equal(t, defaultFolder, svc.(*service).folder)
}

func TestNewServiceFromEnv_Unconfigured(t *testing.T) {
	t.Setenv("CLOUDINARY_CLOUD_NAME", "")

	svc, err := NewServiceFromEnv()
	require.NoError(t, err)
	assert.IsType(t, disabledService{}, svc)
}
