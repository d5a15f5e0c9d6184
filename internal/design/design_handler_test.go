package design_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"swarachna-api/internal/design"
	designMock "swarachna-api/internal/mock/design"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupDesignRouter(svc design.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("session_id", "sess-1")
		c.Next()
	})
	design.RegisterRoutes(r.Group(""), design.NewHandler(svc, nil))
	return r
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestDesignHandler_Draft(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := designMock.NewMockService(ctrl)
	r := setupDesignRouter(svc)

	svc.EXPECT().Draft(gomock.Any(), "sess-1").Return(design.DraftResponse{StepCount: 3, IsFirst: true}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/design-requests/draft", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stepCount":3`)
}

func TestDesignHandler_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := designMock.NewMockService(ctrl)
	r := setupDesignRouter(svc)

	svc.EXPECT().
		Update(gomock.Any(), "sess-1", gomock.Any()).
		DoAndReturn(func(_ any, _ string, req design.UpdateDraftRequest) (design.DraftResponse, error) {
			require.NotNil(t, req.ServiceType)
			assert.Equal(t, "logo-design", *req.ServiceType)
			assert.Nil(t, req.ContactInfo)
			return design.DraftResponse{}, nil
		})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/design-requests/draft", strings.NewReader(`{"serviceType":"logo-design"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/design-requests/draft", strings.NewReader(`{"serviceType":`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDesignHandler_AddFile(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := designMock.NewMockService(ctrl)
		r := setupDesignRouter(svc)

		svc.EXPECT().
			AddFile(gomock.Any(), "sess-1", gomock.Any()).
			DoAndReturn(func(_ any, _ string, f design.FileUpload) (design.DraftResponse, error) {
				assert.Equal(t, "logo.png", f.Name)
				assert.Equal(t, int64(len(pngHeader)), f.Size)
				return design.DraftResponse{}, nil
			})

		body, ct := multipartBody(t, "file", "logo.png", pngHeader)
		req := httptest.NewRequest(http.MethodPost, "/design-requests/draft/files", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing_file_field", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := setupDesignRouter(designMock.NewMockService(ctrl))

		body, ct := multipartBody(t, "attachment", "logo.png", pngHeader)
		req := httptest.NewRequest(http.MethodPost, "/design-requests/draft/files", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unsupported_type", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := designMock.NewMockService(ctrl)
		r := setupDesignRouter(svc)

		svc.EXPECT().AddFile(gomock.Any(), gomock.Any(), gomock.Any()).Return(design.DraftResponse{}, design.ErrUnsupportedFileType)

		body, ct := multipartBody(t, "file", "notes.txt", []byte("plain"))
		req := httptest.NewRequest(http.MethodPost, "/design-requests/draft/files", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})
}

func TestDesignHandler_StepNavigation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := designMock.NewMockService(ctrl)
	r := setupDesignRouter(svc)

	svc.EXPECT().Next(gomock.Any(), "sess-1", "").Return(design.NextResponse{Submitted: true, NotificationSent: true}, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/design-requests/draft/next", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data design.NextResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Data.Submitted)

	svc.EXPECT().Next(gomock.Any(), "sess-1", "").Return(design.NextResponse{}, design.ErrContactRequired)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/design-requests/draft/next", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "contact information")

	svc.EXPECT().Back(gomock.Any(), "sess-1").Return(design.DraftResponse{}, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/design-requests/draft/back", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/design-requests/draft/steps/two", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.EXPECT().GoTo(gomock.Any(), "sess-1", 2).Return(design.DraftResponse{}, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/design-requests/draft/steps/2", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDesignHandler_RemoveAndDiscard(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := designMock.NewMockService(ctrl)
	r := setupDesignRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/design-requests/draft/files/abc", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	svc.EXPECT().RemoveFile(gomock.Any(), "sess-1", 0).Return(design.DraftResponse{}, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/design-requests/draft/files/0", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	svc.EXPECT().Discard(gomock.Any(), "sess-1").Return(nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/design-requests/draft", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
