package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"swarachna-api/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

var errSample = apperror.New(apperror.CodeNotFound, "thing not found", http.StatusNotFound)

func TestToHTTP(t *testing.T) {
	t.Run("nil_error", func(t *testing.T) {
		res := apperror.ToHTTP(nil)
		assert.Equal(t, http.StatusOK, res.Status)
	})

	t.Run("app_error", func(t *testing.T) {
		res := apperror.ToHTTP(errSample)
		assert.Equal(t, http.StatusNotFound, res.Status)
		assert.Equal(t, apperror.CodeNotFound, res.Code)
		assert.Equal(t, "thing not found", res.Message)
	})

	t.Run("wrapped_app_error", func(t *testing.T) {
		err := fmt.Errorf("loading: %w", errSample.Wrap(errors.New("boom")))
		res := apperror.ToHTTP(err)
		assert.Equal(t, &apperror.HTTPError{
			Status:  http.StatusNotFound,
			Code:    apperror.CodeNotFound,
			Message: "thing not found",
		}, res)
		assert.True(t, errors.Is(err, errSample))
	})

	t.Run("plain_error", func(t *testing.T) {
		res := apperror.ToHTTP(errors.New("db down"))
		assert.Equal(t, http.StatusInternalServerError, res.Status)
		assert.Equal(t, apperror.CodeInternalError, res.Code)
	})
}
