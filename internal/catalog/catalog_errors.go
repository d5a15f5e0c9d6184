package catalog

import (
	"net/http"

	"swarachna-api/internal/pkg/apperror"
)

var ErrServiceNotFound = apperror.New(
	apperror.CodeNotFound,
	"Service not found",
	http.StatusNotFound,
)
