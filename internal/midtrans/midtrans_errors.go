package midtrans

import (
	"errors"
	"net/http"

	"swarachna-api/internal/pkg/apperror"
)

var ErrUnsupportedCurrency = errors.New("unsupported currency")

var ErrPaymentGateway = apperror.New(
	apperror.CodeUpstream,
	"Payment could not be started, please try again",
	http.StatusBadGateway,
)
