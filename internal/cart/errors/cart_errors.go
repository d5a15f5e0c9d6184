package carterrors

import (
	"errors"
	"net/http"

	"swarachna-api/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidItemID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid cart item id",
		http.StatusBadRequest,
	)

	ErrInvalidQty = apperror.New(
		apperror.CodeInvalidInput,
		"Quantity is required",
		http.StatusBadRequest,
	)

	ErrQtyTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"Quantity cannot exceed 999",
		http.StatusBadRequest,
	)

	ErrUnknownItem = apperror.New(
		apperror.CodeNotFound,
		"Item not found in catalog",
		http.StatusNotFound,
	)

	ErrInvalidInput = apperror.New(
		apperror.CodeValidation,
		"Invalid cart input",
		http.StatusBadRequest,
	)
)

// MapValidationError turns the first failing field into a cart error.
func MapValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return ErrInvalidInput
	}

	switch verrs[0].Field() {
	case "ID":
		return ErrInvalidItemID
	case "Qty":
		if verrs[0].Tag() == "max" {
			return ErrQtyTooLarge
		}
		return ErrInvalidQty
	default:
		return ErrInvalidInput
	}
}
