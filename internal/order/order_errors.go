package order

import (
	"net/http"

	"swarachna-api/internal/pkg/apperror"
)

var (
	ErrCartEmpty = apperror.New(
		apperror.CodeInvalidState,
		"Your cart is empty. Please add items before checkout.",
		http.StatusUnprocessableEntity,
	)
	ErrOrderNotFound = apperror.New(
		apperror.CodeNotFound,
		"Order not found",
		http.StatusNotFound,
	)
	ErrInvalidOrderNumber = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid order number",
		http.StatusBadRequest,
	)
	ErrOrderFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to process order",
		http.StatusInternalServerError,
	)
	ErrInvalidMidtransSignature = apperror.New(
		apperror.CodeForbidden,
		"Invalid notification signature",
		http.StatusForbidden,
	)
	ErrInvalidGrossAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Gross amount does not match the order",
		http.StatusBadRequest,
	)
	ErrInvalidTransactionTime = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid transaction time",
		http.StatusBadRequest,
	)
	ErrInvalidPaymentStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Payment status cannot change from its current state",
		http.StatusConflict,
	)
)
