package payperioderrors

import (
	"net/http"

	"poolops/internal/shared/apperror"
)

var (
	ErrPeriodNotFound = apperror.New(
		apperror.CodeNotFound,
		"pay period not found",
		http.StatusNotFound,
	)
	ErrInvalidPeriodID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid pay period id",
		http.StatusBadRequest,
	)
	ErrNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"pay period name is required",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal to end_date",
		http.StatusBadRequest,
	)
	ErrNotOpen = apperror.New(
		apperror.CodeInvalidState,
		"only an open pay period can be locked",
		http.StatusConflict,
	)
	ErrNotLocked = apperror.New(
		apperror.CodeInvalidState,
		"only a locked pay period can be processed",
		http.StatusConflict,
	)
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll record not found",
		http.StatusNotFound,
	)
	ErrInvalidRecordID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll record id",
		http.StatusBadRequest,
	)
	ErrInvalidPaymentStatus = apperror.New(
		apperror.CodeInvalidInput,
		"payment_status must be UNPAID, SCHEDULED or PAID",
		http.StatusBadRequest,
	)
)
