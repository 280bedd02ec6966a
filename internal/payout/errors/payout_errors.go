package payouterrors

import (
	"net/http"

	"poolops/internal/shared/apperror"
)

var (
	ErrPayoutNotFound = apperror.New(
		apperror.CodeNotFound,
		"payout not found",
		http.StatusNotFound,
	)
	ErrInvalidPayoutID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payout id",
		http.StatusBadRequest,
	)
	ErrDateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"date is required",
		http.StatusBadRequest,
	)
	ErrRevenueRequired = apperror.New(
		apperror.CodeInvalidInput,
		"total_revenue is required",
		http.StatusBadRequest,
	)
	ErrEmployeePayoutsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"at least one employee payout is required",
		http.StatusBadRequest,
	)
	ErrInvalidPayType = apperror.New(
		apperror.CodeInvalidInput,
		"pay_type must be PERCENTAGE or HOURLY",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee referenced by payout not found",
		http.StatusNotFound,
	)
	ErrMissingPercentageRate = apperror.New(
		apperror.CodeInvalidInput,
		"percentage payout requires a rate on the request or the employee record",
		http.StatusBadRequest,
	)
	ErrMissingHourlyRate = apperror.New(
		apperror.CodeInvalidInput,
		"hourly payout requires a rate on the request or the employee record",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"from must be before or equal to to",
		http.StatusBadRequest,
	)
)
