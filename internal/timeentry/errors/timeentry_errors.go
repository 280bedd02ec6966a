package timeentryerrors

import (
	"net/http"

	"poolops/internal/shared/apperror"
)

var (
	ErrTimeEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"time entry not found",
		http.StatusNotFound,
	)
	ErrInvalidEntryID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time entry id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidEntryType = apperror.New(
		apperror.CodeInvalidInput,
		"type must be one of REGULAR, OVERTIME, PTO, SICK, HOLIDAY",
		http.StatusBadRequest,
	)
	ErrNegativeHours = apperror.New(
		apperror.CodeInvalidInput,
		"hours worked cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"start_time and end_time must be RFC3339 timestamps",
		http.StatusBadRequest,
	)
	ErrEndBeforeStart = apperror.New(
		apperror.CodeInvalidInput,
		"end_time must be after start_time",
		http.StatusBadRequest,
	)
	ErrPeriodLocked = apperror.New(
		apperror.CodeInvalidState,
		"time entry falls in a locked pay period and cannot be edited",
		http.StatusConflict,
	)
	ErrPeriodClosed = apperror.New(
		apperror.CodeInvalidState,
		"time entry falls in a locked or processed pay period and cannot be deleted",
		http.StatusConflict,
	)
)
