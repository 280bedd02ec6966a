package employeeerrors

import (
	"net/http"

	"poolops/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"an employee with this email already exists",
		http.StatusConflict,
	)
	ErrEmployeeNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"an employee with this employee number already exists",
		http.StatusConflict,
	)
	ErrPayTypeRequired = apperror.New(
		apperror.CodeInvalidInput,
		"at least one pay type is required",
		http.StatusBadRequest,
	)
	ErrInvalidPayType = apperror.New(
		apperror.CodeInvalidInput,
		"pay type must be one of HOURLY, SALARY, PERCENTAGE",
		http.StatusBadRequest,
	)
	ErrHourlyRateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"hourly_rate must be greater than zero for hourly employees",
		http.StatusBadRequest,
	)
	ErrAnnualSalaryRequired = apperror.New(
		apperror.CodeInvalidInput,
		"annual_salary must be greater than zero for salaried employees",
		http.StatusBadRequest,
	)
	ErrPercentageRateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"percentage_rate must be greater than 0 and at most 100 for percentage employees",
		http.StatusBadRequest,
	)
	ErrInvalidOvertimeMultiplier = apperror.New(
		apperror.CodeInvalidInput,
		"overtime_multiplier must be at least 1",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of ACTIVE, INACTIVE, TERMINATED, ON_LEAVE",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
)
