package payperiod

import (
	"errors"

	payperioderrors "poolops/internal/payperiod/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payperioderrors.ErrPeriodNotFound
	}

	return err
}

func mapRecordError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payperioderrors.ErrRecordNotFound
	}

	return err
}
