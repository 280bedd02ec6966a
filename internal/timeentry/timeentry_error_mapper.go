package timeentry

import (
	"errors"

	timeentryerrors "poolops/internal/timeentry/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return timeentryerrors.ErrTimeEntryNotFound
	}

	return err
}
