package payout

import (
	"errors"

	payouterrors "poolops/internal/payout/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payouterrors.ErrPayoutNotFound
	}

	return err
}
