package payperiod_test

import (
	"context"
	"testing"

	"poolops/internal/payperiod"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// The pool mock carries no expectations, so any statement the tx-bound
// repository routes past the transaction fails the test.
func TestRepository_WithTx_WritesRideTheTransaction(t *testing.T) {
	ctx := context.Background()

	poolDB, poolMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer poolDB.Close()

	poolGorm, err := gorm.Open(postgres.New(postgres.Config{Conn: poolDB}), &gorm.Config{})
	assert.NoError(t, err)
	repo := payperiod.NewRepository(poolGorm)

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()

	txMock.ExpectBegin()
	txMock.ExpectExec(`UPDATE "pay_periods" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	txMock.ExpectCommit()

	tx, err := txDB.Begin()
	assert.NoError(t, err)

	period := lockedPeriod(uuid.New())
	period.Status = payperiod.StatusProcessed

	assert.NoError(t, repo.WithTx(tx).Update(ctx, period))
	assert.NoError(t, tx.Commit())

	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, poolMock.ExpectationsWereMet())
}
