package payout

import (
	"context"
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payout_repo.go -destination=mock/payout_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *PercentagePayout) error
	FindByID(ctx context.Context, id string) (*PercentagePayout, error)
	FindInRange(ctx context.Context, fromKey, toKey string) ([]PercentagePayout, error)
	FindEmployeePayoutsInRange(ctx context.Context, fromKey, toKey string) ([]EmployeePayoutWithDate, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds a gorm session to the caller's transaction so every write
// issued through the returned repository rides the same commit.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		return &repository{db: r.db, tx: tx}
	}
	return &repository{db: db, tx: tx}
}

// Create persists the payout document and its embedded employee rows in one
// gorm create.
func (r *repository) Create(ctx context.Context, p *PercentagePayout) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*PercentagePayout, error) {
	var p PercentagePayout
	err := r.db.WithContext(ctx).
		Preload("EmployeePayouts").
		Preload("EmployeePayouts.Employee").
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindInRange(ctx context.Context, fromKey, toKey string) ([]PercentagePayout, error) {
	var rows []PercentagePayout
	err := r.db.WithContext(ctx).
		Preload("EmployeePayouts").
		Preload("EmployeePayouts.Employee").
		Where("payout_date >= ? AND payout_date <= ?", fromKey, toKey).
		Order("payout_date ASC, created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindEmployeePayoutsInRange(ctx context.Context, fromKey, toKey string) ([]EmployeePayoutWithDate, error) {
	var rows []EmployeePayoutWithDate
	err := r.db.WithContext(ctx).
		Table("employee_payouts").
		Select("employee_payouts.*, percentage_payouts.payout_date AS payout_date").
		Joins("JOIN percentage_payouts ON percentage_payouts.id = employee_payouts.payout_id").
		Where("percentage_payouts.payout_date >= ? AND percentage_payouts.payout_date <= ?", fromKey, toKey).
		Where("percentage_payouts.deleted_at IS NULL").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("payout_id = ?", id).Delete(&EmployeePayout{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&PercentagePayout{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
