package payperiod

import (
	"context"
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=payperiod_repo.go -destination=mock/payperiod_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *PayPeriod) error
	FindAll(ctx context.Context, filter ListPayPeriodsFilter) ([]PayPeriod, error)
	FindByID(ctx context.Context, id string) (*PayPeriod, error)
	Update(ctx context.Context, p *PayPeriod) error
	StatusesOverlappingDate(ctx context.Context, dateKey string) ([]string, error)
	UpsertRecord(ctx context.Context, r *PayrollRecord) error
	FindRecordsByPeriod(ctx context.Context, periodID string) ([]PayrollRecord, error)
	FindRecordByID(ctx context.Context, id string) (*PayrollRecord, error)
	UpdateRecord(ctx context.Context, r *PayrollRecord) error
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

func (r *repository) Create(ctx context.Context, p *PayPeriod) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListPayPeriodsFilter) ([]PayPeriod, error) {
	q := r.db.WithContext(ctx)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var rows []PayPeriod
	err := q.Order("start_date DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*PayPeriod, error) {
	var p PayPeriod
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *PayPeriod) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// StatusesOverlappingDate implements the gate the time entry ledger checks
// before mutating an entry on a given day.
func (r *repository) StatusesOverlappingDate(ctx context.Context, dateKey string) ([]string, error) {
	var statuses []string
	err := r.db.WithContext(ctx).
		Model(&PayPeriod{}).
		Where("start_date <= ? AND end_date >= ?", dateKey, dateKey).
		Pluck("status", &statuses).Error
	return statuses, err
}

// UpsertRecord writes the aggregate columns for (pay period, employee),
// leaving payment columns untouched on conflict so reprocessing never
// clobbers a recorded payment.
func (r *repository) UpsertRecord(ctx context.Context, rec *PayrollRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "pay_period_id"}, {Name: "employee_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_regular_hours",
				"total_overtime_hours",
				"total_pto_hours",
				"total_gross_pay",
				"total_daily_payouts",
				"overtime_multiplier_used",
				"updated_at",
			}),
		}).
		Create(rec).Error
}

func (r *repository) FindRecordsByPeriod(ctx context.Context, periodID string) ([]PayrollRecord, error) {
	var rows []PayrollRecord
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("pay_period_id = ?", periodID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindRecordByID(ctx context.Context, id string) (*PayrollRecord, error) {
	var rec PayrollRecord
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("id = ?", id).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) UpdateRecord(ctx context.Context, rec *PayrollRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}
