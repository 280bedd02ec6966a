package timeentry

import (
	"context"
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=timeentry_repo.go -destination=mock/timeentry_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *TimeEntry) error
	FindByID(ctx context.Context, id string) (*TimeEntry, error)
	FindAll(ctx context.Context, filter ListTimeEntriesFilter) ([]TimeEntry, error)
	FindApprovedByDate(ctx context.Context, dateKey string) ([]TimeEntry, error)
	FindApprovedByEmployeeAndDate(ctx context.Context, employeeID, dateKey string) ([]TimeEntry, error)
	FindApprovedInRange(ctx context.Context, fromKey, toKey string) ([]TimeEntry, error)
	Update(ctx context.Context, e *TimeEntry) error
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

func (r *repository) Create(ctx context.Context, e *TimeEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*TimeEntry, error) {
	var e TimeEntry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindAll(ctx context.Context, filter ListTimeEntriesFilter) ([]TimeEntry, error) {
	q := r.db.WithContext(ctx).Preload("Employee")

	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.From != "" {
		q = q.Where("entry_date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("entry_date <= ?", filter.To)
	}
	if filter.Approved != nil {
		q = q.Where("approved = ?", *filter.Approved)
	}

	var rows []TimeEntry
	err := q.Order("entry_date DESC, created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindApprovedByDate(ctx context.Context, dateKey string) ([]TimeEntry, error) {
	var rows []TimeEntry
	err := r.db.WithContext(ctx).
		Where("entry_date = ?", dateKey).
		Where("approved = ?", true).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindApprovedByEmployeeAndDate(ctx context.Context, employeeID, dateKey string) ([]TimeEntry, error) {
	var rows []TimeEntry
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("entry_date = ?", dateKey).
		Where("approved = ?", true).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindApprovedInRange(ctx context.Context, fromKey, toKey string) ([]TimeEntry, error) {
	var rows []TimeEntry
	err := r.db.WithContext(ctx).
		Where("entry_date >= ? AND entry_date <= ?", fromKey, toKey).
		Where("approved = ?", true).
		Order("entry_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, e *TimeEntry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&TimeEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
