package settings

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=settings_repo.go -destination=mock/settings_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Get(ctx context.Context) (*CompanySettings, error)
	Save(ctx context.Context, s *CompanySettings) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// Get returns the single settings row, or gorm.ErrRecordNotFound when the
// table is empty.
func (r *repository) Get(ctx context.Context) (*CompanySettings, error) {
	var s CompanySettings
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Save(ctx context.Context, s *CompanySettings) error {
	return r.db.WithContext(ctx).Save(s).Error
}
