package auth

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*Operator, error)
	GetByID(ctx context.Context, id string) (*Operator, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Operator, error) {
	var op Operator
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&op).Error
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Operator, error) {
	var op Operator
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&op).Error
	if err != nil {
		return nil, err
	}
	return &op, nil
}
