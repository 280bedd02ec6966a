package auth

import (
	"context"
	"os"
	"time"

	autherrors "poolops/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, operatorID string) (*AuthResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Login(ctx context.Context, email, password string) (string, AuthResponse, error) {
	op, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.Password), []byte(password)); err != nil {
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if !op.IsActive {
		return "", AuthResponse{}, autherrors.ErrOperatorInactive
	}

	token, err := signAccessToken(op)
	if err != nil {
		return "", AuthResponse{}, err
	}

	return token, mapToResponse(*op), nil
}

func (s *service) GetMe(ctx context.Context, operatorID string) (*AuthResponse, error) {
	op, err := s.repo.GetByID(ctx, operatorID)
	if err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	resp := mapToResponse(*op)
	return &resp, nil
}

func signAccessToken(op *Operator) (string, error) {
	claims := jwt.MapClaims{
		"user_id": op.ID.String(),
		"role":    op.Role,
		"exp":     time.Now().Add(12 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToResponse(op Operator) AuthResponse {
	resp := AuthResponse{
		ID:    op.ID.String(),
		Email: op.Email,
		Name:  op.Name,
		Role:  op.Role,
	}
	if op.EmployeeID != nil {
		resp.EmployeeID = op.EmployeeID.String()
	}
	return resp
}
