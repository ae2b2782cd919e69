package user

import (
	"context"
	"errors"

	"github.com/wisnuadi/splitledger/internal"
)

type Repository interface {
	GetByID(ctx context.Context, userID int64) (*User, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) GetByID(ctx context.Context, userID int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return nil, err
		}
		return nil, internal.NewRepositoryError("could not load user", err)
	}
	return u, nil
}
