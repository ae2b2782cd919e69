package category

import (
	"context"
	"errors"
	"log/slog"

	"github.com/wisnuadi/splitledger/internal"
	categoryDatamodel "github.com/wisnuadi/splitledger/internal/core/datamodel/category"
)

type Repository interface {
	GetAll(ctx context.Context) ([]*categoryDatamodel.Category, error)
	GetByID(ctx context.Context, id int64) (*categoryDatamodel.Category, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAllCategories(ctx context.Context) ([]CategoryResponse, error) {
	dataCategories, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get categories from repository", "error", err)
		return nil, internal.NewRepositoryError("could not load categories", err)
	}

	responses := make([]CategoryResponse, 0, len(dataCategories))
	for _, dataCategory := range dataCategories {
		responses = append(responses, FromDataModel(dataCategory).ToResponse())
	}
	return responses, nil
}

// Exists reports whether a category id refers to a seeded category. The
// expense service uses it to validate references before writing.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, internal.ErrCategoryNotFound) {
			return false, nil
		}
		s.logger.Error("failed to look up category", "category_id", id, "error", err)
		return false, internal.NewRepositoryError("could not look up category", err)
	}
	return true, nil
}
