package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wisnuadi/splitledger/internal"
	userDatamodel "github.com/wisnuadi/splitledger/internal/core/datamodel/user"
	"github.com/wisnuadi/splitledger/internal/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*user.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", userID, true).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&u), nil
}
