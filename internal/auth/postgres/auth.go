package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"github.com/wisnuadi/splitledger/internal"
	"github.com/wisnuadi/splitledger/internal/auth"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetCredentialsByEmail(ctx context.Context, email string) (int64, string, error) {
	var userID int64
	var passwordHash string
	query := `SELECT id, password_hash FROM users WHERE email = ? AND is_active = true`

	row := r.db.WithContext(ctx).Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", internal.ErrUserNotFound
		}
		return 0, "", err
	}
	return userID, passwordHash, nil
}

func (r *Repository) GetUserByID(ctx context.Context, userID int64) (*auth.User, error) {
	var u auth.User
	query := `SELECT id, email FROM users WHERE id = ? AND is_active = true`

	row := r.db.WithContext(ctx).Raw(query, userID).Row()
	if err := row.Scan(&u.ID, &u.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
