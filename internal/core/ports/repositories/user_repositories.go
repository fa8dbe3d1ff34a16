package repositories

import (
	"context"

	"github.com/lfmachado/digibank/internal/core/domain"
)

// UserRepository defines persistence operations for Users.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
