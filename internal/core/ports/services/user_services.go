package services

import (
	"context"

	"github.com/lfmachado/digibank/internal/core/domain"
	"github.com/lfmachado/digibank/internal/dto"
)

// UserSvcFacade exposes user management and credential verification.
type UserSvcFacade interface {
	// RegisterUser creates a user together with their (empty) account.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	// VerifyCredentials checks the e-mail/password pair and returns the user
	// on success, or apperrors.ErrUnauthorized.
	VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error)
}
