package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lfmachado/digibank/internal/apperrors"
	"github.com/lfmachado/digibank/internal/core/domain"
	portsrepo "github.com/lfmachado/digibank/internal/core/ports/repositories"
	portssvc "github.com/lfmachado/digibank/internal/core/ports/services"
	"github.com/lfmachado/digibank/internal/dto"
	"github.com/lfmachado/digibank/internal/middleware"
	"github.com/lfmachado/digibank/internal/utils"
)

// userService provides user registration and credential verification.
type userService struct {
	userRepo   portsrepo.UserRepository
	accountSvc portssvc.AccountSvcFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepository, accountSvc portssvc.AccountSvcFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo:   userRepo,
		accountSvc: accountSvc,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// RegisterUser creates a new user and their account.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", apperrors.ErrInternal)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save user", slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	if _, err := s.accountSvc.CreateAccount(ctx, user.UserID, decimal.Zero); err != nil {
		logger.Error("Failed to create account for new user", slog.String("user_id", user.UserID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	return user, nil
}

// VerifyCredentials checks the e-mail/password pair. Lookup failures and
// password mismatches both map to ErrUnauthorized so callers cannot probe
// which e-mails are registered.
func (s *userService) VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}
