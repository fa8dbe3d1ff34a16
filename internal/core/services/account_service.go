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
	"github.com/lfmachado/digibank/internal/middleware"
)

// accountService provides account creation and lookup.
type accountService struct {
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates the single account owned by userID.
func (s *accountService) CreateAccount(ctx context.Context, userID string, initialBalance decimal.Decimal) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID: uuid.NewString(),
		UserID:    userID,
		Balance:   initialBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("user_id", userID))
	return &account, nil
}

// GetAccountByID retrieves an account by its ID.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountByUserID retrieves the account owned by userID.
func (s *accountService) GetAccountByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account for user %s: %w", userID, err)
	}
	return account, nil
}

// ResolveAccountKey resolves a destination key as an account ID first, then
// as the owner's e-mail address.
func (s *accountService) ResolveAccountKey(ctx context.Context, key string) (*domain.Account, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%w: empty account key", apperrors.ErrValidation)
	}

	if _, err := uuid.Parse(key); err == nil {
		account, err := s.accountRepo.FindAccountByID(ctx, key)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to resolve account key: %w", err)
		}
		// Fall through: an unknown UUID may still be an e-mail-shaped key.
	}

	account, err := s.accountRepo.FindAccountByOwnerEmail(ctx, strings.ToLower(key))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account key %q: %w", key, err)
	}
	return account, nil
}
