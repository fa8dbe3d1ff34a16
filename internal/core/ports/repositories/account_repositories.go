package repositories

import (
	"context"

	"github.com/lfmachado/digibank/internal/core/domain"
)

// AccountRepository defines the persistence operations for Accounts.
//
// Balances are never written through this interface; all balance mutation
// goes through LedgerRepository.CommitTransaction so that it is impossible
// to change a balance without recording a transaction.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByUserID(ctx context.Context, userID string) (*domain.Account, error)
	// FindAccountByOwnerEmail resolves the account of the user registered
	// with the given e-mail address.
	FindAccountByOwnerEmail(ctx context.Context, email string) (*domain.Account, error)
}
