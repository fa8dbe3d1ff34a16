package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lfmachado/digibank/internal/core/domain"
)

// AccountSvcFacade exposes account lookup and creation to other services
// and to the handlers. The ledger engine consumes it as its injected
// account-resolution collaborator.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, userID string, initialBalance decimal.Decimal) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByUserID(ctx context.Context, userID string) (*domain.Account, error)
	// ResolveAccountKey resolves a destination key that may be either an
	// account ID or the owner's e-mail address.
	ResolveAccountKey(ctx context.Context, key string) (*domain.Account, error)
}
