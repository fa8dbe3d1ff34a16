package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lfmachado/digibank/internal/core/domain"
)

// LedgerRepository is the unit-of-work boundary of the ledger engine.
//
// CommitTransaction applies the given balance deltas (negative for debits)
// and appends the transaction record as a single all-or-nothing operation:
//   - every account in deltas is locked in ascending account-id order;
//   - if any account is missing, apperrors.ErrNotFound is returned;
//   - if any resulting balance would be negative, apperrors.ErrInsufficientFunds
//     is returned;
//   - on any failure no balance change and no record is observable.
//
// On success it returns the recorded transaction (with store-assigned ID and
// commit timestamp) and the post-commit balance of every touched account.
type LedgerRepository interface {
	CommitTransaction(ctx context.Context, txn domain.Transaction, deltas map[string]decimal.Decimal) (*domain.Transaction, map[string]decimal.Decimal, error)

	// ListTransactionsByAccountID returns transactions that debit or credit
	// the account, most recent first. Paging via limit/offset is stable for
	// an unchanged ledger, so a reader can restart from any offset.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit, offset int) ([]domain.Transaction, error)
}
