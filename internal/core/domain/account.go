package domain

import (
	"github.com/shopspring/decimal"
)

// Account holds a user's balance. Each user owns exactly one account.
// Balance is only ever mutated by a committed ledger transaction and is
// never negative after a commit.
type Account struct {
	AccountID string          `json:"accountID"` // Primary Key (UUID)
	UserID    string          `json:"userID"`    // FK -> users.user_id, unique
	Balance   decimal.Decimal `json:"balance"`
	AuditFields
}
