package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind identifies the type of money movement.
type TransactionKind string

const (
	Deposit    TransactionKind = "DEPOSIT"
	Withdrawal TransactionKind = "WITHDRAWAL"
	Transfer   TransactionKind = "TRANSFER"
)

// Valid reports whether k is one of the known transaction kinds.
func (k TransactionKind) Valid() bool {
	switch k {
	case Deposit, Withdrawal, Transfer:
		return true
	}
	return false
}

// Transaction is a single committed movement of funds. The ledger is
// append-only: transactions are created exactly once, at commit, and never
// updated or deleted.
//
// TransactionID is assigned monotonically by the store at commit time.
// DestinationAccountID is set only for transfers.
type Transaction struct {
	TransactionID        int64           `json:"transactionID"`
	Kind                 TransactionKind `json:"kind"`
	Amount               decimal.Decimal `json:"amount"` // Always positive
	SourceAccountID      string          `json:"sourceAccountID"`
	DestinationAccountID string          `json:"destinationAccountID,omitempty"`
	Description          string          `json:"description"`
	CreatedAt            time.Time       `json:"createdAt"` // Commit timestamp, orders history
}
