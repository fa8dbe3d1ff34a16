package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lfmachado/digibank/internal/core/domain"
)

// SubmitTransactionRequest carries a deposit, withdrawal or transfer request
// into the ledger engine. SourceAccountID is filled by the caller (handlers
// derive it from the authenticated user), never by the client.
type SubmitTransactionRequest struct {
	Kind            domain.TransactionKind `json:"kind" binding:"required"`
	SourceAccountID string                 `json:"-"`
	Amount          decimal.Decimal        `json:"amount" binding:"required,positivedecimal"`
	Description     string                 `json:"description"`
	// DestinationKey identifies the transfer destination by account ID or
	// by the owner's e-mail. Required for transfers, ignored otherwise.
	DestinationKey string `json:"destinationKey"`
}

// SubmitTransactionResult is returned on a successful commit.
type SubmitTransactionResult struct {
	Transaction domain.Transaction
	// NewBalance is the source account's balance after the commit.
	NewBalance decimal.Decimal
}

// TransactionResponse defines the data returned for one ledger transaction.
type TransactionResponse struct {
	TransactionID        int64           `json:"transactionID"`
	Kind                 string          `json:"kind"`
	Amount               decimal.Decimal `json:"amount"`
	SourceAccountID      string          `json:"sourceAccountID"`
	DestinationAccountID string          `json:"destinationAccountID,omitempty"`
	Description          string          `json:"description"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// SubmitTransactionResponse is the HTTP body for a committed transaction.
type SubmitTransactionResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	NewBalance  decimal.Decimal     `json:"newBalance"`
}

// ListTransactionsParams defines query parameters for history queries.
type ListTransactionsParams struct {
	Limit  int `form:"limit,default=10"`
	Offset int `form:"offset,default=0"`
}

// ListTransactionsResponse wraps a page of history.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:        txn.TransactionID,
		Kind:                 string(txn.Kind),
		Amount:               txn.Amount,
		SourceAccountID:      txn.SourceAccountID,
		DestinationAccountID: txn.DestinationAccountID,
		Description:          txn.Description,
		CreatedAt:            txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}
