package services

import (
	"context"

	"github.com/lfmachado/digibank/internal/core/domain"
	"github.com/lfmachado/digibank/internal/dto"
)

// LedgerSvcFacade is the interface the ledger engine exposes to callers.
type LedgerSvcFacade interface {
	// Submit validates and commits one deposit, withdrawal or transfer.
	// It either fully commits (returning the recorded transaction and the
	// source account's new balance) or leaves every balance untouched.
	Submit(ctx context.Context, req dto.SubmitTransactionRequest) (*dto.SubmitTransactionResult, error)

	// History returns the account's transactions, most recent first.
	History(ctx context.Context, accountID string, limit, offset int) ([]domain.Transaction, error)
}
