package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/lfmachado/digibank/internal/apperrors"
	"github.com/lfmachado/digibank/internal/core/domain"
	portsrepo "github.com/lfmachado/digibank/internal/core/ports/repositories"
	portssvc "github.com/lfmachado/digibank/internal/core/ports/services"
	"github.com/lfmachado/digibank/internal/dto"
	"github.com/lfmachado/digibank/internal/middleware"
	"github.com/lfmachado/digibank/internal/platform/metrics"
	"github.com/lfmachado/digibank/internal/utils/pagination"
)

var (
	ErrUnknownKind         = errors.New("unknown transaction kind")
	ErrDestinationRequired = errors.New("transfer requires a destination key")
)

// ledgerService is the transaction processor: it validates a request,
// resolves the accounts involved, computes the balance deltas, and hands
// them to the ledger repository for an all-or-nothing commit.
type ledgerService struct {
	accountSvc portssvc.AccountSvcFacade
	ledgerRepo portsrepo.LedgerRepository
	metrics    *metrics.LedgerMetrics
}

// NewLedgerService creates a new LedgerService. metrics may be nil.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository, accountSvc portssvc.AccountSvcFacade, m *metrics.LedgerMetrics) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountSvc: accountSvc,
		ledgerRepo: ledgerRepo,
		metrics:    m,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// validateAmount enforces the fixed-point contract: strictly positive, at
// most two decimal places.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() || amount.Exponent() < -2 {
		return fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, amount.String())
	}
	return nil
}

// Submit implements portssvc.LedgerSvcFacade.
//
// Validation happens entirely before any store mutation; the commit itself
// (locking, authoritative balance checks, record append) is delegated to the
// repository so that no partial state is ever observable.
func (s *ledgerService) Submit(ctx context.Context, req dto.SubmitTransactionRequest) (*dto.SubmitTransactionResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	result, err := s.submit(ctx, logger, req)
	if err != nil {
		s.metrics.ObserveRejection(string(req.Kind), rejectionReason(err))
		return nil, err
	}
	s.metrics.ObserveCommit(string(req.Kind))
	return result, nil
}

func (s *ledgerService) submit(ctx context.Context, logger *slog.Logger, req dto.SubmitTransactionRequest) (*dto.SubmitTransactionResult, error) {
	// --- Validate ---
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}

	source, err := s.accountSvc.GetAccountByID(ctx, req.SourceAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source account %s: %w", req.SourceAccountID, err)
	}

	txn := domain.Transaction{
		Kind:            req.Kind,
		Amount:          req.Amount,
		SourceAccountID: source.AccountID,
		Description:     req.Description,
	}

	deltas := make(map[string]decimal.Decimal, 2)
	switch req.Kind {
	case domain.Deposit:
		deltas[source.AccountID] = req.Amount
	case domain.Withdrawal:
		deltas[source.AccountID] = req.Amount.Neg()
	case domain.Transfer:
		if req.DestinationKey == "" {
			return nil, ErrDestinationRequired
		}
		destination, err := s.accountSvc.ResolveAccountKey(ctx, req.DestinationKey)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve destination %q: %w", req.DestinationKey, err)
		}
		if destination.AccountID == source.AccountID {
			return nil, apperrors.ErrSameAccountTransfer
		}
		txn.DestinationAccountID = destination.AccountID
		deltas[source.AccountID] = req.Amount.Neg()
		deltas[destination.AccountID] = req.Amount
	}

	// --- Lock, Apply, Record, Commit ---
	recorded, balances, err := s.ledgerRepo.CommitTransaction(ctx, txn, deltas)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) {
			logger.Error("Failed to commit transaction",
				slog.String("kind", string(req.Kind)),
				slog.String("source_account_id", source.AccountID),
				slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Transaction committed",
		slog.Int64("transaction_id", recorded.TransactionID),
		slog.String("kind", string(recorded.Kind)),
		slog.String("amount", recorded.Amount.String()))

	return &dto.SubmitTransactionResult{
		Transaction: *recorded,
		NewBalance:  balances[source.AccountID],
	}, nil
}

// History implements portssvc.LedgerSvcFacade.
func (s *ledgerService) History(ctx context.Context, accountID string, limit, offset int) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit, offset = pagination.Normalize(limit, offset)

	txns, err := s.ledgerRepo.ListTransactionsByAccountID(ctx, accountID, limit, offset)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve transactions for account %s: %w", accountID, err)
	}
	return txns, nil
}

// rejectionReason maps an error to a stable metrics label.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, apperrors.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, apperrors.ErrSameAccountTransfer):
		return "same_account"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "other"
	}
}
