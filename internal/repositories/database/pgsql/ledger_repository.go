package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/lfmachado/digibank/internal/apperrors"
	"github.com/lfmachado/digibank/internal/core/domain"
	portsrepo "github.com/lfmachado/digibank/internal/core/ports/repositories"
)

type PgxLedgerRepository struct {
	BaseRepository
	accountRepo *PgxAccountRepository
}

// newPgxLedgerRepository creates a new repository for the transaction ledger.
func newPgxLedgerRepository(pool *pgxpool.Pool, accountRepo *PgxAccountRepository) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

// CommitTransaction applies balance deltas and appends the transaction record
// within a single database transaction. See portsrepo.LedgerRepository for
// the contract.
func (r *PgxLedgerRepository) CommitTransaction(ctx context.Context, txn domain.Transaction, deltas map[string]decimal.Decimal) (*domain.Transaction, map[string]decimal.Decimal, error) {
	if len(deltas) == 0 {
		return nil, nil, fmt.Errorf("%w: transaction has no balance deltas", apperrors.ErrValidation)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	// Ignored after a successful commit.
	defer r.Rollback(ctx, tx)

	// Lock the accounts in ascending account-id order.
	accountIDs := make([]string, 0, len(deltas))
	for id := range deltas {
		accountIDs = append(accountIDs, id)
	}
	sort.Strings(accountIDs)

	locked, err := r.accountRepo.findAccountsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, nil, err
	}

	// Authoritative balance check against the locked rows.
	newBalances := make(map[string]decimal.Decimal, len(deltas))
	for _, id := range accountIDs {
		newBalance := locked[id].Balance.Add(deltas[id])
		if newBalance.IsNegative() {
			return nil, nil, fmt.Errorf("%w: account %s balance %s, delta %s",
				apperrors.ErrInsufficientFunds, id, locked[id].Balance.String(), deltas[id].String())
		}
		newBalances[id] = newBalance
	}

	now := time.Now().UTC()

	batch := &pgx.Batch{}
	updateQuery := `
		UPDATE accounts
		SET balance = $2, last_updated_at = $3
		WHERE account_id = $1;
	`
	for _, id := range accountIDs {
		batch.Queue(updateQuery, id, newBalances[id], now)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil && batchErr == nil {
			batchErr = fmt.Errorf("%w: failed to update balance for account %s: %v", apperrors.ErrStoreUnavailable, accountIDs[i], err)
		} else if err == nil && ct.RowsAffected() == 0 && batchErr == nil {
			// Cannot happen for a locked row; guard anyway.
			batchErr = fmt.Errorf("%w: account %s disappeared during balance update", apperrors.ErrStoreUnavailable, accountIDs[i])
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("%w: failed to close balance update batch: %v", apperrors.ErrStoreUnavailable, err)
	}
	if batchErr != nil {
		return nil, nil, batchErr
	}

	// Append the immutable ledger record. The store assigns the monotonic ID.
	var destination sql.NullString
	if txn.DestinationAccountID != "" {
		destination = sql.NullString{String: txn.DestinationAccountID, Valid: true}
	}
	insertQuery := `
		INSERT INTO transactions (kind, amount, source_account_id, destination_account_id, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING transaction_id;
	`
	recorded := txn
	recorded.CreatedAt = now
	err = tx.QueryRow(ctx, insertQuery,
		string(txn.Kind),
		txn.Amount,
		txn.SourceAccountID,
		destination,
		txn.Description,
		now,
	).Scan(&recorded.TransactionID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to insert transaction record: %v", apperrors.ErrStoreUnavailable, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	return &recorded, newBalances, nil
}

// ListTransactionsByAccountID returns transactions touching the account,
// most recent first, with stable limit/offset paging.
func (r *PgxLedgerRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit, offset int) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, kind, amount, source_account_id, destination_account_id, description, created_at
		FROM transactions
		WHERE source_account_id = $1 OR destination_account_id = $1
		ORDER BY created_at DESC, transaction_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query transactions: %v", apperrors.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0, limit)
	for rows.Next() {
		var txn domain.Transaction
		var destination sql.NullString
		if err := rows.Scan(
			&txn.TransactionID,
			&txn.Kind,
			&txn.Amount,
			&txn.SourceAccountID,
			&destination,
			&txn.Description,
			&txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: failed to scan transaction row: %v", apperrors.ErrStoreUnavailable, err)
		}
		if destination.Valid {
			txn.DestinationAccountID = destination.String
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating transaction rows: %v", apperrors.ErrStoreUnavailable, err)
	}

	return txns, nil
}
