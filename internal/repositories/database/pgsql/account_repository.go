package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lfmachado/digibank/internal/apperrors"
	"github.com/lfmachado/digibank/internal/core/domain"
	portsrepo "github.com/lfmachado/digibank/internal/core/ports/repositories"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (account_id, user_id, balance, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.UserID,
		account.Balance,
		account.CreatedAt,
		account.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account for user %s already exists", apperrors.ErrDuplicate, account.UserID)
		}
		return fmt.Errorf("%w: failed to save account %s: %v", apperrors.ErrStoreUnavailable, account.AccountID, err)
	}
	return nil
}

const accountColumns = `account_id, user_id, balance, created_at, last_updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var acc domain.Account
	err := row.Scan(
		&acc.AccountID,
		&acc.UserID,
		&acc.Balance,
		&acc.CreatedAt,
		&acc.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to scan account: %v", apperrors.ErrStoreUnavailable, err)
	}
	return &acc, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return scanAccount(r.Pool.QueryRow(ctx, query, accountID))
}

// FindAccountByUserID retrieves the account owned by userID.
func (r *PgxAccountRepository) FindAccountByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1;`
	return scanAccount(r.Pool.QueryRow(ctx, query, userID))
}

// FindAccountByOwnerEmail resolves an account through its owner's e-mail.
func (r *PgxAccountRepository) FindAccountByOwnerEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `
		SELECT a.account_id, a.user_id, a.balance, a.created_at, a.last_updated_at
		FROM accounts a
		JOIN users u ON u.user_id = a.user_id
		WHERE u.email = $1;
	`
	return scanAccount(r.Pool.QueryRow(ctx, query, email))
}

// findAccountsForUpdate locks the given accounts inside tx and returns their
// current balances. Rows are locked in ascending account-id order so that two
// concurrent transfers between the same pair of accounts always acquire the
// row locks in the same order, regardless of transfer direction.
func (r *PgxAccountRepository) findAccountsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to lock accounts: %v", apperrors.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		var acc domain.Account
		if err := rows.Scan(&acc.AccountID, &acc.UserID, &acc.Balance, &acc.CreatedAt, &acc.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: failed to scan locked account row: %v", apperrors.ErrStoreUnavailable, err)
		}
		accounts[acc.AccountID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating locked account rows: %v", apperrors.ErrStoreUnavailable, err)
	}

	if len(accounts) != len(accountIDs) {
		missing := make([]string, 0, len(accountIDs))
		for _, id := range accountIDs {
			if _, found := accounts[id]; !found {
				missing = append(missing, id)
			}
		}
		return nil, fmt.Errorf("%w: could not find or lock accounts: %v", apperrors.ErrNotFound, missing)
	}

	return accounts, nil
}
