package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lfmachado/digibank/internal/core/services"
)

// NewRepositories builds the PostgreSQL-backed repository set.
func NewRepositories(pool *pgxpool.Pool) services.Repositories {
	accountRepo := newPgxAccountRepository(pool)
	return services.Repositories{
		User:    newPgxUserRepository(pool),
		Account: accountRepo,
		Ledger:  newPgxLedgerRepository(pool, accountRepo),
	}
}
