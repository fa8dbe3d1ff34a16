// Package memory provides an in-memory implementation of the repository
// ports. It backs local runs without a database and the concurrency tests
// of the ledger engine.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lfmachado/digibank/internal/apperrors"
	"github.com/lfmachado/digibank/internal/core/domain"
	portsrepo "github.com/lfmachado/digibank/internal/core/ports/repositories"
	"github.com/lfmachado/digibank/internal/core/services"
)

// accountState pairs an account with its own mutex. The mutex serializes
// every balance read and write on that account.
type accountState struct {
	mu      sync.Mutex
	account domain.Account
}

// Store keeps users, accounts and the ledger in memory.
//
// Locking discipline: s.mu only guards the shape of the maps (insertions and
// lookups), never balances. Balance access always goes through the per-account
// mutex, and when a commit touches several accounts their mutexes are acquired
// in ascending account-id order, which rules out deadlock between concurrent
// transfers in opposite directions.
type Store struct {
	mu            sync.RWMutex
	accounts      map[string]*accountState
	accountByUser map[string]string
	users         map[string]domain.User
	userByEmail   map[string]string

	ledgerMu  sync.RWMutex
	ledger    []domain.Transaction
	nextTxnID atomic.Int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		accounts:      make(map[string]*accountState),
		accountByUser: make(map[string]string),
		users:         make(map[string]domain.User),
		userByEmail:   make(map[string]string),
	}
}

// Repositories exposes the store through the repository ports.
func (s *Store) Repositories() services.Repositories {
	return services.Repositories{User: s, Account: s, Ledger: s}
}

var (
	_ portsrepo.UserRepository    = (*Store)(nil)
	_ portsrepo.AccountRepository = (*Store)(nil)
	_ portsrepo.LedgerRepository  = (*Store)(nil)
)

// --- UserRepository ---

func (s *Store) SaveUser(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.userByEmail[user.Email]; exists {
		return fmt.Errorf("%w: user with email %s already exists", apperrors.ErrDuplicate, user.Email)
	}
	if _, exists := s.users[user.UserID]; exists {
		return fmt.Errorf("%w: user %s already exists", apperrors.ErrDuplicate, user.UserID)
	}
	s.users[user.UserID] = user
	s.userByEmail[user.Email] = user.UserID
	return nil
}

func (s *Store) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := user
	return &cp, nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.userByEmail[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := s.users[userID]
	return &cp, nil
}

// --- AccountRepository ---

func (s *Store) SaveAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account %s already exists", apperrors.ErrDuplicate, account.AccountID)
	}
	if _, exists := s.accountByUser[account.UserID]; exists {
		return fmt.Errorf("%w: account for user %s already exists", apperrors.ErrDuplicate, account.UserID)
	}
	s.accounts[account.AccountID] = &accountState{account: account}
	s.accountByUser[account.UserID] = account.AccountID
	return nil
}

// snapshot returns a copy of the account taken under its own mutex, so a
// reader never observes a balance mid-commit.
func (st *accountState) snapshot() domain.Account {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.account
}

func (s *Store) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	st, ok := s.accounts[accountID]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := st.snapshot()
	return &cp, nil
}

func (s *Store) FindAccountByUserID(_ context.Context, userID string) (*domain.Account, error) {
	s.mu.RLock()
	accountID, ok := s.accountByUser[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return s.FindAccountByID(context.Background(), accountID)
}

func (s *Store) FindAccountByOwnerEmail(ctx context.Context, email string) (*domain.Account, error) {
	s.mu.RLock()
	userID, ok := s.userByEmail[email]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return s.FindAccountByUserID(ctx, userID)
}

// --- LedgerRepository ---

// CommitTransaction implements the unit-of-work contract: it locks every
// account in deltas in ascending account-id order, verifies no balance goes
// negative, then applies all deltas and appends the record while still
// holding the locks. Any failure leaves every balance untouched.
func (s *Store) CommitTransaction(ctx context.Context, txn domain.Transaction, deltas map[string]decimal.Decimal) (*domain.Transaction, map[string]decimal.Decimal, error) {
	if len(deltas) == 0 {
		return nil, nil, fmt.Errorf("%w: transaction has no balance deltas", apperrors.ErrValidation)
	}

	accountIDs := make([]string, 0, len(deltas))
	for id := range deltas {
		accountIDs = append(accountIDs, id)
	}
	sort.Strings(accountIDs)

	s.mu.RLock()
	states := make([]*accountState, 0, len(accountIDs))
	for _, id := range accountIDs {
		st, ok := s.accounts[id]
		if !ok {
			s.mu.RUnlock()
			return nil, nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		states = append(states, st)
	}
	s.mu.RUnlock()

	// Cancellation is honored only up to this point; once the locks are held
	// the commit runs to completion.
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	for _, st := range states {
		st.mu.Lock()
	}
	defer func() {
		for _, st := range states {
			st.mu.Unlock()
		}
	}()

	newBalances := make(map[string]decimal.Decimal, len(deltas))
	for i, id := range accountIDs {
		newBalance := states[i].account.Balance.Add(deltas[id])
		if newBalance.IsNegative() {
			return nil, nil, fmt.Errorf("%w: account %s balance %s, delta %s",
				apperrors.ErrInsufficientFunds, id, states[i].account.Balance.String(), deltas[id].String())
		}
		newBalances[id] = newBalance
	}

	now := time.Now().UTC()
	for i, id := range accountIDs {
		states[i].account.Balance = newBalances[id]
		states[i].account.LastUpdatedAt = now
	}

	recorded := txn
	recorded.TransactionID = s.nextTxnID.Add(1)
	recorded.CreatedAt = now

	s.ledgerMu.Lock()
	s.ledger = append(s.ledger, recorded)
	s.ledgerMu.Unlock()

	return &recorded, newBalances, nil
}

// ListTransactionsByAccountID walks the append-only ledger backwards, so the
// result is ordered most recent first.
func (s *Store) ListTransactionsByAccountID(_ context.Context, accountID string, limit, offset int) ([]domain.Transaction, error) {
	s.ledgerMu.RLock()
	defer s.ledgerMu.RUnlock()

	txns := make([]domain.Transaction, 0, limit)
	skipped := 0
	for i := len(s.ledger) - 1; i >= 0 && len(txns) < limit; i-- {
		txn := s.ledger[i]
		if txn.SourceAccountID != accountID && txn.DestinationAccountID != accountID {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		txns = append(txns, txn)
	}
	return txns, nil
}
