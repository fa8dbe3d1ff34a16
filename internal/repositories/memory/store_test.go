package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfmachado/digibank/internal/apperrors"
	"github.com/lfmachado/digibank/internal/core/domain"
)

func mustAccount(t *testing.T, s *Store, balance string) domain.Account {
	t.Helper()
	acc := domain.Account{
		AccountID: uuid.NewString(),
		UserID:    uuid.NewString(),
		Balance:   decimal.RequireFromString(balance),
	}
	require.NoError(t, s.SaveAccount(context.Background(), acc))
	return acc
}

func balanceOf(t *testing.T, s *Store, accountID string) decimal.Decimal {
	t.Helper()
	acc, err := s.FindAccountByID(context.Background(), accountID)
	require.NoError(t, err)
	return acc.Balance
}

func TestCommitTransaction_Scenario(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := mustAccount(t, s, "5000.00")
	b := mustAccount(t, s, "3000.00")

	// Withdraw 200.00 from A.
	recorded, balances, err := s.CommitTransaction(ctx, domain.Transaction{
		Kind:            domain.Withdrawal,
		Amount:          decimal.RequireFromString("200.00"),
		SourceAccountID: a.AccountID,
	}, map[string]decimal.Decimal{a.AccountID: decimal.RequireFromString("-200.00")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), recorded.TransactionID)
	assert.True(t, balances[a.AccountID].Equal(decimal.RequireFromString("4800.00")))

	// Transfer 250.00 from A to B.
	recorded, balances, err = s.CommitTransaction(ctx, domain.Transaction{
		Kind:                 domain.Transfer,
		Amount:               decimal.RequireFromString("250.00"),
		SourceAccountID:      a.AccountID,
		DestinationAccountID: b.AccountID,
	}, map[string]decimal.Decimal{
		a.AccountID: decimal.RequireFromString("-250.00"),
		b.AccountID: decimal.RequireFromString("250.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), recorded.TransactionID)
	assert.True(t, balances[a.AccountID].Equal(decimal.RequireFromString("4550.00")))
	assert.True(t, balances[b.AccountID].Equal(decimal.RequireFromString("3250.00")))

	// Withdraw 10000.00 from A: fails, balance untouched, nothing recorded.
	_, _, err = s.CommitTransaction(ctx, domain.Transaction{
		Kind:            domain.Withdrawal,
		Amount:          decimal.RequireFromString("10000.00"),
		SourceAccountID: a.AccountID,
	}, map[string]decimal.Decimal{a.AccountID: decimal.RequireFromString("-10000.00")})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.True(t, balanceOf(t, s, a.AccountID).Equal(decimal.RequireFromString("4550.00")))

	history, err := s.ListTransactionsByAccountID(ctx, a.AccountID, 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.Transfer, history[0].Kind)
	assert.Equal(t, domain.Withdrawal, history[1].Kind)
}

func TestCommitTransaction_MissingAccountRollsBack(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := mustAccount(t, s, "1000.00")
	missing := uuid.NewString()

	// A credit leg against a missing account must not apply the debit leg.
	_, _, err := s.CommitTransaction(ctx, domain.Transaction{
		Kind:                 domain.Transfer,
		Amount:               decimal.RequireFromString("100.00"),
		SourceAccountID:      a.AccountID,
		DestinationAccountID: missing,
	}, map[string]decimal.Decimal{
		a.AccountID: decimal.RequireFromString("-100.00"),
		missing:     decimal.RequireFromString("100.00"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.True(t, balanceOf(t, s, a.AccountID).Equal(decimal.RequireFromString("1000.00")))

	history, err := s.ListTransactionsByAccountID(ctx, a.AccountID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestCommitTransaction_CancelledContext(t *testing.T) {
	s := NewStore()
	a := mustAccount(t, s, "1000.00")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.CommitTransaction(ctx, domain.Transaction{
		Kind:            domain.Deposit,
		Amount:          decimal.RequireFromString("100.00"),
		SourceAccountID: a.AccountID,
	}, map[string]decimal.Decimal{a.AccountID: decimal.RequireFromString("100.00")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, balanceOf(t, s, a.AccountID).Equal(decimal.RequireFromString("1000.00")))
}

func TestCommitTransaction_ConcurrentWithdrawals(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := mustAccount(t, s, "500.00")
	amount := decimal.RequireFromString("100.00")

	const workers = 50
	var wg sync.WaitGroup
	successes := make(chan struct{}, workers)
	failures := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := s.CommitTransaction(ctx, domain.Transaction{
				Kind:            domain.Withdrawal,
				Amount:          amount,
				SourceAccountID: a.AccountID,
			}, map[string]decimal.Decimal{a.AccountID: amount.Neg()})
			if err != nil {
				failures <- err
			} else {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)
	close(failures)

	// Exactly floor(500/100) = 5 withdrawals may succeed; no lost updates.
	assert.Len(t, successes, 5)
	for err := range failures {
		assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	}
	assert.True(t, balanceOf(t, s, a.AccountID).IsZero())

	history, err := s.ListTransactionsByAccountID(ctx, a.AccountID, 100, 0)
	require.NoError(t, err)
	assert.Len(t, history, 5)
}

func TestCommitTransaction_OppositeTransfersConserveTotal(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := mustAccount(t, s, "5000.00")
	b := mustAccount(t, s, "5000.00")
	amount := decimal.RequireFromString("1.00")

	// Transfers in both directions between the same pair: lock ordering by
	// account id must prevent deadlock, and the total must be conserved.
	const rounds = 200
	var wg sync.WaitGroup
	transfer := func(from, to string) {
		defer wg.Done()
		_, _, err := s.CommitTransaction(ctx, domain.Transaction{
			Kind:                 domain.Transfer,
			Amount:               amount,
			SourceAccountID:      from,
			DestinationAccountID: to,
		}, map[string]decimal.Decimal{from: amount.Neg(), to: amount})
		assert.NoError(t, err)
	}
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go transfer(a.AccountID, b.AccountID)
		go transfer(b.AccountID, a.AccountID)
	}
	wg.Wait()

	total := balanceOf(t, s, a.AccountID).Add(balanceOf(t, s, b.AccountID))
	assert.True(t, total.Equal(decimal.RequireFromString("10000.00")), "total changed: %s", total)
}

func TestListTransactionsByAccountID_PagingAndIdempotence(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := mustAccount(t, s, "1000.00")
	deposit := decimal.RequireFromString("1.00")

	for i := 0; i < 25; i++ {
		_, _, err := s.CommitTransaction(ctx, domain.Transaction{
			Kind:            domain.Deposit,
			Amount:          deposit,
			SourceAccountID: a.AccountID,
		}, map[string]decimal.Decimal{a.AccountID: deposit})
		require.NoError(t, err)
	}

	first, err := s.ListTransactionsByAccountID(ctx, a.AccountID, 10, 0)
	require.NoError(t, err)
	require.Len(t, first, 10)
	// Most recent first: IDs descend.
	for i := 1; i < len(first); i++ {
		assert.Greater(t, first[i-1].TransactionID, first[i].TransactionID)
	}

	// Same query, no intervening commits: identical result.
	again, err := s.ListTransactionsByAccountID(ctx, a.AccountID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	// Restart from an offset continues where the first page ended.
	second, err := s.ListTransactionsByAccountID(ctx, a.AccountID, 10, 10)
	require.NoError(t, err)
	require.Len(t, second, 10)
	assert.Equal(t, first[9].TransactionID-1, second[0].TransactionID)

	tail, err := s.ListTransactionsByAccountID(ctx, a.AccountID, 10, 20)
	require.NoError(t, err)
	assert.Len(t, tail, 5)
}

func TestSaveAccount_Duplicate(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	acc := mustAccount(t, s, "0")

	err := s.SaveAccount(ctx, acc)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}
