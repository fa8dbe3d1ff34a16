package dto

import (
	"github.com/shopspring/decimal"

	"github.com/lfmachado/digibank/internal/core/domain"
)

// BalanceResponse returns an account's current balance.
type BalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}

// ToBalanceResponse converts a domain.Account to a BalanceResponse.
func ToBalanceResponse(acc *domain.Account) BalanceResponse {
	return BalanceResponse{
		AccountID: acc.AccountID,
		Balance:   acc.Balance,
	}
}
