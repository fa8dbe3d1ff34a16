package dto

import (
	"github.com/shopspring/decimal"

	"github.com/lfmachado/digibank/internal/core/domain"
)

// RegisterUserRequest defines the payload for creating a user.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=6"`
}

// UserResponse defines the user data returned to clients, including the
// current balance of the user's account.
type UserResponse struct {
	UserID  string          `json:"userID"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Balance decimal.Decimal `json:"balance"`
}

// ToUserResponse converts a domain.User plus their account into a UserResponse.
func ToUserResponse(user *domain.User, account *domain.Account) UserResponse {
	resp := UserResponse{
		UserID: user.UserID,
		Name:   user.Name,
		Email:  user.Email,
	}
	if account != nil {
		resp.Balance = account.Balance
	}
	return resp
}
