package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/lfmachado/digibank/internal/core/ports/services"
	"github.com/lfmachado/digibank/internal/dto"
	"github.com/lfmachado/digibank/internal/middleware"
)

// AccountHandler handles account balance requests.
type AccountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(as portssvc.AccountSvcFacade) *AccountHandler {
	return &AccountHandler{accountService: as}
}

func registerAccountRoutes(rg *gin.RouterGroup, as portssvc.AccountSvcFacade) {
	h := NewAccountHandler(as)
	accounts := rg.Group("/accounts")
	{
		accounts.GET("/me/balance", h.GetMyBalance)
	}
}

// GetMyBalance godoc
// @Summary Get account balance
// @Description Returns the authenticated user's account balance.
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/me/balance [get]
func (h *AccountHandler) GetMyBalance(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	account, err := h.accountService.GetAccountByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(account))
}
