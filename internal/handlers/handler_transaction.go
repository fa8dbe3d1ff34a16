package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/lfmachado/digibank/internal/core/ports/services"
	"github.com/lfmachado/digibank/internal/dto"
	"github.com/lfmachado/digibank/internal/middleware"
)

// TransactionHandler exposes the ledger engine over HTTP.
type TransactionHandler struct {
	ledgerService  portssvc.LedgerSvcFacade
	accountService portssvc.AccountSvcFacade
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ls portssvc.LedgerSvcFacade, as portssvc.AccountSvcFacade) *TransactionHandler {
	return &TransactionHandler{ledgerService: ls, accountService: as}
}

func registerTransactionRoutes(rg *gin.RouterGroup, ls portssvc.LedgerSvcFacade, as portssvc.AccountSvcFacade) {
	h := NewTransactionHandler(ls, as)
	txns := rg.Group("/transactions")
	{
		txns.POST("", h.Submit)
		txns.GET("", h.List)
	}
}

// Submit godoc
// @Summary Submit a transaction
// @Description Executes a deposit, withdrawal or transfer against the authenticated user's account.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.SubmitTransactionRequest true "Transaction"
// @Success 201 {object} dto.SubmitTransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *TransactionHandler) Submit(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.SubmitTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	// The source account is always the caller's own account.
	account, err := h.accountService.GetAccountByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	req.SourceAccountID = account.AccountID

	result, err := h.ledgerService.Submit(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SubmitTransactionResponse{
		Transaction: dto.ToTransactionResponse(&result.Transaction),
		NewBalance:  result.NewBalance,
	})
}

// List godoc
// @Summary List transactions
// @Description Returns the authenticated user's transaction history, most recent first.
// @Tags transactions
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	account, err := h.accountService.GetAccountByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	txns, err := h.ledgerService.History(c.Request.Context(), account.AccountID, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		Limit:        params.Limit,
		Offset:       params.Offset,
	})
}
