package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lfmachado/digibank/internal/apperrors"
	"github.com/lfmachado/digibank/internal/core/services"
)

// ErrorResponse is the generic error body returned by all handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors to HTTP status codes. Internal details are
// never leaked: unknown errors collapse to a generic 500 body.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resource not found"})
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "Insufficient funds"})
	case errors.Is(err, apperrors.ErrSameAccountTransfer):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "Transfer destination must differ from source"})
	case errors.Is(err, apperrors.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Amount must be a positive value with at most two decimal places"})
	case errors.Is(err, services.ErrUnknownKind):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown transaction kind"})
	case errors.Is(err, services.ErrDestinationRequired):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Transfer requires a destination key"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Resource already exists"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Service temporarily unavailable, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
