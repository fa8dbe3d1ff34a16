package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/lfmachado/digibank/internal/core/ports/services"
	"github.com/lfmachado/digibank/internal/dto"
	"github.com/lfmachado/digibank/internal/middleware"
)

// UserHandler handles user profile requests.
type UserHandler struct {
	userService    portssvc.UserSvcFacade
	accountService portssvc.AccountSvcFacade
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us portssvc.UserSvcFacade, as portssvc.AccountSvcFacade) *UserHandler {
	return &UserHandler{userService: us, accountService: as}
}

func registerUserRoutes(rg *gin.RouterGroup, us portssvc.UserSvcFacade, as portssvc.AccountSvcFacade) {
	h := NewUserHandler(us, as)
	users := rg.Group("/users")
	{
		users.GET("/me", h.GetMe)
	}
}

// GetMe godoc
// @Summary Get current user
// @Description Returns the authenticated user's profile and account balance.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	account, err := h.accountService.GetAccountByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user, account))
}
