package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/brokerz/brokerz-auth/internal/http/middleware"
	"github.com/brokerz/brokerz-auth/internal/service"
)

// AccountHandler exposes the signup, login, and current-user endpoints.
type AccountHandler struct {
	Accounts *service.AccountService
}

// NewAccountHandler creates the handler set.
func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{Accounts: accounts}
}

// Signup registers a new portal account.
func (h *AccountHandler) Signup(c *gin.Context) {
	var in service.SignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	resp, err := h.Accounts.Signup(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login authenticates an existing account.
func (h *AccountHandler) Login(c *gin.Context) {
	var in service.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	resp, err := h.Accounts.Login(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me returns the profile behind the request's verified token.
func (h *AccountHandler) Me(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		respondError(c, service.ErrNotSignedIn)
		return
	}

	profile, err := h.Accounts.CurrentUser(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// respondError is the single error-shaping path, so identical failures
// always produce identical response bodies.
func respondError(c *gin.Context, err error) {
	if apiErr, ok := err.(*service.APIError); ok {
		body := gin.H{"error": apiErr.Message}
		if apiErr.Code != "" {
			body["code"] = apiErr.Code
		}
		c.JSON(apiErr.Status, body)
		return
	}
	zap.L().Error("request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected server error."})
}
