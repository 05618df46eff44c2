package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/sodaubai-backend/internal/middleware"
	"github.com/stemsi/sodaubai-backend/internal/model"
	"github.com/stemsi/sodaubai-backend/internal/response"
	"github.com/stemsi/sodaubai-backend/internal/service"
	"github.com/stemsi/sodaubai-backend/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService    *service.AuthService
	accountService *service.AccountService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, accountService *service.AccountService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		accountService: accountService,
	}
}

// Login godoc
// POST /api/v1/auth/login
// Teachers log in by username alone; admins also need their password. Any
// previous session is replaced.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// Logout godoc
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context()); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// Me godoc
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	account := middleware.GetAccount(c)
	if account == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrNoActiveSession)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"account": account})
}

// ChangePassword godoc
// PUT /api/v1/auth/password
// Changes the logged-in admin's own password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	account := middleware.GetAccount(c)
	if account == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrNoActiveSession)
		return
	}

	var req model.ChangePasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.accountService.ChangeCredential(c.Request.Context(), account.ID, req.NewPassword); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "password changed"})
}
