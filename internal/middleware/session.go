package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/sodaubai-backend/internal/model"
	"github.com/stemsi/sodaubai-backend/internal/response"
	"github.com/stemsi/sodaubai-backend/internal/service"
)

// ContextKeyAccount is the Gin context key for the session account.
const ContextKeyAccount = "account"

// CheckActiveSession admits a request only when its token is the one issued
// to the current session. A later login elsewhere invalidates older tokens.
func CheckActiveSession(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		account, err := authService.ValidateSession(c.Request.Context(), claims)
		switch {
		case errors.Is(err, service.ErrNoActiveSession):
			response.AbortFail(c, http.StatusUnauthorized, response.ErrNoActiveSession)
			return
		case errors.Is(err, service.ErrSessionInvalidated):
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
			return
		case err != nil:
			_ = c.Error(err)
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		c.Set(ContextKeyAccount, account)
		c.Next()
	}
}

// GetAccount returns the account admitted by CheckActiveSession.
func GetAccount(c *gin.Context) *model.Account {
	val, exists := c.Get(ContextKeyAccount)
	if !exists {
		return nil
	}
	account, ok := val.(*model.Account)
	if !ok {
		return nil
	}
	return account
}
