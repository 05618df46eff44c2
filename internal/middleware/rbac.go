package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/sodaubai-backend/internal/model"
	"github.com/stemsi/sodaubai-backend/internal/response"
)

// RequireRole lets the request through only if the session account holds
// one of roles. Must run after CheckActiveSession.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		account := GetAccount(c)
		if account == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		for _, r := range roles {
			if account.Role == r {
				c.Next()
				return
			}
		}

		code := response.ErrForbidden
		if len(roles) == 1 {
			switch roles[0] {
			case model.RoleAdmin:
				code = response.ErrAdminAccessOnly
			case model.RoleTeacher:
				code = response.ErrTeacherAccessOnly
			}
		}
		response.AbortFail(c, http.StatusForbidden, code)
	}
}
