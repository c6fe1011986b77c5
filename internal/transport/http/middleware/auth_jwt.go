package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"autohub-api/internal/core/auth"
	resp "autohub-api/internal/transport/http/response"
)

// Context keys set by AuthJWT for downstream handlers.
const (
	KeyUserID = "userId"
	KeyEmail  = "email"
	KeyRole   = "role"
)

// AuthJWT rejects missing, malformed, tampered and expired tokens alike
// with 401. requireRole additionally gates on the role claim.
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.Fail(c, http.StatusUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			resp.Fail(c, http.StatusUnauthorized, "invalid token")
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			resp.Fail(c, http.StatusForbidden, "forbidden")
			return
		}
		c.Set(KeyUserID, claims.UID)
		c.Set(KeyEmail, claims.Email)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}

// UserID reads the authenticated principal id set by AuthJWT.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(KeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
