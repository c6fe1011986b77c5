package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "autohub-api/internal/transport/http/response"
)

func SimpleRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				resp.Fail(c, http.StatusInternalServerError, "internal server error")
			}
		}()
		c.Next()
	}
}
