package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/imanmaris99/amimum-api/apperrors"
	"github.com/imanmaris99/amimum-api/web"
)

// RequireAPIKey guards admin-only endpoints with a shared X-API-KEY header.
func RequireAPIKey(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" || c.GetHeader("X-API-KEY") != apiKey {
			web.Abort(c, apperrors.New(apperrors.KindUnauthorized, "Invalid or missing API key"))
			return
		}
		c.Next()
	}
}
