package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/imanmaris99/amimum-api/apperrors"
	"github.com/imanmaris99/amimum-api/web"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// RequireAuth validates the bearer token and stores the caller's id and role
// in the request context.
func RequireAuth(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			web.Abort(c, apperrors.New(apperrors.KindUnauthorized, "Authorization header is missing"))
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid token signing method")
			}
			return []byte(secretKey), nil
		})
		if err != nil || !token.Valid {
			web.Abort(c, apperrors.New(apperrors.KindUnauthorized, "Invalid or expired token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			web.Abort(c, apperrors.New(apperrors.KindUnauthorized, "Invalid token claims"))
			return
		}

		id, _ := claims["id"].(string)
		if id == "" {
			web.Abort(c, apperrors.New(apperrors.KindUnauthorized, "Token missing subject id"))
			return
		}
		role, _ := claims["role"].(string)

		c.Set(ContextUserID, id)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// UserID extracts the authenticated caller's id set by RequireAuth.
func UserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
