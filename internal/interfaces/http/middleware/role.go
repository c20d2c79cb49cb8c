package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comunidad/backend/internal/interfaces/http/dto"
)

// RequireRole returns a middleware that rejects requests whose JWT role
// is not one of the given roles. It must run after JWTAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetJWTClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized,
					"Authentication required", c.GetString(RequestIDKey)))
			return
		}
		if !claims.HasRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden,
					"Insufficient role for this operation", c.GetString(RequestIDKey)))
			return
		}
		c.Next()
	}
}
