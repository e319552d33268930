package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kormo-mela/kormo-services/pkg/auth"
)

// JWTAuth requires a valid access token and puts the caller identity on the
// gin context as "user_id" / "phone".
func JWTAuth(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "missing bearer token"})
			return
		}
		claims, err := tokens.ParseValidate(strings.TrimPrefix(h, "Bearer "))
		if err != nil || claims.Scope != auth.ScopeAccess {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "invalid token"})
			return
		}
		uid, err := claims.UserID()
		if err != nil || uid == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "invalid sub"})
			return
		}
		c.Set("user_id", uid)
		c.Set("phone", claims.Phone)
		c.Next()
	}
}

// UserID reads the authenticated user id set by JWTAuth.
func UserID(c *gin.Context) int64 {
	v, _ := c.Get("user_id")
	id, _ := v.(int64)
	return id
}
