package user

import (
	"net/http"
	"strings"

	"github.com/SlpAus/fmk-game-backend/pkg/response"
	"github.com/SlpAus/fmk-game-backend/pkg/token"
	"github.com/gin-gonic/gin"
)

const (
	// IdentityKey 是存放在Gin上下文中的当前用户信息的键。
	IdentityKey = "currentUser"
)

// Identity 是从令牌中恢复出的当前用户身份。
type Identity struct {
	ID       string
	Email    string
	Username string
}

// bearerToken 从Authorization头中提取Bearer令牌。
func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimPrefix(auth, prefix)
}

// RequireAuth 要求请求携带合法的登录令牌，否则返回401。
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			response.Fail(c, http.StatusUnauthorized, "Authorization token required")
			c.Abort()
			return
		}

		claims, err := token.ParseToken(raw)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(IdentityKey, Identity{
			ID:       claims.Subject,
			Email:    claims.Email,
			Username: claims.Username,
		})
		c.Next()
	}
}

// OptionalAuth 尝试解析登录令牌，但允许匿名请求通过。
// 携带了非法令牌的请求同样按匿名处理。
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := bearerToken(c); raw != "" {
			if claims, err := token.ParseToken(raw); err == nil {
				c.Set(IdentityKey, Identity{
					ID:       claims.Subject,
					Email:    claims.Email,
					Username: claims.Username,
				})
			}
		}
		c.Next()
	}
}

// CurrentIdentity 从Gin上下文中取出当前用户身份。
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}
