package middleware

import (
	"github.com/KOVY310/chaos-canvas/internal/pkg/response"
	"github.com/KOVY310/chaos-canvas/internal/service"

	"github.com/gin-gonic/gin"
)

// IdentityMiddleware 从 X-User-ID 头提取访客身份。
// 匿名档案建档后由客户端持有自己的 ID，不做签名校验。
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			response.Error(c, service.ErrIdentityRequired)
			c.Abort()
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}

// IdentityOptionalMiddleware 与 IdentityMiddleware 相同但允许匿名通过
func IdentityOptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}
