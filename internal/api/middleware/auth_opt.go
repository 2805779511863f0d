package middleware

import (
	"Agora/internal/pkg/consts"
	"Agora/internal/pkg/redis"
	"Agora/internal/pkg/security"
	log "log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功且未注销时注入 UID，否则按匿名处理，UID 为 0
func AuthOptionalMiddleware(tm *security.TokenManager, blacklist *redis.TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(consts.UserIDKey, uint64(0))

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		claims, err := tm.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.Next()
			return
		}

		revoked, err := blacklist.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			// 黑名单不可用时降级为匿名
			log.WarnContext(c.Request.Context(), "check token blacklist failed", "err", err)
			c.Next()
			return
		}
		if !revoked {
			c.Set(consts.UserIDKey, claims.UserID)
			c.Set("roles", claims.Roles)
		}
		c.Next()
	}
}
