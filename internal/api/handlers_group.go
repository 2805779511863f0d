package api

import (
	"Agora/internal/api/handler"
	"Agora/internal/pkg/redis"
	"Agora/internal/pkg/security"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	SearchHandler    *handler.SearchHandler
	SearchLogHandler *handler.SearchLogHandler
}

// AuthDeps 鉴权中间件依赖
type AuthDeps struct {
	Tokens    *security.TokenManager
	Blacklist *redis.TokenBlacklist
}
