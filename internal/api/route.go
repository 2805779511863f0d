package api

import (
	"Agora/internal/api/config"
	"Agora/internal/api/middleware"
	"Agora/internal/pkg/logger"
	"Agora/internal/pkg/metrics"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, auth *AuthDeps, logCfg config.LogstashConfig) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS & Metrics
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware("/metrics", "/api/ping"))
	r.Use(middleware.CORSMiddleware())
	r.Use(metrics.Middleware())
	logger.SetupGin(r, logCfg)

	r.GET("/metrics", metrics.Handler())

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		searchGroup := apiGroup.Group("/search")
		{
			searchGroup.GET("/hot", group.SearchLogHandler.GetHotQueries)

			authOptGroup := searchGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware(auth.Tokens, auth.Blacklist))
			{
				authOptGroup.GET("/posts", group.SearchHandler.SearchPosts)
			}

			authGroup := searchGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware(auth.Tokens, auth.Blacklist))
			{
				authGroup.GET("/history", group.SearchLogHandler.GetHistory)
			}

			// 需要登录 & 拥有 admin 角色
			adminGroup := authGroup.Group("")
			adminGroup.Use(middleware.CheckRoles("ADMIN"))
			{
				adminGroup.DELETE("/hot", group.SearchLogHandler.RemoveHotQuery)
			}
		}
	}

	return r
}
