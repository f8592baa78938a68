package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"formvault/internal/api/middleware"
	"formvault/internal/auth"
	"formvault/internal/config"
	"formvault/internal/share"
	"formvault/internal/store"
)

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
// /shared 分组对外开放：分享链接的接收方无需登录即可查看模板并提交。
func RegisterRoutes(
	router *gin.Engine,
	db *gorm.DB,
	authService *auth.AuthService,
	redisClient redis.UniversalClient,
	logger *slog.Logger,
	templates *store.TemplateStore,
	records *store.RecordStore,
	shareGen *share.Generator,
	authCfg config.AuthConfig,
) {
	authHandler := NewAuthHandler(db, authService, redisClient, logger,
		authCfg.LoginRateLimitPerHour, authCfg.LoginLockThreshold, authCfg.LoginLockTTL)
	templateHandler := NewTemplateHandler(templates, records, shareGen)
	recordHandler := NewRecordHandler(templates, records)
	authMiddleware := middleware.AuthMiddleware(authService)

	v1 := router.Group("/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}

		templateGroup := v1.Group("/templates")
		templateGroup.Use(authMiddleware)
		{
			templateGroup.POST("", templateHandler.CreateTemplate)
			templateGroup.GET("", templateHandler.ListTemplates)
			templateGroup.GET("/:id", templateHandler.GetTemplate)
			templateGroup.PUT("/:id", templateHandler.UpdateTemplate)
			templateGroup.DELETE("/:id", templateHandler.DeleteTemplate)
			templateGroup.GET("/:id/share-link", templateHandler.ShareLink)
		}

		recordGroup := v1.Group("/records")
		recordGroup.Use(authMiddleware)
		{
			recordGroup.POST("/template/:id", recordHandler.SubmitTemplate)
			recordGroup.POST("/persona/:persona", recordHandler.SubmitPersona)
			recordGroup.GET("", recordHandler.ListRecords)
			recordGroup.GET("/:id", recordHandler.GetRecord)
			recordGroup.PUT("/:id", recordHandler.UpdateRecord)
			recordGroup.DELETE("/:id", recordHandler.DeleteRecord)
		}
	}

	// 分享入口：知道链接即可访问，与原始分享语义一致。
	sharedGroup := router.Group("/shared")
	{
		sharedGroup.GET("/template/:id", templateHandler.GetTemplate)
		sharedGroup.POST("/template/:id", recordHandler.SubmitTemplate)
	}
}
