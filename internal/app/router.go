package app

import (
	"context"
	"firstaid_backend/docs"
	"firstaid_backend/internal/config"
	"firstaid_backend/internal/middleware"
	"firstaid_backend/internal/model"
	"firstaid_backend/pkg/monitoring"
	"firstaid_backend/pkg/security"
	"firstaid_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) setupMiddlewares(ctx context.Context, router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	if len(cfg.CORS.AllowedOrigins) > 0 {
		router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	}
	router.Use(security.Secure())
	if cfg.RateLimit.MaxRequests > 0 {
		router.Use(security.RateLimiter(ctx, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()))
	}

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware(cfg.Tracing.ServiceName))
	}

	router.Use(monitoring.MetricsMiddleware())
	router.Use(middleware.RequestLogger())
}

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg, a.SessionStore))
	{
		a.registerTrainingRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerTrainingRoutes(api *gin.RouterGroup, c *controllers) {
	api.POST("/logout", c.auth.Logout)
	api.GET("/profile", c.profile.GetProfile)

	modules := api.Group("/modules")
	{
		modules.GET("", c.training.ListModules)
		modules.GET("/:slug", c.training.GetModule)
		modules.POST("/:slug/submit", c.training.SubmitModule)
	}

	scenarios := api.Group("/scenarios")
	{
		scenarios.GET("", c.training.ListScenarios)
		scenarios.GET("/:slug", c.training.GetScenario)
		scenarios.POST("/:slug/submit", c.training.SubmitScenario)
	}

	api.GET("/achievements", c.achievement.GetAchievements)
	api.GET("/leaderboard", c.leaderboard.GetLeaderboard)
}

func (a *App) registerAdminRoutes(api *gin.RouterGroup, c *controllers) {
	admin := api.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/achievements/:id/icon", c.achievement.UploadIcon)
	}
}
