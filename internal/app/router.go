package app

import (
	"edu_challenge_backend/docs"
	"edu_challenge_backend/internal/config"
	"edu_challenge_backend/internal/middleware"
	"edu_challenge_backend/internal/model"
	"edu_challenge_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	// 路由注解已包含 /api 前缀
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要登录的学生接口
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	a.registerStudentRoutes(authGroup, c)

	// 3. 管理员接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/scores/leaderboard", c.score.Leaderboard)
	}
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	challenges := group.Group("/challenges")
	{
		challenges.GET("", c.challenge.List)
		challenges.GET("/:id", c.challenge.Get)
		challenges.POST("/:id/submit", c.challenge.Submit)
	}

	scores := group.Group("/scores")
	{
		scores.GET("/me", c.score.Me)
		scores.GET("/me/rank", c.score.MyRank)
	}

	group.POST("/lessons/:id/complete", c.lesson.Complete)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))

	challenges := admin.Group("/challenges")
	{
		challenges.GET("", c.adminChallenge.List)
		challenges.POST("", c.adminChallenge.Create)
		challenges.POST("/puzzle-image", c.adminChallenge.UploadPuzzleImage)
		challenges.GET("/:id", c.adminChallenge.Get)
		challenges.PUT("/:id", c.adminChallenge.Update)
		challenges.DELETE("/:id", c.adminChallenge.Delete)
	}

	settings := admin.Group("/settings")
	{
		settings.GET("/points", c.setting.ListPoints)
		settings.PUT("/points/:lessonType", c.setting.SetPoints)
	}

	scores := admin.Group("/scores")
	{
		scores.GET("/users", c.score.AdminUserScores)
		scores.GET("/top", c.score.AdminTopUsers)
	}
}
