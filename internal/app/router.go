package app

import (
	"github.com/Charnelx/quiz-demo/internal/config"
	"github.com/Charnelx/quiz-demo/internal/middleware"
	"github.com/Charnelx/quiz-demo/internal/model"
	"github.com/Charnelx/quiz-demo/pkg/monitoring"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes, no identity needed.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// Quiz-taking routes: identity is optional, each quiz decides whether
	// anonymous callers may attempt it.
	taking := router.Group("/api")
	taking.Use(middleware.TryAuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		taking.GET("/quizzes", c.quiz.ListQuizzes)
		taking.GET("/categories", c.category.ListCategories)
		taking.GET("/categories/:slug", c.category.GetCategory)
		taking.GET("/question/:id", c.quiz.GetQuestion)
		taking.GET("/quiz/:slug", c.quiz.StartQuiz)
		taking.GET("/quiz/:slug/:questionId", c.quiz.GetQuestion)
		taking.POST("/quiz/:slug/:questionId", c.quiz.SubmitAnswers)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
	}

	// Catalog curation.
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.POST("/quizzes", c.admin.CreateQuiz)
		admin.PUT("/quizzes/:id", c.admin.UpdateQuiz)
		admin.DELETE("/quizzes/:id", c.admin.DeleteQuiz)

		admin.POST("/quizzes/:quizId/questions", c.admin.CreateQuestion)
		admin.PUT("/questions/:id", c.admin.UpdateQuestion)
		admin.DELETE("/questions/:id", c.admin.DeleteQuestion)

		admin.POST("/categories", c.admin.CreateCategory)
		admin.PUT("/categories/:id", c.admin.UpdateCategory)
		admin.DELETE("/categories/:id", c.admin.DeleteCategory)
	}
}
