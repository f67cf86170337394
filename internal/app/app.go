package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Charnelx/quiz-demo/internal/config"
	"github.com/Charnelx/quiz-demo/internal/controller"
	"github.com/Charnelx/quiz-demo/internal/repository"
	"github.com/Charnelx/quiz-demo/internal/service"
	"github.com/Charnelx/quiz-demo/pkg/database"
	"github.com/Charnelx/quiz-demo/pkg/logger"
	"github.com/Charnelx/quiz-demo/pkg/monitoring"
	"github.com/Charnelx/quiz-demo/pkg/security"
	"github.com/Charnelx/quiz-demo/pkg/tracing"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	quiz     *repository.QuizRepository
	question *repository.QuestionRepository
	category *repository.CategoryRepository
	user     *repository.UserRepository
}

type services struct {
	content *service.ContentService
	attempt *service.AttemptService
	auth    *service.AuthService
	admin   *service.AdminService
}

type controllers struct {
	quiz     *controller.QuizController
	category *controller.CategoryController
	auth     *controller.AuthController
	admin    *controller.AdminController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		quiz:     repository.NewQuizRepository(db),
		question: repository.NewQuestionRepository(db),
		category: repository.NewCategoryRepository(db),
		user:     repository.NewUserRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.content = service.NewContentService(repos.quiz, repos.question, repos.category, rdb, cfg.Session.CacheTTL)
	s.attempt = service.NewAttemptService(s.content)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.admin = service.NewAdminService(repos.quiz, repos.question, repos.category, s.content)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		quiz:     controller.NewQuizController(s.attempt, s.content, a.Config.Session),
		category: controller.NewCategoryController(s.content),
		auth:     controller.NewAuthController(s.auth),
		admin:    controller.NewAdminController(s.admin),
		health:   controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, quiz cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("quiz-demo", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

// ApplyConfig picks up a reloaded config file. Only settings read per
// request take effect without a restart.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	logger.Log.Info("Config reloaded")
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
