package app

import (
	"context"
	"edu_challenge_backend/internal/config"
	"edu_challenge_backend/internal/controller"
	"edu_challenge_backend/internal/grading"
	"edu_challenge_backend/internal/repository"
	"edu_challenge_backend/internal/service"
	"edu_challenge_backend/internal/util"
	"edu_challenge_backend/pkg/configwatcher"
	"edu_challenge_backend/pkg/database"
	"edu_challenge_backend/pkg/logger"
	"edu_challenge_backend/pkg/monitoring"
	"edu_challenge_backend/pkg/security"
	"edu_challenge_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	services        *services
	tracer          *sdktrace.TracerProvider
	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	challenge   *repository.ChallengeRepository
	score       *repository.ScoreRepository
	lessonScore *repository.LessonScoreRepository
	setting     *repository.SettingRepository
}

type services struct {
	scoring        *service.ScoringSettings
	cache          *service.Cache
	storage        *service.StorageService
	images         *service.ImageService
	challenge      *service.ChallengeService
	challengeAdmin *service.ChallengeAdminService
	submission     *service.SubmissionService
	score          *service.ScoreService
	setting        *service.SettingService
	lessonScore    *service.LessonScoreService
}

type controllers struct {
	challenge      *controller.ChallengeController
	adminChallenge *controller.AdminChallengeController
	score          *controller.ScoreController
	lesson         *controller.LessonController
	setting        *controller.SettingController
	health         *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置文件变更后调用，只有注册过回调的部分会生效
func (a *App) ApplyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		challenge:   repository.NewChallengeRepository(db),
		score:       repository.NewScoreRepository(db),
		lessonScore: repository.NewLessonScoreRepository(db),
		setting:     repository.NewSettingRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.scoring = service.NewScoringSettings(cfg.Scoring)
	s.cache = service.NewCache(rdb)
	s.storage = service.NewStorageService(&cfg.Storage)
	s.images = service.NewImageService(s.storage)

	s.challenge = service.NewChallengeService(repos.challenge, repos.score, s.scoring)
	s.challengeAdmin = service.NewChallengeAdminService(repos.challenge, s.challenge, s.images, s.scoring)
	s.submission = service.NewSubmissionService(repos.challenge, repos.score, grading.NewGrader(), s.cache)

	s.score = service.NewScoreService(repos.score, repos.lessonScore, s.cache, s.scoring)
	s.setting = service.NewSettingService(repos.setting, s.cache, s.scoring)
	s.lessonScore = service.NewLessonScoreService(repos.lessonScore, repos.user, s.setting, s.cache)

	// 积分配置支持热更新
	a.RegisterConfigCallback(func(newCfg *config.Config) {
		s.scoring.Set(newCfg.Scoring)
		logger.Log.Info("Scoring config applied",
			zap.Float64("default_lesson_points", newCfg.Scoring.DefaultLessonPoints),
			zap.Int("leaderboard_cache_seconds", newCfg.Scoring.LeaderboardCacheSeconds),
		)
	})

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		challenge:      controller.NewChallengeController(s.challenge, s.submission),
		adminChallenge: controller.NewAdminChallengeController(s.challengeAdmin, s.images),
		score:          controller.NewScoreController(s.score),
		lesson:         controller.NewLessonController(s.lessonScore),
		setting:        controller.NewSettingController(s.setting),
		health:         controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// build 在已有的数据库与 Redis 连接上组装路由
func (a *App) build() {
	repos := a.initRepositories(a.DB)
	a.services = a.initServices(repos, a.Config, a.Redis)
	controllers := a.initControllers(a.services, a.DB, a.Redis)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	a.Router = router

	a.setupMiddlewares(router, a.Config)
	a.registerRoutes(router, controllers, a.Config)

	if a.Config.Storage.Type == util.StorageLocal {
		router.Static("/uploads", a.Config.Storage.LocalPath)
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	migrate := cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode
	db, err := database.InitDB(&cfg.Database, cfg.Scoring, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	app.Redis = rdb

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("edu-challenge", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.build()
	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if a.Config.ConfigDir != "" {
		go func() {
			if err := configwatcher.WatchConfig(watchCtx, a.Config.ConfigDir, a.ApplyConfig); err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	stopWatch()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}
