package app

import (
	"context"
	"errors"
	"firstaid_backend/internal/config"
	"firstaid_backend/internal/controller"
	"firstaid_backend/internal/repository"
	"firstaid_backend/internal/service"
	"firstaid_backend/internal/util"
	"firstaid_backend/pkg/configwatcher"
	"firstaid_backend/pkg/database"
	"firstaid_backend/pkg/logger"
	"firstaid_backend/pkg/monitoring"
	"firstaid_backend/pkg/tracing"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/sessions"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config       *config.Config
	ConfigPath   string
	Router       *gin.Engine
	DB           *gorm.DB
	Redis        *redis.Client
	SessionStore sessions.Store

	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	catalog     *repository.CatalogRepository
	progress    *repository.ProgressRepository
	achievement *repository.AchievementRepository
	leaderboard *repository.LeaderboardRepository
}

type services struct {
	auth        *service.AuthService
	storage     *service.StorageService
	catalog     *service.CatalogService
	progress    *service.ProgressService
	achievement *service.AchievementService
	leaderboard *service.LeaderboardService
	profile     *service.ProfileService
}

type controllers struct {
	auth        *controller.AuthController
	training    *controller.TrainingController
	achievement *controller.AchievementController
	leaderboard *controller.LeaderboardController
	profile     *controller.ProfileController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		catalog:     repository.NewCatalogRepository(db),
		progress:    repository.NewProgressRepository(db),
		achievement: repository.NewAchievementRepository(db),
		leaderboard: repository.NewLeaderboardRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	var cache service.LeaderboardCache = service.NoopLeaderboardCache{}
	if rdb != nil {
		cache = service.NewRedisLeaderboardCache(rdb, cfg.Leaderboard.CacheTTL())
	}

	s.storage = service.NewStorageService(&cfg.Storage)
	s.auth = service.NewAuthService(repos.user, cache, cfg)
	s.catalog = service.NewCatalogService(repos.catalog, repos.progress)
	s.achievement = service.NewAchievementService(repos.achievement, repos.progress, s.storage)
	s.progress = service.NewProgressService(db, repos.catalog, repos.progress, s.achievement, cache)
	s.leaderboard = service.NewLeaderboardService(repos.leaderboard, repos.progress, cache)
	s.profile = service.NewProfileService(repos.user, repos.catalog, repos.progress, repos.achievement)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, a.SessionStore),
		training:    controller.NewTrainingController(s.catalog, s.progress),
		achievement: controller.NewAchievementController(s.achievement),
		leaderboard: controller.NewLeaderboardController(s.leaderboard),
		profile:     controller.NewProfileController(s.profile),
		health:      controller.NewHealthController(db, rdb),
	}
}

// NewApp opens the database and Redis described by cfg and builds the router.
func NewApp(ctx context.Context, cfg *config.Config, configPath string) (*App, error) {
	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		return nil, err
	}

	if cfg.Server.Mode == gin.DebugMode {
		if err := database.Migrate(db); err != nil {
			return nil, err
		}
		if err := database.Seed(db); err != nil {
			return nil, err
		}
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			return nil, err
		}
	}

	a := Build(ctx, cfg, db, rdb)
	a.ConfigPath = configPath

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(ctx, &cfg.Tracing)
		if err != nil {
			return nil, err
		}
		a.tracerProvider = tp
	}
	return a, nil
}

// Build wires repositories, services and routes over an open database.
// rdb may be nil, in which case the leaderboard is computed on every request.
func Build(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	a := &App{
		Config:       cfg,
		DB:           db,
		Redis:        rdb,
		SessionStore: util.NewSessionStore(cfg.Session),
	}

	repos := a.initRepositories(db)
	s := a.initServices(repos, cfg, db, rdb)
	c := a.initControllers(s, db, rdb)

	monitoring.Init()

	router := gin.New()
	router.Use(gin.Recovery())
	a.setupMiddlewares(ctx, router, cfg)
	a.registerRoutes(router, c, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	a.Router = router
	a.RegisterConfigCallback(configwatcher.ApplyLogLevel)
	return a
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

// Run serves until ctx is cancelled or the process receives SIGINT/SIGTERM.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if a.ConfigPath != "" {
		go func() {
			if err := configwatcher.WatchConfig(ctx, a.ConfigPath, a.applyConfig); err != nil {
				logger.Log.Warn("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	logger.Log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.Close(shutdownCtx)
	logger.Log.Info("Server exited")
	return nil
}

func (a *App) Close(ctx context.Context) {
	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
