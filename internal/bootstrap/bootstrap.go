package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/yatube/internal/app/controllers"
	appMigrations "github.com/yigit/yatube/internal/app/migrations"
	appRepos "github.com/yigit/yatube/internal/app/repositories"
	"github.com/yigit/yatube/internal/app/repositories/memory"
	appRoutes "github.com/yigit/yatube/internal/app/routes"
	appServices "github.com/yigit/yatube/internal/app/services"
	"github.com/yigit/yatube/internal/config"
	"github.com/yigit/yatube/internal/db"
	"github.com/yigit/yatube/internal/metrics"
	appMiddleware "github.com/yigit/yatube/internal/middleware"
	pkgAuth "github.com/yigit/yatube/internal/pkg/auth"
	"github.com/yigit/yatube/internal/pkg/cache"
	"github.com/yigit/yatube/internal/pkg/filestorage"
	"github.com/yigit/yatube/internal/pkg/logger"
	"github.com/yigit/yatube/internal/seed"
	"github.com/yigit/yatube/internal/web"
)

const serviceName = "yatube"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Config         *config.Config
	Repos          *appRepos.Repositories
	Database       *db.PostgresDB // nil with the memory driver
	FileStorage    *filestorage.LocalStorage
	JWTService     *pkgAuth.JWTService
	Services       *appServices.Services
	PageCache      cache.Store
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    *appRoutes.Controllers
	Logger         zerolog.Logger
}

// Option tweaks BuildDependencies
type Option func(*buildOptions)

type buildOptions struct {
	authOpts []appServices.AuthOption
}

// WithPasswordCost lowers the bcrypt cost, for tests
func WithPasswordCost(cost int) Option {
	return func(o *buildOptions) {
		o.authOpts = append(o.authOpts, appServices.WithPasswordCost(cost))
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(config.Path())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Format: logger.Format(cfg.Logging.Format),
	})
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage opens the configured storage driver. For postgres it runs the
// migrations; the returned *db.PostgresDB is nil for the memory driver.
func SetupStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*appRepos.Repositories, *db.PostgresDB, error) {
	if cfg.Database.Driver == "memory" {
		lgr.Warn().Msg("Using in-memory storage; data is lost on restart")
		return memory.NewRepositories(), nil, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Server.MigrationsPath
	if _, err := os.Stat(migrationsDir); errors.Is(err, os.ErrNotExist) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database, lgr.With().Str("component", "migrator").Logger())
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return appRepos.NewRepositories(database.Pool), database, nil
}

// BuildDependencies initializes services, middleware and controllers over
// repos, and seeds the configured groups.
func BuildDependencies(ctx context.Context, cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger, opts ...Option) (*Dependencies, error) {
	var bo buildOptions
	for _, opt := range opts {
		opt(&bo)
	}

	deps := &Dependencies{Config: cfg, Repos: repos, Logger: lgr}

	if err := seed.CreateDefaultGroups(ctx, repos.Groups, cfg.Seed.Groups, lgr); err != nil {
		// a bad seed entry should not keep the site down
		lgr.Error().Err(err).Msg("Failed to create default groups, proceeding anyway...")
	}

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.Server.MediaURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.PageCache, err = cache.New(cache.Config{
		Backend:         cache.Backend(cfg.Cache.Backend),
		RedisURL:        cfg.Cache.RedisURL,
		KeyPrefix:       cfg.Cache.KeyPrefix,
		JanitorInterval: cfg.CacheJanitorInterval(),
	})
	if err != nil {
		lgr.Error().Err(err).Str("backend", cfg.Cache.Backend).Msg("Failed to initialize page cache")
		return nil, fmt.Errorf("failed to initialize page cache: %w", err)
	}

	if cfg.Metrics.Enabled {
		deps.Metrics, deps.MetricsHandler, err = metrics.Setup(serviceName)
		if err != nil {
			deps.PageCache.Close()
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.Session.Secret,
		Expiration:  cfg.SessionExpiration(),
		TokenIssuer: cfg.Session.Issuer,
	})

	deps.Services = appServices.NewServices(repos, deps.FileStorage, deps.JWTService, lgr, bo.authOpts...)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(
		deps.JWTService,
		repos.Users,
		appMiddleware.SessionConfig{
			CookieName: cfg.Session.CookieName,
			Secure:     cfg.Session.Secure,
		},
		lgr.With().Str("component", "auth").Logger(),
	)

	controllerLogger := lgr.With().Str("component", "controller").Logger()
	deps.Controllers = &appRoutes.Controllers{
		Feed:   appControllers.NewFeedController(deps.Services.Feed, controllerLogger),
		Post:   appControllers.NewPostController(deps.Services.Post, deps.Services.Comment, controllerLogger),
		Follow: appControllers.NewFollowController(deps.Services.Follow, controllerLogger),
		Auth:   appControllers.NewAuthController(deps.Services.Auth, deps.AuthMiddleware, controllerLogger),
		About:  appControllers.NewAboutController(),
		Health: appControllers.NewHealthController(repos, controllerLogger),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	}

	templates, err := web.Templates(deps.FileStorage.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(templates)
	router.Use(
		appMiddleware.RequestLogger(lgr.With().Str("component", "http").Logger()),
		appMiddleware.Recovery(lgr),
	)
	if deps.Metrics != nil {
		router.Use(appMiddleware.HTTPMetrics(deps.Metrics))
		router.GET(cfg.Metrics.Path, gin.WrapH(deps.MetricsHandler))
	}
	router.Use(deps.AuthMiddleware.LoadIdentity())

	mediaURL := strings.TrimRight(cfg.Server.MediaURL, "/")
	if strings.HasPrefix(mediaURL, "/") && mediaURL != "" {
		router.Static(mediaURL, deps.FileStorage.BasePath())
		lgr.Info().Str("path", deps.FileStorage.BasePath()).Str("url", mediaURL).Msg("Static file serving configured for media")
	}

	opts := appRoutes.Options{
		PageCache: appMiddleware.CachePage(
			deps.PageCache,
			appMiddleware.PageCacheConfig{TTL: cfg.CacheTTL(), VaryOnQuery: cfg.Cache.VaryOnQuery},
			deps.Metrics,
			lgr.With().Str("component", "page_cache").Logger(),
		),
	}
	if cfg.RateLimit.Enabled {
		limiter := appMiddleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
		opts.WriteLimit = limiter.Middleware()
	}

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, opts)
	return router, nil
}

// Close releases the page cache, the metrics provider and the database pool
func (d *Dependencies) Close(ctx context.Context) error {
	var errs error
	if d.PageCache != nil {
		errs = errors.Join(errs, d.PageCache.Close())
	}
	if d.Metrics != nil {
		errs = errors.Join(errs, d.Metrics.Shutdown(ctx))
	}
	if d.Database != nil {
		d.Database.Close()
	}
	return errs
}
