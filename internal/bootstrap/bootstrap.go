package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hostelhub/hostelhub/docs" // Import generated swagger docs
	appControllers "github.com/hostelhub/hostelhub/internal/app/controllers"
	appMigrations "github.com/hostelhub/hostelhub/internal/app/migrations"
	appRepos "github.com/hostelhub/hostelhub/internal/app/repositories"
	appRoutes "github.com/hostelhub/hostelhub/internal/app/routes"
	appServices "github.com/hostelhub/hostelhub/internal/app/services"
	"github.com/hostelhub/hostelhub/internal/config"
	"github.com/hostelhub/hostelhub/internal/db"
	"github.com/hostelhub/hostelhub/internal/events"
	appMiddleware "github.com/hostelhub/hostelhub/internal/middleware"
	pkgAuth "github.com/hostelhub/hostelhub/internal/pkg/auth"
	"github.com/hostelhub/hostelhub/internal/pkg/cache"
	"github.com/hostelhub/hostelhub/internal/pkg/logger"
	"github.com/hostelhub/hostelhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos      *appRepos.Repositories
	JWTService *pkgAuth.JWTService
	Cache      *cache.Cache
	Dispatcher *events.Dispatcher

	AuthService         *appServices.AuthService
	StudentService      *appServices.StudentService
	HostelService       *appServices.HostelService
	RoomService         *appServices.RoomService
	AllotmentService    *appServices.AllotmentService
	ApplicationService  *appServices.ApplicationService
	MaintenanceService  *appServices.MaintenanceService
	FeeService          *appServices.FeeService
	NotificationService *appServices.NotificationService
	DashboardService    *appServices.DashboardService
	SettingsService     *appServices.SettingsService

	Controllers    *appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers and the
// event dispatcher.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  cfg.GetAccessTokenExpiration(),
		RefreshTokenExp: cfg.GetRefreshTokenExpiration(),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	redisClient := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	deps.Cache = cache.New(redisClient)

	// Event dispatcher with its subscribers. The AMQP publisher is optional
	// and only attached when a broker URL is configured.
	deps.Dispatcher = events.NewDispatcher()
	deps.Dispatcher.Subscribe(events.NewAuditSubscriber())
	deps.Dispatcher.Subscribe(events.NewNotificationSubscriber(deps.Repos.NotificationRepository))
	if publisher := events.NewAMQPPublisher(cfg.AMQP.URL, ""); publisher != nil {
		deps.Dispatcher.Subscribe(publisher)
		lgr.Info().Msg("AMQP event publisher enabled")
	}

	// Initialize services
	deps.AuthService = appServices.NewAuthService(deps.Repos, deps.JWTService)
	deps.AllotmentService = appServices.NewAllotmentService(dbPool, deps.Repos, deps.Dispatcher)
	deps.StudentService = appServices.NewStudentService(deps.Repos, deps.AllotmentService)
	deps.HostelService = appServices.NewHostelService(dbPool, deps.Repos, deps.Dispatcher)
	deps.RoomService = appServices.NewRoomService(dbPool, deps.Repos, deps.AllotmentService, deps.Dispatcher)
	deps.ApplicationService = appServices.NewApplicationService(dbPool, deps.Repos, deps.AllotmentService, deps.Dispatcher)
	deps.MaintenanceService = appServices.NewMaintenanceService(deps.Repos, deps.Dispatcher)
	deps.FeeService = appServices.NewFeeService(deps.Repos)
	deps.NotificationService = appServices.NewNotificationService(deps.Repos, deps.Dispatcher)
	deps.DashboardService = appServices.NewDashboardService(deps.Repos, deps.Cache)
	deps.SettingsService = appServices.NewSettingsService(deps.Repos)

	// Dashboard stats are cached; any domain event invalidates them.
	deps.Dispatcher.Subscribe(deps.DashboardService)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = &appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(deps.AuthService),
		Student:      appControllers.NewStudentController(deps.StudentService, deps.AllotmentService),
		Hostel:       appControllers.NewHostelController(deps.HostelService),
		Room:         appControllers.NewRoomController(deps.RoomService, deps.AllotmentService),
		Allotment:    appControllers.NewAllotmentController(deps.AllotmentService, deps.StudentService),
		Application:  appControllers.NewApplicationController(deps.ApplicationService),
		Maintenance:  appControllers.NewMaintenanceController(deps.MaintenanceService),
		Fee:          appControllers.NewFeeController(deps.FeeService),
		Notification: appControllers.NewNotificationController(deps.NotificationService),
		Dashboard:    appControllers.NewDashboardController(deps.DashboardService, deps.SettingsService),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
