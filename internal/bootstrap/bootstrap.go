package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/schoolie/schoolie-backend/docs" // generated swagger docs
	appAuth "github.com/schoolie/schoolie-backend/internal/app/auth"
	appControllers "github.com/schoolie/schoolie-backend/internal/app/controllers"
	appMigrations "github.com/schoolie/schoolie-backend/internal/app/migrations"
	appRepos "github.com/schoolie/schoolie-backend/internal/app/repositories"
	appRoutes "github.com/schoolie/schoolie-backend/internal/app/routes"
	appServices "github.com/schoolie/schoolie-backend/internal/app/services"
	"github.com/schoolie/schoolie-backend/internal/config"
	"github.com/schoolie/schoolie-backend/internal/db"
	appMiddleware "github.com/schoolie/schoolie-backend/internal/middleware"
	pkgAuth "github.com/schoolie/schoolie-backend/internal/pkg/auth"
	"github.com/schoolie/schoolie-backend/internal/pkg/helpers"
	"github.com/schoolie/schoolie-backend/internal/pkg/logger"
	"github.com/schoolie/schoolie-backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService    appServices.AuthService
	UserService    appServices.UserService
	ProfileService appServices.ProfileService
	RoleService    appServices.RoleService
	AcademyService appServices.AcademyService
	MemberService  appServices.MemberService
	StudentService appServices.StudentService

	AuthController    *appControllers.AuthController
	UserController    *appControllers.UserController
	ProfileController *appControllers.ProfileController
	RoleController    *appControllers.RoleController
	AcademyController *appControllers.AcademyController
	MemberController  *appControllers.MemberController
	StudentController *appControllers.StudentController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
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
// seeds the root administrator
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
	lgr.Info().Msg("Database connection established")

	migrator := appMigrations.NewMigrator(dbPool, lgr)
	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations applied")

	if err := seed.CreateRootAdmin(context.Background(), dbPool, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed root admin, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.RoleRepository,
		deps.Repos.AcademyRepository,
		deps.Repos.MemberRepository,
	)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos, deps.JWTService, lgr)
	deps.UserService = appServices.NewUserService(deps.Repos, deps.AuthzService, lgr)
	deps.ProfileService = appServices.NewProfileService(deps.Repos, deps.AuthzService, lgr)
	deps.RoleService = appServices.NewRoleService(deps.Repos, deps.AuthzService, lgr)
	deps.AcademyService = appServices.NewAcademyService(deps.Repos, deps.AuthzService, lgr)
	deps.MemberService = appServices.NewMemberService(deps.Repos, deps.AuthzService, lgr)
	deps.StudentService = appServices.NewStudentService(deps.Repos, deps.AuthzService, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.ProfileController = appControllers.NewProfileController(deps.ProfileService)
	deps.RoleController = appControllers.NewRoleController(deps.RoleService)
	deps.AcademyController = appControllers.NewAcademyController(deps.AcademyService, lgr)
	deps.MemberController = appControllers.NewMemberController(deps.MemberService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.CORS())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.ProfileController,
		deps.RoleController,
		deps.AcademyController,
		deps.MemberController,
		deps.StudentController,
		deps.AuthMiddleware,
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
