// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "cinelog/internal/api"
	"cinelog/internal/api/handler"
	"cinelog/internal/auth"
	"cinelog/internal/config"
	"cinelog/internal/repository"
	"cinelog/internal/repository/postgres"
	"cinelog/internal/service"
	"cinelog/internal/util"
	"cinelog/pkg/db"
)

// Application is the assembled users API: config, store, service and router.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	UserRepository repository.UserRepository
	UserService    service.UserService
	HTTPHandler    http.Handler
}

// NewApplication returns an Application whose logger is usable before
// Initialize, so startup failures can be reported.
func NewApplication() *Application {
	return &Application{Logger: util.GetLogger()}
}

// Initialize loads configuration, opens the store and builds the router.
func (app *Application) Initialize(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	util.InitLogger(cfg.Log.Level, cfg.Log.Format)
	app.Logger = util.GetLogger()

	if err := app.openStore(ctx); err != nil {
		return err
	}

	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.UserService = service.NewUserService(
		app.DB,
		app.UserRepository,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
	)

	app.HTTPHandler = router.NewRouter(
		handler.NewUserHandler(app.UserService, app.Logger),
		app.Logger,
		router.RouterConfig{
			AllowedOrigins: cfg.Server.CORSAllowedOrigins,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
	)
	app.Logger.Info("users API ready",
		"port", cfg.Server.Port,
		"bcrypt_cost", cfg.Auth.BcryptCost,
		"cors_origins", cfg.Server.CORSAllowedOrigins,
	)
	return nil
}

func (app *Application) openStore(ctx context.Context) error {
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database

	if !app.Config.DB.Migrate {
		app.Logger.Info("user store connected, migrations skipped")
		return nil
	}
	if err := db.Migrate(ctx, app.DB.DB); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	app.Logger.Info("user store connected and migrated")
	return nil
}

// Shutdown closes the store. It is safe to call after a failed Initialize.
func (app *Application) Shutdown(ctx context.Context) error {
	if app.DB == nil {
		return nil
	}
	if err := app.DB.Close(); err != nil {
		app.Logger.Error("failed to close user store", "error", err)
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	app.DB = nil
	app.Logger.Info("user store closed")
	return nil
}
