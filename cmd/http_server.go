package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shiftwise/planning-api/internal"
	"github.com/shiftwise/planning-api/internal/auth"
	authPostgres "github.com/shiftwise/planning-api/internal/auth/postgres"
	"github.com/shiftwise/planning-api/internal/establishment"
	establishmentPostgres "github.com/shiftwise/planning-api/internal/establishment/postgres"
	"github.com/shiftwise/planning-api/internal/notification"
	"github.com/shiftwise/planning-api/internal/shift"
	shiftPostgres "github.com/shiftwise/planning-api/internal/shift/postgres"
	"github.com/shiftwise/planning-api/internal/template"
	templatePostgres "github.com/shiftwise/planning-api/internal/template/postgres"
	"github.com/shiftwise/planning-api/internal/transport/rest"
	"github.com/shiftwise/planning-api/internal/user"
	userPostgres "github.com/shiftwise/planning-api/internal/user/postgres"
	"github.com/shiftwise/planning-api/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	cfg := deps.Config

	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.JWTSecret,
		cfg.Security.SessionTokenTTL,
		cfg.Security.InviteTokenTTL,
	)

	authRepo := authPostgres.NewRepository(deps.GormDB)
	authService := auth.NewService(authRepo, tokenGen, cfg.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)

	deliverer := notification.NewLogDeliverer(deps.Logger)

	userRepo := userPostgres.NewUserRepository(deps.GormDB)
	userService := user.NewService(userRepo, tokenGen, deliverer, cfg.Mail.ActivationBaseURL, deps.Logger)
	userHandler := user.NewHandler(userService)

	establishmentRepo := establishmentPostgres.NewEstablishmentRepository(deps.GormDB)
	establishmentService := establishment.NewService(establishmentRepo, deps.Logger)
	establishmentHandler := establishment.NewHandler(establishmentService)

	shiftRepo := shiftPostgres.NewShiftRepository(deps.GormDB)
	shiftService := shift.NewService(shiftRepo, deps.Logger)
	shiftHandler := shift.NewHandler(shiftService)

	templateRepo := templatePostgres.NewTemplateRepository(deps.GormDB)
	templateService := template.NewService(templateRepo, deps.Logger)
	templateHandler := template.NewHandler(templateService)

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, rest.Handlers{
		Auth:          authHandler,
		User:          userHandler,
		Establishment: establishmentHandler,
		Shift:         shiftHandler,
		Template:      templateHandler,
	}, cfg.Server.AllowedOrigins, deps.Logger)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.L(),
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
