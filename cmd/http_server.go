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

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wisnuadi/splitledger/internal"
	"github.com/wisnuadi/splitledger/internal/auth"
	authPostgres "github.com/wisnuadi/splitledger/internal/auth/postgres"
	"github.com/wisnuadi/splitledger/internal/balance"
	balancePostgres "github.com/wisnuadi/splitledger/internal/balance/postgres"
	"github.com/wisnuadi/splitledger/internal/category"
	categoryPostgres "github.com/wisnuadi/splitledger/internal/category/postgres"
	"github.com/wisnuadi/splitledger/internal/expense"
	expensePostgres "github.com/wisnuadi/splitledger/internal/expense/postgres"
	"github.com/wisnuadi/splitledger/internal/group"
	groupPostgres "github.com/wisnuadi/splitledger/internal/group/postgres"
	"github.com/wisnuadi/splitledger/internal/transport"
	"github.com/wisnuadi/splitledger/internal/transport/rest"
	"github.com/wisnuadi/splitledger/internal/user"
	userPostgres "github.com/wisnuadi/splitledger/internal/user/postgres"
	"github.com/wisnuadi/splitledger/pkg/logger"
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
	Router *chi.Mux
	Logger *slog.Logger

	AuthHandler     *auth.Handler
	UserHandler     *user.Handler
	CategoryHandler *category.Handler
	ExpenseHandler  *expense.Handler
	BalanceHandler  *balance.Handler
	GroupHandler    *group.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		deps.AuthHandler,
		deps.UserHandler,
		deps.CategoryHandler,
		deps.ExpenseHandler,
		deps.BalanceHandler,
		deps.GroupHandler,
		deps.Logger,
	)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
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

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Repositories run on gorm over the already-pooled pgx connection.
	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	baseHandler := transport.NewBaseHandler(lg)

	authRepo := authPostgres.NewRepository(gormDB)
	tokenGen := auth.NewJWTTokenGenerator(config.Security)
	authService := auth.NewService(authRepo, tokenGen, config.Security.BCryptCost)
	authHandler := auth.NewHandler(baseHandler, authService)

	userRepo := userPostgres.NewUserRepository(gormDB)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(baseHandler, userService)

	categoryRepo := categoryPostgres.NewCategoryRepository(gormDB)
	categoryService := category.NewService(categoryRepo, lg)
	categoryHandler := category.NewHandler(baseHandler, categoryService)

	groupRepo := groupPostgres.NewGroupRepository(gormDB)
	groupService := group.NewService(groupRepo, lg)
	groupHandler := group.NewHandler(baseHandler, groupService)

	expenseRepo := expensePostgres.NewExpenseRepository(gormDB)
	expenseService := expense.NewService(expenseRepo, groupService, categoryService, lg)
	expenseHandler := expense.NewHandler(baseHandler, expenseService)

	balanceRepo := balancePostgres.NewBalanceRepository(gormDB)
	balanceService := balance.NewService(balanceRepo, lg)
	balanceHandler := balance.NewHandler(baseHandler, balanceService)

	return &Dependencies{
		Config: config,
		DB:     db,
		Router: chi.NewRouter(),
		Logger: lg,

		AuthHandler:     authHandler,
		UserHandler:     userHandler,
		CategoryHandler: categoryHandler,
		ExpenseHandler:  expenseHandler,
		BalanceHandler:  balanceHandler,
		GroupHandler:    groupHandler,
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
