package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"employee-records/internal/api/handlers"
	"employee-records/internal/api/router"
	"employee-records/internal/config"
	"employee-records/internal/domain/employee"
	"employee-records/internal/domain/idempotency"
	"employee-records/internal/infrastructure/database"
	"employee-records/internal/infrastructure/kvstore"
	"employee-records/internal/infrastructure/repository"
	"employee-records/internal/metrics"
	"employee-records/internal/service"
	"employee-records/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var (
	port string
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long: `Start the employee API server.
The server connects to the configured store, applies pending migrations,
checks the database and serves the REST API until SIGINT or SIGTERM.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := startServer(cmd.Context()); err != nil {
			logger.Fatal("Server failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringVarP(&port, "port", "p", "", "Port for the server to listen on (overrides server.port)")
}

func startServer(ctx context.Context) error {
	cfg := config.Get()

	if port != "" {
		cfg.Server.Port = port
	}

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(reg)

	healthChecks := make(map[string]handlers.Pinger)

	employeeRepo, closeStore, err := newEmployeeRepository(ctx, cfg, m, healthChecks)
	if err != nil {
		return err
	}
	defer closeStore()

	idempotencyService, closeIdempotency, err := newIdempotencyService(ctx, cfg, healthChecks)
	if err != nil {
		return err
	}
	defer closeIdempotency()

	r := router.NewRouter(router.Dependencies{
		EmployeeService:    service.NewEmployeeService(employeeRepo),
		IdempotencyService: idempotencyService,
		Metrics:            m,
		Gatherer:           reg,
		HealthChecks:       healthChecks,
		BasePath:           cfg.Server.BasePath,
		Version:            cfg.App.Version,
	})

	srv := &http.Server{
		Addr:           cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:        r,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")

	// Give server 5 seconds to finish current requests
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server exited")
	return nil
}

// newEmployeeRepository opens the store selected by database.driver and
// registers its health check.
func newEmployeeRepository(ctx context.Context, cfg *config.Config, m *metrics.Metrics, healthChecks map[string]handlers.Pinger) (employee.EmployeeRepository, func(), error) {
	switch cfg.Database.Driver {
	case "memory":
		logger.Warn("Using the in-memory employee store; data is lost on restart")
		return repository.NewMemoryEmployeeRepository(), func() {}, nil

	case "postgres":
		db, err := database.NewConnection(databaseConfig(cfg))
		if err != nil {
			return nil, nil, err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		closeDB := func() {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database: %v", err)
			}
		}

		if err := database.RunMigrations(ctx, db, cfg.Database.MigrationsDir); err != nil {
			closeDB()
			return nil, nil, err
		}

		if err := database.HealthCheck(ctx, db); err != nil {
			closeDB()
			return nil, nil, err
		}

		healthChecks["database"] = database.NewPinger(db)
		return repository.NewEmployeeRepository(db, m), closeDB, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// newIdempotencyService returns nil when idempotency is disabled
func newIdempotencyService(ctx context.Context, cfg *config.Config, healthChecks map[string]handlers.Pinger) (*service.IdempotencyService, func(), error) {
	if !cfg.Idempotency.Enabled {
		return nil, func() {}, nil
	}

	var repo idempotency.Repository
	closeStore := func() {}

	switch cfg.Idempotency.Store {
	case "memory":
		repo = repository.NewMemoryIdempotencyRepository()

	case "redis":
		store := kvstore.NewRedisStoreWithConfig(&cfg.Cache)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		closeStore = func() {
			if err := store.Close(); err != nil {
				logger.Warn("Failed to close redis: %v", err)
			}
		}
		healthChecks["redis"] = store
		repo = repository.NewRedisIdempotencyRepository(store.GetClient())

	default:
		return nil, nil, fmt.Errorf("unsupported idempotency store %q", cfg.Idempotency.Store)
	}

	logger.Info("Idempotency keys enabled using %s store with TTL %s", cfg.Idempotency.Store, cfg.Idempotency.TTL)
	return service.NewIdempotencyService(repo, cfg.Idempotency.TTL), closeStore, nil
}
