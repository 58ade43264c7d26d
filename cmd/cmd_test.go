package cmd

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"employee-records/internal/api/handlers"
	"employee-records/internal/api/router"
	"employee-records/internal/config"
	"employee-records/internal/infrastructure/repository"
	"employee-records/internal/metrics"
	"employee-records/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmployeeRepository_Memory(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "memory"}}
	checks := map[string]handlers.Pinger{}

	repo, closeStore, err := newEmployeeRepository(context.Background(), cfg, nil, checks)
	require.NoError(t, err)
	defer closeStore()

	assert.NotNil(t, repo)
	assert.Empty(t, checks)
}

func TestNewEmployeeRepository_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "mysql"}}

	_, _, err := newEmployeeRepository(context.Background(), cfg, nil, map[string]handlers.Pinger{})
	require.ErrorContains(t, err, `unsupported database driver "mysql"`)
}

func TestNewIdempotencyService(t *testing.T) {
	ctx := context.Background()

	svc, _, err := newIdempotencyService(ctx, &config.Config{}, map[string]handlers.Pinger{})
	require.NoError(t, err)
	assert.Nil(t, svc)

	cfg := &config.Config{Idempotency: config.IdempotencyConfig{Enabled: true, Store: "memory", TTL: time.Minute}}
	svc, closeStore, err := newIdempotencyService(ctx, cfg, map[string]handlers.Pinger{})
	require.NoError(t, err)
	defer closeStore()
	assert.NotNil(t, svc)

	cfg.Idempotency.Store = "etcd"
	_, _, err = newIdempotencyService(ctx, cfg, map[string]handlers.Pinger{})
	require.Error(t, err)
}

func TestDatabaseConfig(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{
		Host:            "db",
		Port:            5433,
		Username:        "app",
		Name:            "employees",
		SSLMode:         "require",
		MaxOpenConns:    10,
		ConnMaxLifetime: time.Minute,
	}}

	dbCfg := databaseConfig(cfg)
	assert.Equal(t, "db", dbCfg.Host)
	assert.Equal(t, "app", dbCfg.User)
	assert.Equal(t, "employees", dbCfg.DBName)
	assert.Equal(t, 10, dbCfg.MaxOpenConns)
	assert.Equal(t, time.Minute, dbCfg.ConnMaxLifetime)
}

func TestLoadTester_AgainstMemoryServer(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	engine := router.NewRouter(router.Dependencies{
		EmployeeService:    service.NewEmployeeService(repository.NewMemoryEmployeeRepository()),
		IdempotencyService: service.NewIdempotencyService(repository.NewMemoryIdempotencyRepository(), time.Minute),
		Metrics:            metrics.NewMetrics(reg),
		Gatherer:           reg,
		BasePath:           "/api",
	})
	srv := httptest.NewServer(engine)
	defer srv.Close()

	lt := NewLoadTester(LoadTestConfig{
		BaseURL:         srv.URL,
		ConcurrentUsers: 2,
		RequestsPerUser: 2,
		PageSize:        5,
		UseIdempotency:  true,
	})
	lt.RunLoadTest(context.Background())

	// four lifecycles of five requests each
	assert.Equal(t, 20, lt.results.TotalRequests)
	assert.Equal(t, 20, lt.results.SuccessfulReqs)
	assert.Empty(t, lt.results.ErrorsByType)
	for _, op := range []string{"create", "get", "paginate", "filter", "delete"} {
		require.Contains(t, lt.results.Operations, op)
		assert.Equal(t, 4, lt.results.Operations[op].Successful, op)
	}
}
