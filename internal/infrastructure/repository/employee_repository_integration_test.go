//go:build integration

package repository_test

import (
	"context"
	"testing"

	"employee-records/internal/domain/employee"
	"employee-records/internal/infrastructure/database"
	"employee-records/internal/infrastructure/repository"
	"employee-records/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newPostgresRepository(t *testing.T) employee.EmployeeRepository {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("employee_records"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: database.NewGormLogger("silent")})
	require.NoError(t, err)

	require.NoError(t, database.RunMigrations(ctx, db, "../../../migrations"))

	return repository.NewEmployeeRepository(db, metrics.NewMetrics(prometheus.NewRegistry()))
}

func TestEmployeeRepository_Postgres(t *testing.T) {
	repo := newPostgresRepository(t)
	ctx := context.Background()

	for _, e := range []*employee.Employee{
		{FirstName: "Carol", LastName: "Baker", Email: "carol@corp.com"},
		{FirstName: "Alice", LastName: "Young", Email: "alice@home.org"},
		{FirstName: "Bob", LastName: "Adams", Email: "bob_1@corp.com"},
		{FirstName: "Dan", LastName: "Cole", Email: "dan@corp.com"},
		{FirstName: "Eve", LastName: "Diaz", Email: "eve@home.org"},
	} {
		require.NoError(t, repo.Create(ctx, e))
		require.NotZero(t, e.ID)
	}

	t.Run("duplicate email is rejected", func(t *testing.T) {
		err := repo.Create(ctx, &employee.Employee{Email: "carol@corp.com"})
		require.Error(t, err)
	})

	t.Run("filter escapes wildcards", func(t *testing.T) {
		got, err := repo.FindAll(ctx, employee.FilterByEmail("b_1"), employee.SortByID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "bob_1@corp.com", got[0].Email)

		got, err = repo.FindAll(ctx, employee.FilterByEmail("%"), employee.SortByID)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("sorted by last name", func(t *testing.T) {
		sort, err := employee.SortAscending("lastName")
		require.NoError(t, err)

		got, err := repo.FindAll(ctx, nil, sort)
		require.NoError(t, err)
		require.Len(t, got, 5)
		assert.Equal(t, "Adams", got[0].LastName)
		assert.Equal(t, "Young", got[4].LastName)
	})

	t.Run("pages cover every row once", func(t *testing.T) {
		seen := map[int64]bool{}
		for page := 0; page < 3; page++ {
			rows, total, err := repo.FindPage(ctx, employee.PageRequest{Page: page, Size: 2})
			require.NoError(t, err)
			assert.Equal(t, int64(5), total)
			for _, e := range rows {
				assert.False(t, seen[e.ID])
				seen[e.ID] = true
			}
		}
		assert.Len(t, seen, 5)
	})

	t.Run("update then delete", func(t *testing.T) {
		e, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, e)

		e.FirstName = "Caroline"
		require.NoError(t, repo.Update(ctx, e))

		updated, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Caroline", updated.FirstName)

		require.NoError(t, repo.Delete(ctx, 1))
		gone, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})
}
