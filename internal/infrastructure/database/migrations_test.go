package database

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: NewGormLogger("silent"),
	})
	require.NoError(t, err)

	return db, mock
}

var testMigrations = fstest.MapFS{
	"0001_create_employees_table.sql": {Data: []byte("CREATE TABLE employees (id BIGSERIAL PRIMARY KEY);")},
	"0002_add_email_index.sql":        {Data: []byte("CREATE UNIQUE INDEX idx_email ON employees (email_id);")},
	"README.md":                       {Data: []byte("not a migration")},
}

func TestLoadMigrations(t *testing.T) {
	runner := NewMigrationRunnerFS(nil, testMigrations)

	migrations, err := runner.loadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	assert.Equal(t, "0001", migrations[0].ID)
	assert.Equal(t, "create employees table", migrations[0].Description)
	assert.Equal(t, "0002", migrations[1].ID)
	assert.Equal(t, "add email index", migrations[1].Description)
}

func TestLoadMigrations_InvalidName(t *testing.T) {
	runner := NewMigrationRunnerFS(nil, fstest.MapFS{
		"broken.sql": {Data: []byte("SELECT 1;")},
	})

	_, err := runner.loadMigrations()
	assert.ErrorContains(t, err, "invalid migration filename format")
}

func TestRunMigrations_AppliesPendingOnly(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT id, applied_at FROM schema_migrations`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "applied_at"}).AddRow("0001", time.Now()))

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE UNIQUE INDEX idx_email`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations`).
		WithArgs("0002", "add email index").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	runner := NewMigrationRunnerFS(db, testMigrations)
	require.NoError(t, runner.RunMigrations(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_RollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT id, applied_at FROM schema_migrations`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "applied_at"}))

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE employees`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	runner := NewMigrationRunnerFS(db, testMigrations)
	err := runner.RunMigrations(context.Background())
	require.ErrorIs(t, err, assert.AnError)
	assert.ErrorContains(t, err, "failed to execute migration 0001")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMigrationStatus(t *testing.T) {
	db, mock := newMockDB(t)
	appliedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT id, applied_at FROM schema_migrations`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "applied_at"}).AddRow("0001", appliedAt))

	runner := NewMigrationRunnerFS(db, testMigrations)
	status, err := runner.GetMigrationStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, status, 2)

	require.NotNil(t, status[0].AppliedAt)
	assert.True(t, appliedAt.Equal(*status[0].AppliedAt))
	assert.Nil(t, status[1].AppliedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParseGormLogLevel(t *testing.T) {
	assert.NotPanics(t, func() {
		for _, level := range []string{"silent", "error", "warn", "info", "debug", ""} {
			_ = NewGormLogger(level)
		}
	})
}

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: 5432, User: "app", Password: "secret", DBName: "employees", SSLMode: "disable"}

	assert.Equal(t,
		"host=db user=app password=secret dbname=employees port=5432 sslmode=disable connect_timeout=10",
		cfg.DSN())
}
