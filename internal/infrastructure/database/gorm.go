package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"employee-records/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Config struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
}

// DSN renders the libpq connection string for the config
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s connect_timeout=10",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode)
}

func NewConnection(config Config) (*gorm.DB, error) {
	logger.Debug("Connecting to database %s at %s:%d as %s", config.DBName, config.Host, config.Port, config.User)

	db, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{
		Logger: NewGormLogger(config.LogLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)

	return db, nil
}

// NewGormLogger routes gorm's SQL log through the application logger.
// Record-not-found is expected on lookups and is not logged.
func NewGormLogger(level string) gormlogger.Interface {
	return gormlogger.New(logger.GetLogger(), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  parseGormLogLevel(level),
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func parseGormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

func RunMigrations(ctx context.Context, db *gorm.DB, migrationsDir string) error {
	logger.Info("Running SQL migrations from %s", migrationsDir)

	migrationRunner := NewMigrationRunner(db, migrationsDir)
	if err := migrationRunner.RunMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// DBPinger is satisfied by the gorm connection wrapper below and by test doubles
type DBPinger interface {
	Ping(ctx context.Context) error
}

type gormPinger struct {
	db *gorm.DB
}

// NewPinger adapts a gorm connection for health checks
func NewPinger(db *gorm.DB) DBPinger {
	return gormPinger{db: db}
}

func (p gormPinger) Ping(ctx context.Context) error {
	return HealthCheck(ctx, p.db)
}

func HealthCheck(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
