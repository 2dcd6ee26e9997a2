package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/farellandr/travel-maker/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Version is overridden at build time with -ldflags "-X ...config.Version=...".
var Version = "dev"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultSQLitePath = "travel-maker.db"
	pingTimeout       = 3 * time.Second
)

type Config struct {
	DBDriver    string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DatabaseURL string

	Port          string
	Debug         bool
	JWTSecret     string
	JWTTTLHours   int
	PublicBaseURL string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Port:          getEnv("PORT", "8080"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTTTLHours:   24,
		PublicBaseURL: os.Getenv("PUBLIC_BASE_URL"),
	}

	if raw := os.Getenv("DEBUG"); raw != "" {
		debug, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid DEBUG value %q: %w", raw, err)
		}
		cfg.Debug = debug
	}

	if raw := os.Getenv("JWT_TTL_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return nil, fmt.Errorf("invalid JWT_TTL_HOURS value %q", raw)
		}
		cfg.JWTTTLHours = hours
	}

	if cfg.DBDriver != DriverPostgres && cfg.DBDriver != DriverSQLite {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// DSN returns the connection string for the configured driver.
func (cfg *Config) DSN() string {
	if cfg.DBDriver == DriverSQLite {
		if cfg.DatabaseURL != "" {
			return cfg.DatabaseURL
		}
		return defaultSQLitePath
	}
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
	)
}

// InitDatabase opens the handle without contacting the server, so a
// database that is down at startup does not stop the process.
func InitDatabase(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN())
	default:
		dialector = postgres.Open(cfg.DSN())
	}

	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               logger.Default.LogMode(logLevel),
		TranslateError:       true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}

	if cfg.DBDriver == DriverSQLite {
		// One writer at a time; sqlite rejects concurrent write transactions.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Connect opens the database and migrates it when reachable. An unreachable
// database is logged and the handle is still returned.
func Connect(ctx context.Context, cfg *Config) (*gorm.DB, error) {
	db, err := InitDatabase(cfg)
	if err != nil {
		return nil, err
	}

	if err := Ping(ctx, db); err != nil {
		slog.Error("database unreachable, serving in degraded mode", "driver", cfg.DBDriver, "error", err)
		return db, nil
	}

	if err := Migrate(db); err != nil {
		slog.Error("database migration failed", "error", err)
		return db, nil
	}

	slog.Info("database connected", "driver", cfg.DBDriver)
	return db, nil
}
