package config

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"DB_DRIVER", "DB_HOST", "DB_PORT", "PORT", "DEBUG", "JWT_TTL_HOURS", "DATABASE_URL", "DB_SSLMODE"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DBDriver != DriverPostgres || cfg.Port != "8080" || cfg.JWTTTLHours != 24 || cfg.Debug {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
	if dsn := cfg.DSN(); !strings.Contains(dsn, "host=localhost") || !strings.Contains(dsn, "sslmode=disable") {
		t.Errorf("Unexpected DSN %q", dsn)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"DB_DRIVER", "mysql"},
		{"DEBUG", "maybe"},
		{"JWT_TTL_HOURS", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := LoadConfig(); err == nil {
				t.Errorf("Expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestConnectSQLite(t *testing.T) {
	cfg := &Config{
		DBDriver:    DriverSQLite,
		DatabaseURL: filepath.Join(t.TempDir(), "travel.db"),
	}

	db, err := Connect(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	if err := Ping(context.Background(), db); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if !db.Migrator().HasTable("slot_voting") || !db.Migrator().HasTable("users_in_plan") {
		t.Error("Expected schema to be migrated")
	}
}

func TestConnectUnreachablePostgresIsDegraded(t *testing.T) {
	cfg := &Config{
		DBDriver:    DriverPostgres,
		DatabaseURL: "host=127.0.0.1 port=1 user=nobody dbname=none sslmode=disable connect_timeout=1",
	}

	db, err := Connect(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Expected degraded handle, got error %v", err)
	}
	if db == nil {
		t.Fatal("Expected a handle even when the database is down")
	}
	if err := Ping(context.Background(), db); err == nil {
		t.Error("Expected ping to fail against a closed port")
	}
}
