package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"wow-campus/internal/config"
	"wow-campus/internal/database"
)

func TestDSN(t *testing.T) {
	got := DSN(config.DatabaseConfig{
		DBHost: " db ", DBPort: "5432", DBUser: "wow", DBPassword: `p w'\`, DBName: "campus", DBSSLMode: "disable",
	})
	want := `host='db' port='5432' user='wow' password='p w\'\\' dbname='campus' sslmode='disable'`
	if got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}
}

func TestDSN_EmptyPasswordKeepsDatabase(t *testing.T) {
	pcfg, err := poolConfig(config.DatabaseConfig{DBHost: "localhost", DBPort: "5432", DBUser: "u", DBName: "campus", DBSSLMode: "disable"})
	if err != nil {
		t.Fatalf("poolConfig: %v", err)
	}
	if pcfg.ConnConfig.Database != "campus" || pcfg.ConnConfig.Password != "" {
		t.Fatalf("database=%q password=%q", pcfg.ConnConfig.Database, pcfg.ConnConfig.Password)
	}
}

func TestPoolConfig_AppliesNonZeroSettings(t *testing.T) {
	base := config.DatabaseConfig{DBHost: "localhost", DBPort: "5432", DBUser: "u", DBName: "d", DBSSLMode: "disable"}

	def, err := poolConfig(base)
	if err != nil {
		t.Fatalf("poolConfig: %v", err)
	}

	cfg := base
	cfg.ConnectTimeout = 3 * time.Second
	cfg.PoolMaxConns = 8
	cfg.PoolMinConns = 20
	cfg.PoolMaxConnIdleTime = time.Minute
	got, err := poolConfig(cfg)
	if err != nil {
		t.Fatalf("poolConfig: %v", err)
	}
	if got.ConnConfig.ConnectTimeout != 3*time.Second || got.MaxConns != 8 || got.MaxConnIdleTime != time.Minute {
		t.Fatalf("settings not applied: timeout=%s max=%d idle=%s", got.ConnConfig.ConnectTimeout, got.MaxConns, got.MaxConnIdleTime)
	}
	if got.MinConns != 8 {
		t.Fatalf("min conns must not exceed max, got %d", got.MinConns)
	}
	if got.MaxConnLifetime != def.MaxConnLifetime || got.HealthCheckPeriod != def.HealthCheckPeriod {
		t.Fatalf("zero settings must keep pgx defaults")
	}
}

func TestPoolConfig_RejectsBadPort(t *testing.T) {
	_, err := poolConfig(config.DatabaseConfig{DBHost: "localhost", DBPort: "not-a-port"})
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestPool_UnconnectedReturnsErrors(t *testing.T) {
	var db database.DB = &Pool{}
	ctx := context.Background()

	if err := db.Ping(ctx); !errors.Is(err, errNoPool) {
		t.Fatalf("Ping = %v", err)
	}
	if _, err := db.Exec(ctx, "SELECT 1"); !errors.Is(err, errNoPool) {
		t.Fatalf("Exec = %v", err)
	}
	if _, err := db.Query(ctx, "SELECT 1"); !errors.Is(err, errNoPool) {
		t.Fatalf("Query = %v", err)
	}
	var n int
	if err := db.QueryRow(ctx, "SELECT 1").Scan(&n); !errors.Is(err, errNoPool) {
		t.Fatalf("QueryRow = %v", err)
	}
	if _, err := db.Begin(ctx); !errors.Is(err, errNoPool) {
		t.Fatalf("Begin = %v", err)
	}
	if db.(*Pool).Stats() != nil {
		t.Fatalf("Stats on an unconnected pool must be nil")
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close = %v", err)
	}
}
