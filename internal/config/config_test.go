package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "wow-campus")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv(EnvConfigFile, "")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv(EnvConfigFile, "")

	_, err := Load("")
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
	for _, k := range []string{"APP_NAME", "APP_ENV", "HTTP_PORT", "JWT_ACCESS_SECRET"} {
		if !strings.Contains(err.Error(), k) {
			t.Fatalf("expected %s in error, got %v", k, err)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Matching.TopN != 20 {
		t.Fatalf("expected top n 20, got %d", cfg.Matching.TopN)
	}
	if cfg.Matching.CacheTTL != 5*time.Minute {
		t.Fatalf("unexpected cache ttl: %s", cfg.Matching.CacheTTL)
	}
	if cfg.Scheduler.StatsSnapshotCron != "@daily" {
		t.Fatalf("unexpected cron spec: %q", cfg.Scheduler.StatsSnapshotCron)
	}
	if cfg.JWT.RefreshSecret != "secret" {
		t.Fatalf("refresh secret should default to access secret")
	}
	if cfg.JWT.AccessExpiresIn != 24*time.Hour {
		t.Fatalf("unexpected access expiry: %s", cfg.JWT.AccessExpiresIn)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	setRequired(t)
	t.Setenv("MATCH_TOP_N", "5")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "match_top_n: 50\nrate_limit_burst: 3\nlog_json: true\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Matching.TopN != 5 {
		t.Fatalf("expected env override 5, got %d", cfg.Matching.TopN)
	}
	if cfg.RateLimit.Burst != 3 {
		t.Fatalf("expected burst from file, got %d", cfg.RateLimit.Burst)
	}
	if !cfg.Log.JSON {
		t.Fatalf("expected log_json from file")
	}
}

func TestLoad_MailRecipients(t *testing.T) {
	setRequired(t)
	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("CONTACT_MAIL_TO", " ops@w-campus.com, ,sales@w-campus.com ")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Mail.ResendAPIKey != "re_test" || cfg.Mail.ContactFrom != "WOW-CAMPUS <noreply@w-campus.com>" {
		t.Fatalf("unexpected mail config: %+v", cfg.Mail)
	}
	if len(cfg.Mail.ContactTo) != 2 || cfg.Mail.ContactTo[1] != "sales@w-campus.com" {
		t.Fatalf("unexpected recipients: %q", cfg.Mail.ContactTo)
	}
}

func TestListenAddr(t *testing.T) {
	if a, err := (AppConfig{HTTPPort: "8080"}).ListenAddr(); err != nil || a != ":8080" {
		t.Fatalf("unexpected addr %q err=%v", a, err)
	}
	if a, _ := (AppConfig{HTTPPort: ":9090"}).ListenAddr(); a != ":9090" {
		t.Fatalf("unexpected addr %q", a)
	}
	if _, err := (AppConfig{}).ListenAddr(); err == nil {
		t.Fatalf("expected error for empty port")
	}
}
