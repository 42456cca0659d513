package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Log       LogConfig
	RateLimit RateLimitConfig
	Matching  MatchingConfig
	Scheduler SchedulerConfig
	Seed      SeedConfig
	Mail      MailConfig
}

type AppConfig struct {
	AppName       string
	Environment   string
	HTTPPort      string
	MigrationsDir string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type MatchingConfig struct {
	TopN     int
	CacheTTL time.Duration
}

type SchedulerConfig struct {
	StatsSnapshotCron string
}

type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// MailConfig drives contact-form notifications. Mail is off when
// ResendAPIKey or ContactTo is empty.
type MailConfig struct {
	ResendAPIKey string
	Endpoint     string
	ContactFrom  string
	ContactTo    []string
}

// EnvConfigFile names the variable that may point at a YAML config file.
const EnvConfigFile = "WOWCAMPUS_CONFIG"

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the environment, layered over an optional
// config file. An explicit path wins over WOWCAMPUS_CONFIG.
func Load(path string) (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if strings.TrimSpace(path) == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigFile))
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, strings.ToUpper(key))
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg.App = AppConfig{
		AppName:       req("app_name"),
		Environment:   req("app_env"),
		HTTPPort:      req("http_port"),
		MigrationsDir: opt("migrations_dir"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("db_host"),
		DBPort:                opt("db_port"),
		DBName:                opt("db_name"),
		DBUser:                opt("db_user"),
		DBPassword:            v.GetString("db_password"),
		DBSSLMode:             opt("db_ssl_mode"),
		ConnectTimeout:        v.GetDuration("db_connect_timeout"),
		PoolMaxConns:          v.GetInt32("db_pool_max_conns"),
		PoolMinConns:          v.GetInt32("db_pool_min_conns"),
		PoolMaxConnLifetime:   v.GetDuration("db_pool_max_conn_lifetime"),
		PoolMaxConnIdleTime:   v.GetDuration("db_pool_max_conn_idle_time"),
		PoolHealthCheckPeriod: v.GetDuration("db_pool_health_check_period"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("redis_host"),
		Port:     opt("redis_port"),
		Password: v.GetString("redis_password"),
		DB:       v.GetInt("redis_db"),
		TTL:      v.GetDuration("redis_ttl"),
	}

	access := req("jwt_access_secret")
	refresh := opt("jwt_refresh_secret")
	if refresh == "" {
		refresh = access
	}
	cfg.JWT = JWTConfig{
		AccessSecret:     access,
		RefreshSecret:    refresh,
		AccessExpiresIn:  v.GetDuration("jwt_access_expires_in"),
		RefreshExpiresIn: v.GetDuration("jwt_refresh_expires_in"),
	}

	cfg.Log = LogConfig{
		JSON:  v.GetBool("log_json"),
		Debug: v.GetBool("log_debug"),
	}

	cfg.RateLimit = RateLimitConfig{
		RPS:   v.GetFloat64("rate_limit_rps"),
		Burst: v.GetInt("rate_limit_burst"),
	}

	cfg.Matching = MatchingConfig{
		TopN:     v.GetInt("match_top_n"),
		CacheTTL: v.GetDuration("match_cache_ttl"),
	}

	cfg.Scheduler = SchedulerConfig{
		StatsSnapshotCron: opt("stats_snapshot_cron"),
	}

	cfg.Seed = SeedConfig{
		AdminEmail:    opt("seed_admin_email"),
		AdminPassword: v.GetString("seed_admin_password"),
		AdminName:     opt("seed_admin_name"),
	}

	cfg.Mail = MailConfig{
		ResendAPIKey: v.GetString("resend_api_key"),
		Endpoint:     opt("resend_endpoint"),
		ContactFrom:  opt("contact_mail_from"),
		ContactTo:    splitList(opt("contact_mail_to")),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_ssl_mode", "disable")
	v.SetDefault("db_connect_timeout", "5s")

	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_ttl", "10m")

	v.SetDefault("jwt_access_expires_in", "24h")
	v.SetDefault("jwt_refresh_expires_in", "168h")

	v.SetDefault("rate_limit_rps", 5)
	v.SetDefault("rate_limit_burst", 10)

	v.SetDefault("match_top_n", 20)
	v.SetDefault("match_cache_ttl", "5m")

	v.SetDefault("stats_snapshot_cron", "@daily")

	v.SetDefault("seed_admin_email", "admin@wowcampus.kr")

	v.SetDefault("contact_mail_from", "WOW-CAMPUS <noreply@w-campus.com>")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ListenAddr turns a bare port into a listen address.
func (c AppConfig) ListenAddr() (string, error) {
	p := strings.TrimSpace(c.HTTPPort)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
