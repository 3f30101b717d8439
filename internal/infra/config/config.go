package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	App       AppSettings       `mapstructure:"app"`
	Postgres  PostgresSettings  `mapstructure:"postgres"`
	Redis     RedisSettings     `mapstructure:"redis"`
	Kafka     KafkaSettings     `mapstructure:"kafka"`
	Session   SessionSettings   `mapstructure:"session"`
	CSRF      CSRFSettings      `mapstructure:"csrf"`
	Gateway   GatewaySettings   `mapstructure:"gateway"`
	CORS      CORSSettings      `mapstructure:"cors"`
	RateLimit RateLimitSettings `mapstructure:"rate_limit"`
	Telemetry TelemetrySettings `mapstructure:"telemetry"`
}

type AppSettings struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type PostgresSettings struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	User              string        `mapstructure:"user"`
	Password          string        `mapstructure:"password"`
	Database          string        `mapstructure:"database"`
	SSLMode           string        `mapstructure:"ssl_mode"`
	MaxConns          int32         `mapstructure:"max_conns"`
	MinConns          int32         `mapstructure:"min_conns"`
	MaxConnLifetime   time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   time.Duration `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod time.Duration `mapstructure:"health_check_period"`
}

// RedisSettings configures Redis connection and TLS.
type RedisSettings struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	DB         int    `mapstructure:"db"`
	Password   string `mapstructure:"password"`
	TLSEnabled bool   `mapstructure:"tls_enabled"`
}

// KafkaSettings configures the Kafka producer.
type KafkaSettings struct {
	Brokers     []string `mapstructure:"brokers"`
	TopicPrefix string   `mapstructure:"topic_prefix"`
	Async       bool     `mapstructure:"async"`
}

// SessionSettings configures the signed session credential. The secret is
// threaded into constructors explicitly; nothing reads it from process
// globals at import time.
type SessionSettings struct {
	Secret       string        `mapstructure:"secret"`
	TTL          time.Duration `mapstructure:"ttl"`
	CookieName   string        `mapstructure:"cookie_name"`
	CookieDomain string        `mapstructure:"cookie_domain"`
	CookieSecure bool          `mapstructure:"cookie_secure"`
}

// CSRFSettings configures the double-submit anti-forgery guard.
type CSRFSettings struct {
	Secret       string `mapstructure:"secret"`
	CookieName   string `mapstructure:"cookie_name"`
	HeaderName   string `mapstructure:"header_name"`
	FormField    string `mapstructure:"form_field"`
	CookieSecure bool   `mapstructure:"cookie_secure"`
}

// GatewaySettings configures the realtime messaging gateway.
type GatewaySettings struct {
	HistoryLimit      int           `mapstructure:"history_limit"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	MaxMessageLength  int           `mapstructure:"max_message_length"`
	AllowedOrigins    []string      `mapstructure:"allowed_origins"`
	HandshakeMaxPerIP int           `mapstructure:"handshake_max_per_ip"`
}

// CORSSettings configures cross-origin access for the HTTP API.
type CORSSettings struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitSettings configures sliding-window limits.
type RateLimitSettings struct {
	WindowDuration time.Duration `mapstructure:"window_duration"`
}

type TelemetrySettings struct {
	MetricsNamespace string `mapstructure:"metrics_namespace"`
}

func Load() (*AppConfig, error) {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("TRUST")

	setDefaults(v)

	if err := bindEnvs(v, []string{
		"app.name",
		"app.env",
		"app.host",
		"app.port",
		"postgres.host",
		"postgres.port",
		"postgres.user",
		"postgres.password",
		"postgres.database",
		"postgres.ssl_mode",
		"postgres.max_conns",
		"postgres.min_conns",
		"postgres.max_conn_lifetime",
		"postgres.max_conn_idle_time",
		"postgres.health_check_period",
		"redis.host",
		"redis.port",
		"redis.db",
		"redis.password",
		"redis.tls_enabled",
		"kafka.brokers",
		"kafka.topic_prefix",
		"kafka.async",
		"session.secret",
		"session.ttl",
		"session.cookie_name",
		"session.cookie_domain",
		"session.cookie_secure",
		"csrf.secret",
		"csrf.cookie_name",
		"csrf.header_name",
		"csrf.form_field",
		"csrf.cookie_secure",
		"gateway.history_limit",
		"gateway.write_timeout",
		"gateway.max_message_length",
		"gateway.allowed_origins",
		"gateway.handshake_max_per_ip",
		"cors.allowed_origins",
		"rate_limit.window_duration",
		"telemetry.metrics_namespace",
	}); err != nil {
		return nil, err
	}

	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.Session.Secret) == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	if strings.TrimSpace(cfg.CSRF.Secret) == "" {
		return nil, fmt.Errorf("csrf secret is required")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "trust-service")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 8080)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "platform")
	v.SetDefault("postgres.password", "platform_password")
	v.SetDefault("postgres.database", "platform")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 2)
	v.SetDefault("postgres.max_conn_lifetime", "60m")
	v.SetDefault("postgres.max_conn_idle_time", "15m")
	v.SetDefault("postgres.health_check_period", "30s")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.tls_enabled", false)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic_prefix", "trust")
	v.SetDefault("kafka.async", true)

	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.cookie_name", "sp_session")
	v.SetDefault("session.cookie_domain", "")
	v.SetDefault("session.cookie_secure", false)

	v.SetDefault("csrf.cookie_name", "sp_csrf")
	v.SetDefault("csrf.header_name", "X-CSRF-Token")
	v.SetDefault("csrf.form_field", "csrfToken")
	v.SetDefault("csrf.cookie_secure", false)

	v.SetDefault("gateway.history_limit", 50)
	v.SetDefault("gateway.write_timeout", "5s")
	v.SetDefault("gateway.max_message_length", 2000)
	v.SetDefault("gateway.allowed_origins", []string{})
	v.SetDefault("gateway.handshake_max_per_ip", 30)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("rate_limit.window_duration", "1m")

	v.SetDefault("telemetry.metrics_namespace", "trust")
}

func bindEnvs(v *viper.Viper, keys []string) error {
	for _, key := range keys {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, "TRUST_"+envKey, envKey); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}
