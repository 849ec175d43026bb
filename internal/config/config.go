package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Stripe   StripeConfig   `toml:"stripe"`
	Business BusinessConfig `toml:"business"`
	Redis    RedisConfig    `toml:"redis"`
	CORS     CORSConfig     `toml:"cors"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig настройки проверки токенов и доступа к admin API сервиса авторизации
type AuthConfig struct {
	JWTSecret      string `toml:"jwt_secret"`
	Audience       string `toml:"audience"`
	ServiceURL     string `toml:"service_url"`
	ServiceRoleKey string `toml:"service_role_key"`
	Timeout        int    `toml:"timeout"`
}

// StripeConfig настройки платёжного провайдера
type StripeConfig struct {
	SecretKey               string   `toml:"secret_key"`
	WebhookSecret           string   `toml:"webhook_secret"`
	WebhookToleranceSeconds int      `toml:"webhook_tolerance_seconds"`
	Currency                string   `toml:"currency"`
	FrontendURL             string   `toml:"frontend_url"`
	AllowedCountries        []string `toml:"allowed_countries"`
	MaxItemQuantity         int      `toml:"max_item_quantity"`
}

// BusinessConfig параметры бизнеса
type BusinessConfig struct {
	Timezone string `toml:"timezone"`
}

// RedisConfig настройки ограничителя частоты запросов
type RedisConfig struct {
	Enabled           bool   `toml:"enabled"`
	Addr              string `toml:"addr"`
	Password          string `toml:"password"`
	DB                int    `toml:"db"`
	RateLimit         int    `toml:"rate_limit"`
	RateWindowSeconds int    `toml:"rate_window_seconds"`
	FailOpen          bool   `toml:"fail_open"`
}

// CORSConfig разрешённые источники для браузерных запросов
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// envOverrides секреты, которые можно передать через переменные окружения
var envOverrides = []struct {
	name  string
	apply func(c *Config, v string)
}{
	{"DB_PASSWORD", func(c *Config, v string) { c.Database.Password = v }},
	{"SUPABASE_JWT_SECRET", func(c *Config, v string) { c.Auth.JWTSecret = v }},
	{"SUPABASE_URL", func(c *Config, v string) { c.Auth.ServiceURL = v }},
	{"SUPABASE_SERVICE_ROLE_KEY", func(c *Config, v string) { c.Auth.ServiceRoleKey = v }},
	{"STRIPE_SECRET_KEY", func(c *Config, v string) { c.Stripe.SecretKey = v }},
	{"STRIPE_WEBHOOK_SECRET", func(c *Config, v string) { c.Stripe.WebhookSecret = v }},
	{"FRONTEND_URL", func(c *Config, v string) { c.Stripe.FrontendURL = v }},
	{"REDIS_ADDR", func(c *Config, v string) { c.Redis.Addr = v }},
}

// Load читает конфигурацию из toml файла, применяет переменные окружения и значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	for _, o := range envOverrides {
		if v, ok := os.LookupEnv(o.name); ok && v != "" {
			o.apply(cfg, v)
		}
	}

	// Фронтенд всегда может обращаться к checkout
	if cfg.Stripe.FrontendURL != "" && !contains(cfg.CORS.AllowedOrigins, cfg.Stripe.FrontendURL) {
		cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, cfg.Stripe.FrontendURL)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "studio_service"},
		Auth:    AuthConfig{Audience: "authenticated", Timeout: 5},
		Stripe: StripeConfig{
			WebhookToleranceSeconds: 300,
			Currency:                "usd",
			AllowedCountries:        []string{"US", "CA"},
			MaxItemQuantity:         10,
		},
		Business: BusinessConfig{Timezone: "America/New_York"},
		Redis:    RedisConfig{RateLimit: 20, RateWindowSeconds: 60, FailOpen: true},
		CORS:     CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Database.Host == "" {
		problems = append(problems, "database.host is required")
	}
	if c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}
	if c.Auth.JWTSecret == "" {
		problems = append(problems, "auth.jwt_secret is required")
	}
	if c.Stripe.MaxItemQuantity <= 0 {
		problems = append(problems, "stripe.max_item_quantity must be positive")
	}
	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			problems = append(problems, "redis.addr is required when redis is enabled")
		}
		if c.Redis.RateLimit <= 0 || c.Redis.RateWindowSeconds <= 0 {
			problems = append(problems, "redis.rate_limit and redis.rate_window_seconds must be positive")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
