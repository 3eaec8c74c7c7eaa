package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Переменные окружения с секретами, перекрывают значения из TOML
const (
	envDBPassword          = "DB_PASSWORD"
	envPaymentServiceToken = "PAYMENT_SERVICE_TOKEN"
)

var (
	// ErrInvalidConfig возвращается при некорректной конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	PaymentService PaymentServiceConfig `toml:"payment_service"`
	Scheduling     SchedulingConfig     `toml:"scheduling"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто - только stdout
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// PaymentServiceConfig настройки клиента PaymentService
type PaymentServiceConfig struct {
	URL        string `toml:"url"`
	Token      string `toml:"token"`
	Timeout    int    `toml:"timeout"` // секунды
	MaxRetries uint64 `toml:"max_retries"`
}

// SchedulingConfig значения по умолчанию для владельцев без своих настроек
type SchedulingConfig struct {
	DefaultTimezone               string   `toml:"default_timezone"`
	DefaultSessionDurationMinutes int      `toml:"default_session_duration_minutes"`
	DefaultBufferMinutes          int      `toml:"default_buffer_minutes"`
	MinLeadTimeMinutes            int      `toml:"min_lead_time_minutes"`
	CancellationDeadlineHours     int      `toml:"cancellation_deadline_hours"`
	PartialRefundPercent          *float64 `toml:"partial_refund_percent"` // не задан - поздняя отмена без возврата
	MaxRecurrenceOccurrences      int      `toml:"max_recurrence_occurrences"`
	CompletionIntervalSeconds     int      `toml:"completion_interval_seconds"`
}

// DefaultOwnerSettings настройки, которые действуют для владельца до первого сохранения
func (c SchedulingConfig) DefaultOwnerSettings() domain.OwnerSettings {
	settings := domain.OwnerSettings{
		Timezone:                      c.DefaultTimezone,
		DefaultSessionDurationMinutes: c.DefaultSessionDurationMinutes,
		DefaultBufferMinutes:          c.DefaultBufferMinutes,
		MinLeadTimeMinutes:            c.MinLeadTimeMinutes,
		CancellationDeadlineHours:     c.CancellationDeadlineHours,
	}
	if c.PartialRefundPercent != nil {
		percent := decimal.NewFromFloat(*c.PartialRefundPercent)
		settings.PartialRefundPercent = &percent
	}
	return settings
}

// CompletionInterval период фонового завершения прошедших сессий
func (c SchedulingConfig) CompletionInterval() time.Duration {
	return time.Duration(c.CompletionIntervalSeconds) * time.Second
}

// Load читает конфигурацию из TOML файла и накладывает секреты из окружения
// .env файл опционален
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	// Отсутствие .env не ошибка, переменные могут прийти из окружения
	_ = godotenv.Load(".env")
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			ServiceName: "scheduling_service",
			Path:        "/metrics",
		},
		PaymentService: PaymentServiceConfig{
			Timeout:    5,
			MaxRetries: 3,
		},
		Scheduling: SchedulingConfig{
			DefaultTimezone:               domain.DefaultTimezone,
			DefaultSessionDurationMinutes: domain.DefaultSessionDurationMinutes,
			DefaultBufferMinutes:          domain.DefaultBufferMinutes,
			MinLeadTimeMinutes:            domain.DefaultMinLeadTimeMinutes,
			CancellationDeadlineHours:     domain.DefaultCancellationDeadlineHours,
			MaxRecurrenceOccurrences:      domain.DefaultMaxRecurrenceOccurrences,
			CompletionIntervalSeconds:     60,
		},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(envDBPassword); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv(envPaymentServiceToken); v != "" {
		cfg.PaymentService.Token = v
	}
}

// Validate проверяет обязательные поля и диапазоны
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("%w: database host, dbname and user are required", ErrInvalidConfig)
	}
	if c.PaymentService.URL == "" {
		return fmt.Errorf("%w: payment_service.url is required", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}

	s := c.Scheduling
	if _, err := time.LoadLocation(s.DefaultTimezone); err != nil {
		return fmt.Errorf("%w: scheduling.default_timezone %q: %v", ErrInvalidConfig, s.DefaultTimezone, err)
	}
	if s.DefaultSessionDurationMinutes < domain.MinSessionDurationMinutes || s.DefaultSessionDurationMinutes > domain.MaxSessionDurationMinutes {
		return fmt.Errorf("%w: scheduling.default_session_duration_minutes out of range", ErrInvalidConfig)
	}
	if s.DefaultBufferMinutes < 0 || s.MinLeadTimeMinutes < 0 || s.CancellationDeadlineHours < 0 {
		return fmt.Errorf("%w: scheduling buffer, lead time and deadline must not be negative", ErrInvalidConfig)
	}
	if s.PartialRefundPercent != nil && (*s.PartialRefundPercent < 0 || *s.PartialRefundPercent > 100) {
		return fmt.Errorf("%w: scheduling.partial_refund_percent must be in 0..100", ErrInvalidConfig)
	}
	if s.MaxRecurrenceOccurrences <= 0 {
		return fmt.Errorf("%w: scheduling.max_recurrence_occurrences must be positive", ErrInvalidConfig)
	}
	if s.CompletionIntervalSeconds <= 0 {
		return fmt.Errorf("%w: scheduling.completion_interval_seconds must be positive", ErrInvalidConfig)
	}

	return nil
}
