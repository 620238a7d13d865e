package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

var (
	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server             ServerConfig             `toml:"server"`
	Logs               LogsConfig               `toml:"logs"`
	Metrics            MetricsConfig            `toml:"metrics"`
	AppointmentService AppointmentServiceConfig `toml:"appointment_service"`
	Allocation         AllocationConfig         `toml:"allocation"`
	Journal            JournalConfig            `toml:"journal"`
	Database           DatabaseConfig           `toml:"database"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AppointmentServiceConfig настройки бэкенда записей
// Timeout = 0 отключает таймаут исходящих запросов
type AppointmentServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// AllocationConfig параметры процесса распределения записей
type AllocationConfig struct {
	// ApprovedStatus код статуса, которым бэкенд помечает одобренные записи
	ApprovedStatus string `toml:"approved_status"`
	// UpdateStatusAfterAllocation включает дополнительный перевод записи в IN_PROGRESS
	UpdateStatusAfterAllocation bool   `toml:"update_status_after_allocation"`
	InProgressNote              string `toml:"in_progress_note"`
	// SessionIdleTTL время жизни неактивной сессии в секундах
	SessionIdleTTL int `toml:"session_idle_ttl"`
}

// JournalConfig журнал успешных распределений в PostgreSQL
type JournalConfig struct {
	Enabled bool `toml:"enabled"`
}

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

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Default конфигурация по умолчанию; значения из файла накладываются поверх
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    120,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     false,
			Path:        "/metrics",
			ServiceName: "smc-allocation-service",
		},
		AppointmentService: AppointmentServiceConfig{
			Timeout: 30,
		},
		Allocation: AllocationConfig{
			ApprovedStatus:              "APPROVE",
			UpdateStatusAfterAllocation: true,
			InProgressNote:              "Appointment has been assigned to an employee",
			SessionIdleTTL:              1800,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
	}
}

// Load читает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.AppointmentService.URL == "" {
		return fmt.Errorf("%w: appointment_service.url is required", ErrInvalidConfig)
	}
	if c.AppointmentService.Timeout < 0 {
		return fmt.Errorf("%w: appointment_service.timeout must not be negative", ErrInvalidConfig)
	}
	if c.Allocation.ApprovedStatus == "" {
		return fmt.Errorf("%w: allocation.approved_status is required", ErrInvalidConfig)
	}
	if c.Allocation.SessionIdleTTL <= 0 {
		return fmt.Errorf("%w: allocation.session_idle_ttl must be positive", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}
	if c.Journal.Enabled && c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required when journal is enabled", ErrInvalidConfig)
	}
	return nil
}
