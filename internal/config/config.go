package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

var (
	// ErrReadConfig возвращается, если файл конфигурации не удалось прочитать или разобрать
	ErrReadConfig = errors.New("config: failed to read config")

	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Redis    RedisConfig    `toml:"redis"`
	Kafka    KafkaConfig    `toml:"kafka"`
	Sweeper  SweeperConfig  `toml:"sweeper"`
	Expander ExpanderConfig `toml:"expander"`
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

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig настройки кэша экземпляров
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"` // секунды
}

// KafkaConfig настройки публикации событий; пустой brokers выключает отправку
type KafkaConfig struct {
	Brokers      []string `toml:"brokers"`
	Topic        string   `toml:"topic"`
	WriteTimeout int      `toml:"write_timeout"` // секунды
}

// SweeperConfig настройки фоновой задачи завершения прошедших экземпляров
type SweeperConfig struct {
	Enabled bool   `toml:"enabled"`
	Cron    string `toml:"cron"`
}

// ExpanderConfig настройки генерации экземпляров
type ExpanderConfig struct {
	DefaultWindowDays int    `toml:"default_window_days"`
	DefaultCapacity   int    `toml:"default_capacity"`
	MaxOccurrences    int    `toml:"max_occurrences"`
	ApplyBlackouts    bool   `toml:"apply_blackouts"`
	ApplySeasonal     bool   `toml:"apply_seasonal"`
	Timezone          string `toml:"timezone"` // IANA, даты описаний интерпретируются в этом поясе
}

// Location возвращает часовой пояс генерации; при ошибке UTC
func (c ExpanderConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load загружает конфигурацию из TOML файла, подставляет значения по умолчанию и валидирует её
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Parse разбирает конфигурацию из строки (используется в тестах и утилитах)
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 15)
	setDefault(&c.Server.WriteTimeout, 15)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 10)

	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "availability-service"
	}

	setDefault(&c.Redis.TTL, 300)

	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "product_instances.published"
	}
	setDefault(&c.Kafka.WriteTimeout, 10)

	if c.Sweeper.Cron == "" {
		c.Sweeper.Cron = "@every 15m"
	}

	setDefault(&c.Expander.DefaultWindowDays, domain.DefaultWindowDays)
	setDefault(&c.Expander.DefaultCapacity, domain.DefaultCapacity)
	setDefault(&c.Expander.MaxOccurrences, domain.DefaultMaxOccurrences)
	if c.Expander.Timezone == "" {
		c.Expander.Timezone = "UTC"
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port %d is out of range", c.Server.HTTPPort))
	}

	if c.Database.Host == "" {
		problems = append(problems, "database.host is required")
	}
	if c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}

	switch strings.ToLower(c.Logs.Level) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("logs.level %q is unknown", c.Logs.Level))
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		problems = append(problems, "redis.addr is required when redis is enabled")
	}

	if c.Sweeper.Enabled {
		if _, err := cron.ParseStandard(c.Sweeper.Cron); err != nil {
			problems = append(problems, fmt.Sprintf("sweeper.cron %q: %v", c.Sweeper.Cron, err))
		}
	}

	if c.Expander.DefaultWindowDays > domain.MaxWindowDays {
		problems = append(problems, fmt.Sprintf("expander.default_window_days must be <= %d", domain.MaxWindowDays))
	}
	if c.Expander.DefaultCapacity > domain.MaxCapacity {
		problems = append(problems, fmt.Sprintf("expander.default_capacity must be <= %d", domain.MaxCapacity))
	}

	if _, err := time.LoadLocation(c.Expander.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("expander.timezone %q: %v", c.Expander.Timezone, err))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}

	return nil
}

func setDefault(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}
