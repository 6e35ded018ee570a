package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	LockDriverRedis  = "redis"
	LockDriverMemory = "memory"
)

// ErrInvalidConfig конфигурация не прошла проверку
var ErrInvalidConfig = errors.New("invalid config")

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Redis       RedisConfig       `toml:"redis"`
	Lock        LockConfig        `toml:"lock"`
	NATS        NATSConfig        `toml:"nats"`
	UserService UserServiceConfig `toml:"user_service"`
	Reservation ReservationConfig `toml:"reservation"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
}

// ServerConfig таймауты заданы в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

// LockConfig настройки блокировки на офис
type LockConfig struct {
	Driver          string `toml:"driver"`
	TTLSeconds      int    `toml:"ttl_seconds"`
	WaitSeconds     int    `toml:"wait_seconds"`
	RetryIntervalMs int    `toml:"retry_interval_ms"`
}

func (c LockConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

func (c LockConfig) Wait() time.Duration {
	return time.Duration(c.WaitSeconds) * time.Second
}

func (c LockConfig) RetryInterval() time.Duration {
	return time.Duration(c.RetryIntervalMs) * time.Millisecond
}

// NATSConfig пустой URL - события только пишутся в лог
type NATSConfig struct {
	URL           string `toml:"url"`
	ClientName    string `toml:"client_name"`
	SubjectPrefix string `toml:"subject_prefix"`
}

type UserServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

type ReservationConfig struct {
	Timezone string `toml:"timezone"`
	// RetryAfter значение заголовка Retry-After при 503, секунды
	RetryAfter int `toml:"retry_after"`
}

// Location часовой пояс, в котором считается "сегодня"
func (c ReservationConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load читает TOML файл, подмешивает .env и переменные окружения, проставляет значения по умолчанию
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		c.NATS.URL = v
	}
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

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "office-booking:"
	}

	if c.Lock.Driver == "" {
		c.Lock.Driver = LockDriverRedis
	}
	setDefault(&c.Lock.TTLSeconds, 10)
	setDefault(&c.Lock.WaitSeconds, 3)
	setDefault(&c.Lock.RetryIntervalMs, 100)

	if c.NATS.ClientName == "" {
		c.NATS.ClientName = "office-booking-service"
	}
	if c.NATS.SubjectPrefix == "" {
		c.NATS.SubjectPrefix = "notifications."
	}

	setDefault(&c.UserService.Timeout, 5)

	if c.Reservation.Timezone == "" {
		c.Reservation.Timezone = "UTC"
	}
	setDefault(&c.Reservation.RetryAfter, 1)

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "office_booking_service"
	}
}

// Validate проверяет значения после применения дефолтов
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Lock.Driver != LockDriverRedis && c.Lock.Driver != LockDriverMemory {
		return fmt.Errorf("%w: unknown lock.driver %q", ErrInvalidConfig, c.Lock.Driver)
	}
	if c.Lock.TTLSeconds <= 0 || c.Lock.WaitSeconds <= 0 {
		return fmt.Errorf("%w: lock ttl and wait must be positive", ErrInvalidConfig)
	}
	// ожидание дольше TTL означает, что блокировка может истечь раньше, чем её дождутся
	if c.Lock.WaitSeconds >= c.Lock.TTLSeconds {
		return fmt.Errorf("%w: lock.wait_seconds (%d) must be less than lock.ttl_seconds (%d)",
			ErrInvalidConfig, c.Lock.WaitSeconds, c.Lock.TTLSeconds)
	}
	if _, err := c.Reservation.Location(); err != nil {
		return fmt.Errorf("%w: unknown reservation.timezone %q: %v", ErrInvalidConfig, c.Reservation.Timezone, err)
	}
	return nil
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}
