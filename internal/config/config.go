package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-BotCore/pkg/keychain"
)

// Режимы старта цикла опроса
const (
	StartupModeDiscard = "discard"
	StartupModeResume  = "resume"
)

// Config представляет полную конфигурацию приложения
type Config struct {
	Logs       LogsConfig       `toml:"logs"`
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Telegram   TelegramConfig   `toml:"telegram"`
	Polling    PollingConfig    `toml:"polling"`
	Checkpoint CheckpointConfig `toml:"checkpoint"`
}

// LogsConfig содержит настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
// Без базы курсор хранится в памяти и теряется при перезапуске
type DatabaseConfig struct {
	Enabled         bool   `toml:"enabled"`
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

// MetricsConfig содержит настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// TelegramConfig содержит настройки Telegram Bot
type TelegramConfig struct {
	BotToken              string `toml:"bot_token"`
	TokenKeyringAccount   string `toml:"token_keyring_account"` // Если bot_token пуст, токен читается из системного хранилища секретов
	APIEndpoint           string `toml:"api_endpoint"`
	WebhookURL            string `toml:"webhook_url"` // Если задан, обновления приходят через webhook вместо long polling
	WebhookSecret         string `toml:"webhook_secret"`
	ParseMode             string `toml:"parse_mode"`
	DisableWebPagePreview bool   `toml:"disable_web_page_preview"`
	RequestTimeout        int    `toml:"request_timeout"` // в секундах
}

// PollingConfig содержит настройки long polling
type PollingConfig struct {
	Limit             int      `toml:"limit"`
	Timeout           int      `toml:"timeout"` // в секундах
	AllowedUpdates    []string `toml:"allowed_updates"`
	StartupMode       string   `toml:"startup_mode"`
	RetryBackoffMs    int      `toml:"retry_backoff_ms"`
	MaxRetryBackoffMs int      `toml:"max_retry_backoff_ms"`
}

// CheckpointConfig содержит настройки сохранения курсора
type CheckpointConfig struct {
	Interval int `toml:"interval"` // в секундах
}

// DSN формирует строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// WebhookMode сообщает, получает ли бот обновления через webhook
func (t TelegramConfig) WebhookMode() bool {
	return t.WebhookURL != ""
}

// Load загружает конфигурацию из TOML файла с поддержкой переменных окружения
func Load(path string) (*Config, error) {
	var cfg Config

	// Читаем TOML файл
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}

	// Переопределяем значения из переменных окружения (если они установлены)
	overrideFromEnv(&cfg)

	// Токен из системного хранилища секретов
	if err := resolveBotToken(&cfg); err != nil {
		return nil, err
	}

	// Валидация конфигурации
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// overrideFromEnv переопределяет значения из переменных окружения
func overrideFromEnv(cfg *Config) {
	// Database
	if v := os.Getenv("DB_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Database.Enabled = enabled
		}
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.DBName = v
	}
	if v := os.Getenv("DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}

	// Server
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.HTTPPort = port
		}
	}

	// Logs
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logs.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Logs.File = v
	}

	// Metrics
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
	if v := os.Getenv("METRICS_PATH"); v != "" {
		cfg.Metrics.Path = v
	}
	if v := os.Getenv("METRICS_SERVICE_NAME"); v != "" {
		cfg.Metrics.ServiceName = v
	}

	// Telegram
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_TOKEN_KEYRING_ACCOUNT"); v != "" {
		cfg.Telegram.TokenKeyringAccount = v
	}
	if v := os.Getenv("TELEGRAM_API_ENDPOINT"); v != "" {
		cfg.Telegram.APIEndpoint = v
	}
	if v := os.Getenv("TELEGRAM_WEBHOOK_URL"); v != "" {
		cfg.Telegram.WebhookURL = v
	}
	if v := os.Getenv("TELEGRAM_WEBHOOK_SECRET"); v != "" {
		cfg.Telegram.WebhookSecret = v
	}

	// Polling
	if v := os.Getenv("POLLING_LIMIT"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			cfg.Polling.Limit = limit
		}
	}
	if v := os.Getenv("POLLING_TIMEOUT"); v != "" {
		if timeout, err := strconv.Atoi(v); err == nil {
			cfg.Polling.Timeout = timeout
		}
	}
	if v := os.Getenv("POLLING_STARTUP_MODE"); v != "" {
		cfg.Polling.StartupMode = v
	}
	if v := os.Getenv("POLLING_RETRY_BACKOFF_MS"); v != "" {
		if backoff, err := strconv.Atoi(v); err == nil {
			cfg.Polling.RetryBackoffMs = backoff
		}
	}
}

// resolveBotToken подставляет токен из системного хранилища, если он не задан явно
func resolveBotToken(cfg *Config) error {
	if cfg.Telegram.BotToken != "" || cfg.Telegram.TokenKeyringAccount == "" {
		return nil
	}

	token, err := keychain.Get(cfg.Telegram.TokenKeyringAccount)
	if err != nil {
		return fmt.Errorf("failed to read telegram bot token from keyring: %w", err)
	}
	cfg.Telegram.BotToken = token

	return nil
}

// validate проверяет корректность конфигурации
func validate(cfg *Config) error {
	// Database validation
	if cfg.Database.Enabled {
		if cfg.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if cfg.Database.Port <= 0 || cfg.Database.Port > 65535 {
			return fmt.Errorf("database port must be between 1 and 65535")
		}
		if cfg.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if cfg.Database.DBName == "" {
			return fmt.Errorf("database name is required")
		}
	}

	// Server validation
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.HTTPPort < 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("HTTP port must be between 1 and 65535")
	}

	// Logs validation
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info" // default
	}
	if cfg.Logs.File == "" {
		cfg.Logs.File = "./logs/app.log" // default
	}

	// Set defaults for timeouts if not specified
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}

	// Set defaults for database connection pool
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 5
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 2
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300 // 5 minutes
	}

	// Metrics validation and defaults
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "botcore"
	}

	// Telegram validation
	if cfg.Telegram.BotToken == "" {
		return fmt.Errorf("telegram bot token is required")
	}
	if cfg.Telegram.RequestTimeout == 0 {
		cfg.Telegram.RequestTimeout = 10
	}

	// Polling validation and defaults
	if cfg.Polling.Limit == 0 {
		cfg.Polling.Limit = 100
	}
	if cfg.Polling.Limit < 1 || cfg.Polling.Limit > 100 {
		return fmt.Errorf("polling limit must be between 1 and 100")
	}
	if cfg.Polling.Timeout == 0 {
		cfg.Polling.Timeout = 10
	}
	if cfg.Polling.Timeout < 0 {
		return fmt.Errorf("polling timeout must not be negative")
	}

	cfg.Polling.StartupMode = strings.ToLower(cfg.Polling.StartupMode)
	switch cfg.Polling.StartupMode {
	case "":
		cfg.Polling.StartupMode = StartupModeDiscard
	case StartupModeDiscard:
	case StartupModeResume:
		if !cfg.Database.Enabled {
			return fmt.Errorf("polling startup mode %q requires database", StartupModeResume)
		}
	default:
		return fmt.Errorf("unknown polling startup mode %q", cfg.Polling.StartupMode)
	}

	if cfg.Polling.RetryBackoffMs < 0 {
		return fmt.Errorf("polling retry backoff must not be negative")
	}
	if cfg.Polling.MaxRetryBackoffMs == 0 {
		cfg.Polling.MaxRetryBackoffMs = 30000
	}

	// Checkpoint defaults
	if cfg.Checkpoint.Interval == 0 {
		cfg.Checkpoint.Interval = 5
	}

	return nil
}
