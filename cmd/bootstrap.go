package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/m04kA/SMC-BotCore/internal/command"
	"github.com/m04kA/SMC-BotCore/internal/config"
	"github.com/m04kA/SMC-BotCore/internal/infra/storage/cursor"
	"github.com/m04kA/SMC-BotCore/internal/integrations/botapi"
	"github.com/m04kA/SMC-BotCore/internal/service/telegram"
	"github.com/m04kA/SMC-BotCore/internal/usecase/help_message"
	"github.com/m04kA/SMC-BotCore/internal/usecase/start_message"
	"github.com/m04kA/SMC-BotCore/pkg/logger"
	"github.com/m04kA/SMC-BotCore/pkg/metrics"
)

// cursorStore хранилище курсора: Postgres или память процесса
type cursorStore interface {
	Load(ctx context.Context) (int, bool, error)
	Save(ctx context.Context, cursor int, instanceID string) error
	Reset(ctx context.Context) error
}

// app общие зависимости всех подкоманд
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	metrics  *metrics.Metrics
	db       *sql.DB
	client   *botapi.Client
	telegram *telegram.Service
	registry *command.Registry
	store    cursorStore
}

// newApp загружает конфигурацию и поднимает зависимости
// Закрывать через app.Close
func newApp(ctx context.Context, configPath string) (*app, error) {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a := &app{cfg: cfg, log: log}
	log.Info("Configuration loaded from %s", configPath)

	// Метрики регистрируются в глобальном реестре, его же отдаёт promhttp.Handler
	if cfg.Metrics.Enabled {
		a.metrics = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем Telegram Bot API
	a.client, err = botapi.NewClient(
		cfg.Telegram.BotToken,
		cfg.Telegram.APIEndpoint,
		time.Duration(cfg.Telegram.RequestTimeout)*time.Second,
	)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize Telegram Bot API: %w", err)
	}
	log.Info("Telegram Bot API initialized (@%s)", a.client.Username())

	a.telegram = telegram.NewService(a.client.Bot(), log)
	a.telegram.SetParseMode(cfg.Telegram.ParseMode)
	a.telegram.SetDisableWebPagePreview(cfg.Telegram.DisableWebPagePreview)
	if a.metrics != nil {
		a.telegram.SetMetrics(a.metrics)
	}

	// Хранилище курсора
	if cfg.Database.Enabled {
		if err := a.openDatabase(ctx); err != nil {
			a.Close()
			return nil, err
		}
		a.store = cursor.NewRepository(a.db, a.client.BotID())
	} else {
		a.store = cursor.NewMemoryStore()
		log.Info("Database disabled, polling cursor is kept in memory")
	}

	a.registry = newRegistry(a.telegram)

	return a, nil
}

func (a *app) openDatabase(ctx context.Context) error {
	cfg := a.cfg.Database

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = db
	a.log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Host, cfg.Port, cfg.DBName)

	return nil
}

// Close освобождает соединение с базой и файл лога
func (a *app) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn("Failed to close database: %v", err)
		}
	}
	a.log.Close()
}

// newRegistry регистрирует встроенные команды бота
func newRegistry(telegramSvc *telegram.Service) *command.Registry {
	registry := command.NewRegistry()

	startMessageUC := start_message.New(telegramSvc, registry)
	registry.Register(start_message.Command, startMessageUC.Execute, start_message.Description)

	helpMessageUC := help_message.New(telegramSvc, registry)
	registry.Register(help_message.Command, helpMessageUC.Execute, help_message.Description)

	return registry
}
