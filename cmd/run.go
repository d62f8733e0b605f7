package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-BotCore/internal/api/handlers/get_cursor"
	"github.com/m04kA/SMC-BotCore/internal/api/handlers/health"
	"github.com/m04kA/SMC-BotCore/internal/api/handlers/publish_commands"
	"github.com/m04kA/SMC-BotCore/internal/api/handlers/send_message"
	"github.com/m04kA/SMC-BotCore/internal/api/handlers/telegram_webhook"
	"github.com/m04kA/SMC-BotCore/internal/api/middleware"
	"github.com/m04kA/SMC-BotCore/internal/config"
	"github.com/m04kA/SMC-BotCore/internal/dispatcher"
	"github.com/m04kA/SMC-BotCore/internal/domain"
	"github.com/m04kA/SMC-BotCore/internal/usecase/menu_callback"
	"github.com/m04kA/SMC-BotCore/internal/worker"
)

const (
	modeWebhook = "webhook"
	modePolling = "polling"
)

// runService запускает бота и HTTP API до SIGINT/SIGTERM
func runService(parent context.Context, configPath string) error {
	// Создаём контекст, отменяемый сигналом завершения
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := a.cfg
	log := a.log
	log.Info("Starting SMC-BotCore...")

	// Диспетчер обновлений
	dispatch := dispatcher.New(a.registry, a.client.Username(), log)
	if a.metrics != nil {
		dispatch.SetMetrics(a.metrics)
	}

	menuCallbackUC := menu_callback.New(a.telegram, a.registry, dispatch, log)
	dispatch.OnCallbackQuery(menuCallbackUC.Execute)
	dispatch.OnUnknownCommand(func(_ context.Context, msg *domain.Message) error {
		log.Debug("Unknown command %q in chat %d", msg.Text, msg.ChatID())
		return nil
	})
	dispatch.OnMyChatMember(func(_ context.Context, update *tgbotapi.ChatMemberUpdated) error {
		log.Info("Bot status in chat %s changed to %s", domain.ChatName(&update.Chat), update.NewChatMember.Status)
		return nil
	})

	if a.telegram.PublishCommands(a.registry.Descriptions()) {
		log.Info("Bot command menu published")
	}

	var (
		poller       *worker.Poller
		checkpointer *worker.Checkpointer
		cursorReader health.CursorReader
		pollErrCh    = make(chan error, 1)
	)

	mode := modePolling
	if cfg.Telegram.WebhookMode() {
		// Режим Webhook
		mode = modeWebhook
		log.Info("Using Webhook mode")

		if err := a.telegram.SetWebhook(cfg.Telegram.WebhookURL, cfg.Telegram.WebhookSecret, cfg.Polling.AllowedUpdates); err != nil {
			return fmt.Errorf("failed to set Telegram webhook: %w", err)
		}
		log.Info("Telegram webhook set to %s", cfg.Telegram.WebhookURL)
	} else {
		// Режим Long Polling
		log.Info("Using Long Polling mode")

		if err := a.telegram.DeleteWebhook(false); err != nil {
			log.Warn("Failed to delete webhook (may not exist): %v", err)
		}

		poller = worker.NewPoller(a.client, dispatch, a.store, log, pollerConfig(cfg.Polling))
		if a.metrics != nil {
			poller.SetMetrics(a.metrics)
		}
		cursorReader = poller

		checkpointer = worker.NewCheckpointer(
			poller,
			a.store,
			log,
			time.Duration(cfg.Checkpoint.Interval)*time.Second,
		)
		if err := checkpointer.Start(); err != nil {
			return err
		}

		go func() {
			pollErrCh <- poller.Run(ctx)
		}()
		log.Info("Telegram long polling started")
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if a.metrics != nil {
		r.Use(middleware.MetricsMiddleware(a.metrics))
		log.Info("HTTP metrics middleware enabled")
	}

	// Публичные endpoints
	r.HandleFunc("/health", health.NewHandler(mode, cursorReader).Handle).Methods(http.MethodGet)
	if mode == modeWebhook {
		webhookHandler := telegram_webhook.NewHandler(dispatch, cfg.Telegram.WebhookSecret, log)
		r.HandleFunc("/webhook/telegram", webhookHandler.Handle).Methods(http.MethodPost)
	}

	// Metrics endpoint (публичный)
	if a.metrics != nil {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API v1 endpoints
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/messages", send_message.NewHandler(a.telegram, log).Handle).Methods(http.MethodPost)
	api.HandleFunc("/commands/publish", publish_commands.NewHandler(a.registry, a.telegram, log).Handle).Methods(http.MethodPost)
	if poller != nil {
		api.HandleFunc("/cursor", get_cursor.NewHandler(poller, a.store, log).Handle).Methods(http.MethodGet)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	// Ожидаем сигнал завершения или падение одного из компонентов
	var runErr error
	pollerStopped := poller == nil
	select {
	case <-ctx.Done():
		log.Info("Shutting down...")
	case err := <-pollErrCh:
		pollerStopped = true
		if err != nil {
			runErr = fmt.Errorf("long polling stopped: %w", err)
			log.Error("Long polling stopped: %v", err)
		}
	case err := <-serverErrCh:
		runErr = fmt.Errorf("server failed: %w", err)
		log.Error("Server failed: %v", err)
	}
	stop()

	// Останавливаем опрос ПЕРЕД сервером, чтобы последний курсор попал в хранилище
	if !pollerStopped {
		<-pollErrCh
		log.Info("Telegram long polling stopped")
	}
	if checkpointer != nil {
		checkpointer.Stop()
		log.Info("Cursor checkpointer stopped")
	}

	// Graceful shutdown HTTP сервера
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")

	return runErr
}

func pollerConfig(cfg config.PollingConfig) worker.PollerConfig {
	mode := worker.StartupDiscard
	if cfg.StartupMode == config.StartupModeResume {
		mode = worker.StartupResume
	}

	return worker.PollerConfig{
		Limit:           cfg.Limit,
		Timeout:         time.Duration(cfg.Timeout) * time.Second,
		AllowedUpdates:  cfg.AllowedUpdates,
		StartupMode:     mode,
		RetryBackoff:    time.Duration(cfg.RetryBackoffMs) * time.Millisecond,
		MaxRetryBackoff: time.Duration(cfg.MaxRetryBackoffMs) * time.Millisecond,
	}
}
