package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/m04kA/SMC-BotCore/internal/integrations/botapi"
	"github.com/m04kA/SMC-BotCore/pkg/logger"
)

// Poller цикл long polling обновлений
// При старте пропускает накопившиеся обновления (или продолжает с сохранённого курсора),
// затем запрашивает и обрабатывает новые обновления по одному в порядке ID
type Poller struct {
	client  UpdatesClient
	handler UpdateHandler
	store   CursorStore
	logger  Logger
	metrics Metrics
	cfg     PollerConfig

	instanceID  string
	cursor      atomic.Int64
	initialized bool
}

// NewPoller создает цикл опроса
// store может быть nil, тогда режим StartupResume работает как StartupDiscard
func NewPoller(client UpdatesClient, handler UpdateHandler, store CursorStore, log Logger, cfg PollerConfig) *Poller {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.Timeout < 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.StartupMode == "" {
		cfg.StartupMode = StartupDiscard
	}
	if cfg.RetryBackoff > 0 && cfg.MaxRetryBackoff <= 0 {
		cfg.MaxRetryBackoff = DefaultMaxRetryBackoff
	}

	return &Poller{
		client:     client,
		handler:    handler,
		store:      store,
		logger:     log,
		cfg:        cfg,
		instanceID: uuid.NewString(),
	}
}

// SetMetrics устанавливает сборщик метрик
func (p *Poller) SetMetrics(m Metrics) {
	p.metrics = m
}

// InstanceID возвращает ID экземпляра опроса
func (p *Poller) InstanceID() string {
	return p.instanceID
}

// Cursor возвращает ID следующего запрашиваемого обновления
// Безопасно вызывать из других горутин
func (p *Poller) Cursor() int {
	return int(p.cursor.Load())
}

// Init устанавливает начальный курсор
// Ошибка хранилища курсора возвращается как ErrInit, ошибка запроса как ErrFetch
func (p *Poller) Init(ctx context.Context) error {
	p.client.EnsureReadTimeout(p.cfg.Timeout + readTimeoutMargin)

	if p.cfg.StartupMode == StartupResume && p.store != nil {
		cursor, found, err := p.store.Load(ctx)
		if err != nil {
			return fmt.Errorf("%w: load cursor: %v", ErrInit, err)
		}
		if found {
			p.setCursor(cursor)
			p.initialized = true
			p.logger.Info("Poller %s resumed from update %d", p.instanceID, cursor)
			return nil
		}
		p.logger.Info("Poller %s found no stored cursor, discarding backlog", p.instanceID)
	}

	// offset -1 подтверждает всё, кроме последнего обновления, которое пропускается курсором
	updates, err := p.client.GetUpdates(ctx, botapi.UpdatesRequest{
		Offset:         -1,
		Limit:          1,
		Timeout:        0,
		AllowedUpdates: p.cfg.AllowedUpdates,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetch, err)
	}

	for _, update := range updates {
		p.advance(update.UpdateID)
	}

	p.initialized = true
	p.logger.Info("Poller %s discarded backlog, next update %d", p.instanceID, p.Cursor())

	return nil
}

// PollOnce выполняет один запрос getUpdates и обрабатывает полученные обновления
// Курсор сдвигается перед обработкой каждого обновления. Ошибка обработки
// прерывает пачку, следующий запрос начнётся с первого необработанного обновления
func (p *Poller) PollOnce(ctx context.Context) error {
	start := time.Now()

	updates, err := p.client.GetUpdates(ctx, botapi.UpdatesRequest{
		Offset:         p.Cursor(),
		Limit:          p.cfg.Limit,
		Timeout:        p.cfg.Timeout,
		AllowedUpdates: p.cfg.AllowedUpdates,
	})
	if p.metrics != nil {
		p.metrics.ObserveFetch(time.Since(start), len(updates), err)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetch, err)
	}

	if len(updates) > 0 {
		p.logger.Debug("Poller %s fetched %d updates from %d", p.instanceID, len(updates), p.Cursor())
	}

	for _, update := range updates {
		p.advance(update.UpdateID)

		if err := p.handler.HandleUpdate(ctx, update); err != nil {
			if p.metrics != nil {
				p.metrics.IncDispatchFailure()
			}
			return fmt.Errorf("%w: update %d: %v", ErrDispatch, update.UpdateID, err)
		}
	}

	return nil
}

// Run запускает цикл опроса до отмены контекста
// Ошибки запроса логируются и повторяются бесконечно. Возвращает nil при отмене
// контекста и ErrInit, если не удалось прочитать сохранённый курсор
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("Starting Telegram long polling (instance %s, limit %d, timeout %s)",
		p.instanceID, p.cfg.Limit, p.cfg.Timeout)

	failures := 0

	for !p.initialized {
		err := p.Init(ctx)
		if err == nil {
			break
		}
		if errors.Is(err, ErrInit) {
			return err
		}
		if ctx.Err() != nil {
			p.logger.Info("Stopping Telegram long polling...")
			return nil
		}

		failures++
		p.logger.Error("Failed to initialize polling cursor: %v", err)
		if !p.wait(ctx, p.backoff(failures)) {
			p.logger.Info("Stopping Telegram long polling...")
			return nil
		}
	}

	failures = 0

	for {
		if ctx.Err() != nil {
			p.logger.Info("Stopping Telegram long polling...")
			return nil
		}

		err := p.PollOnce(ctx)
		switch {
		case err == nil:
			failures = 0
		case ctx.Err() != nil:
			p.logger.Info("Stopping Telegram long polling...")
			return nil
		case errors.Is(err, ErrDispatch):
			failures = 0
			p.logger.Error("Failed to handle update batch: %v", err)
		default:
			failures++
			p.logger.Error("Failed to fetch updates (attempt %d): %v", failures, err)
			if !p.wait(ctx, p.backoff(failures)) {
				p.logger.Info("Stopping Telegram long polling...")
				return nil
			}
		}
	}
}

// advance сдвигает курсор за обновление id, курсор не уменьшается
func (p *Poller) advance(id int) {
	if next := id + 1; next > p.Cursor() {
		p.setCursor(next)
	}
}

func (p *Poller) setCursor(cursor int) {
	p.cursor.Store(int64(cursor))
	if p.metrics != nil {
		p.metrics.SetCursor(cursor)
	}
}

// backoff возвращает паузу после failures ошибок подряд
func (p *Poller) backoff(failures int) time.Duration {
	if p.cfg.RetryBackoff <= 0 || failures <= 0 {
		return 0
	}

	d := p.cfg.RetryBackoff
	for i := 1; i < failures && d < p.cfg.MaxRetryBackoff; i++ {
		d *= 2
	}

	return min(d, p.cfg.MaxRetryBackoff)
}

// wait ждёт d или отмены контекста, false при отмене
func (p *Poller) wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
