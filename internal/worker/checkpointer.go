package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/m04kA/SMC-BotCore/pkg/logger"
)

const (
	// DefaultCheckpointInterval интервал сохранения курсора
	DefaultCheckpointInterval = 5 * time.Second

	checkpointTimeout = 10 * time.Second
)

// Checkpointer периодически сохраняет курсор опроса в хранилище
// Сохраняет только изменившееся значение, последний раз при остановке
type Checkpointer struct {
	source    CursorSource
	store     CursorStore
	logger    Logger
	interval  time.Duration
	scheduler *gocron.Scheduler

	mu        sync.Mutex
	lastSaved int
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewCheckpointer создает планировщик сохранения курсора
func NewCheckpointer(source CursorSource, store CursorStore, log Logger, interval time.Duration) *Checkpointer {
	if log == nil {
		log = logger.Nop()
	}
	if interval <= 0 {
		interval = DefaultCheckpointInterval
	}

	ctx, cancel := context.WithCancel(context.Background())

	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()

	return &Checkpointer{
		source:    source,
		store:     store,
		logger:    log,
		interval:  interval,
		scheduler: scheduler,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start запускает периодическое сохранение курсора
func (c *Checkpointer) Start() error {
	if _, err := c.scheduler.Every(c.interval).Do(c.runCheckpoint); err != nil {
		return fmt.Errorf("%w: %v", ErrSchedule, err)
	}

	c.logger.Info("Starting cursor checkpointer (interval: %s)", c.interval)
	c.scheduler.StartAsync()

	return nil
}

// Stop останавливает планировщик и сохраняет курсор последний раз
func (c *Checkpointer) Stop() {
	c.logger.Info("Stopping cursor checkpointer")
	c.scheduler.Stop()
	c.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), checkpointTimeout)
	defer cancel()

	if err := c.Checkpoint(ctx); err != nil {
		c.logger.Error("Failed to save final cursor: %v", err)
		return
	}

	c.logger.Info("Cursor checkpointer stopped")
}

// Checkpoint сохраняет текущий курсор, если он изменился с прошлого сохранения
// Нулевой курсор (ещё не инициализирован) не сохраняется
func (c *Checkpointer) Checkpoint(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cursor := c.source.Cursor()
	if cursor <= 0 || cursor == c.lastSaved {
		return nil
	}

	if err := c.store.Save(ctx, cursor, c.source.InstanceID()); err != nil {
		return fmt.Errorf("save cursor %d: %w", cursor, err)
	}

	c.lastSaved = cursor
	return nil
}

// runCheckpoint вызывается планировщиком gocron
func (c *Checkpointer) runCheckpoint() {
	ctx, cancel := context.WithTimeout(c.ctx, checkpointTimeout)
	defer cancel()

	if err := c.Checkpoint(ctx); err != nil {
		c.logger.Error("Failed to checkpoint polling cursor: %v", err)
	}
}
