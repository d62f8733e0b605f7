package worker

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BotCore/internal/domain"
	"github.com/m04kA/SMC-BotCore/internal/integrations/botapi"
)

// UpdatesClient интерфейс получения обновлений от Telegram Bot API
type UpdatesClient interface {
	// GetUpdates выполняет запрос getUpdates
	GetUpdates(ctx context.Context, req botapi.UpdatesRequest) ([]domain.Update, error)

	// EnsureReadTimeout увеличивает таймаут HTTP клиента под long poll
	EnsureReadTimeout(d time.Duration)
}

// UpdateHandler интерфейс диспетчера обновлений
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update domain.Update) error
}

// CursorStore интерфейс хранилища курсора опроса
type CursorStore interface {
	// Load возвращает сохранённый курсор, false если курсора нет
	Load(ctx context.Context) (int, bool, error)

	// Save сохраняет курсор вместе с ID экземпляра, который его записал
	Save(ctx context.Context, cursor int, instanceID string) error
}

// CursorSource источник текущего курсора для сохранения
type CursorSource interface {
	Cursor() int
	InstanceID() string
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс метрик цикла опроса
type Metrics interface {
	ObserveFetch(duration time.Duration, updates int, err error)
	SetCursor(cursor int)
	IncDispatchFailure()
}
