package telegram_webhook

import (
	"context"

	"github.com/m04kA/SMC-BotCore/internal/domain"
)

// UpdateHandler интерфейс диспетчера обновлений
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update domain.Update) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
