package dispatcher

import (
	"context"

	"github.com/m04kA/SMC-BotCore/internal/domain"
)

// CommandRouter интерфейс реестра команд
type CommandRouter interface {
	// Dispatch вызывает обработчик команды, false если команда не зарегистрирована
	Dispatch(ctx context.Context, token string, msg *domain.Message) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс учёта обработанных команд
type Metrics interface {
	IncCommand(command, status string)
}
