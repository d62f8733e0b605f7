package menu_callback

import (
	"context"

	"github.com/m04kA/SMC-BotCore/internal/domain"
)

// TelegramService интерфейс для работы с Telegram Bot API
type TelegramService interface {
	AnswerCallbackQuery(callbackQueryID, text string) bool
}

// CommandRegistry реестр команд
type CommandRegistry interface {
	Description(token string) (string, bool)
}

// CommandRunner выполняет команду с перехватом ошибок и паник обработчика
type CommandRunner interface {
	RunCommand(ctx context.Context, token string, msg *domain.Message) bool
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
