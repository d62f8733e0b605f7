package send_message

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/m04kA/SMC-BotCore/internal/domain"
	"github.com/m04kA/SMC-BotCore/internal/keyboard"
)

// TelegramService интерфейс отправки сообщений через Telegram Bot API
type TelegramService interface {
	SendKeyboard(chatID int64, topic int, text string, layout keyboard.Layout, replyTo int) *domain.Message
	SendPhoto(chatID int64, topic int, caption string, photo tgbotapi.RequestFileData, replyTo int) *domain.Message
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
