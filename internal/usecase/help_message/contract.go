package help_message

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/m04kA/SMC-BotCore/internal/domain"
)

// TelegramService интерфейс для работы с Telegram Bot API
type TelegramService interface {
	Reply(source *domain.Message, text string) *domain.Message
}

// CommandRegistry источник меню команд
type CommandRegistry interface {
	Descriptions() []tgbotapi.BotCommand
}
