package start_message

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/m04kA/SMC-BotCore/internal/domain"
	"github.com/m04kA/SMC-BotCore/internal/keyboard"
)

// TelegramService интерфейс для работы с Telegram Bot API
type TelegramService interface {
	ReplyKeyboard(source *domain.Message, text string, layout keyboard.Layout) *domain.Message
}

// CommandRegistry источник меню команд
type CommandRegistry interface {
	Descriptions() []tgbotapi.BotCommand
}
