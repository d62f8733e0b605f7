package publish_commands

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// CommandRegistry источник меню команд
type CommandRegistry interface {
	Descriptions() []tgbotapi.BotCommand
}

// TelegramService интерфейс публикации меню команд
type TelegramService interface {
	PublishCommands(commands []tgbotapi.BotCommand) bool
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
