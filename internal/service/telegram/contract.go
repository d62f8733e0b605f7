package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// BotAPI интерфейс для Telegram Bot API
// Абстракция над tgbotapi.BotAPI для упрощения тестирования
type BotAPI interface {
	// Send отправляет запрос, результатом которого является сообщение
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)

	// Request выполняет запрос к Telegram API
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)

	// MakeRequest выполняет запрос с произвольными параметрами (нужен для message_thread_id)
	MakeRequest(endpoint string, params tgbotapi.Params) (*tgbotapi.APIResponse, error)

	// UploadFiles выполняет multipart запрос с файлами
	UploadFiles(endpoint string, params tgbotapi.Params, files []tgbotapi.RequestFile) (*tgbotapi.APIResponse, error)

	// GetChat получает информацию о чате
	GetChat(config tgbotapi.ChatInfoConfig) (tgbotapi.Chat, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс учёта ошибок Bot API
type Metrics interface {
	IncAPIFailure(operation string)
}
