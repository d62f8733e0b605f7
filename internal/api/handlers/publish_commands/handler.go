package publish_commands

import (
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/m04kA/SMC-BotCore/internal/api/handlers"
)

const msgPublishFailed = "telegram не принял меню команд"

// PublishResponse опубликованное меню команд
type PublishResponse struct {
	Commands []tgbotapi.BotCommand `json:"commands"`
}

type Handler struct {
	registry        CommandRegistry
	telegramService TelegramService
	logger          Logger
}

func NewHandler(registry CommandRegistry, telegramService TelegramService, logger Logger) *Handler {
	return &Handler{
		registry:        registry,
		telegramService: telegramService,
		logger:          logger,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	commands := h.registry.Descriptions()

	if !h.telegramService.PublishCommands(commands) {
		handlers.RespondBadGateway(w, msgPublishFailed)
		return
	}

	h.logger.Info("Published %d bot commands", len(commands))

	handlers.RespondJSON(w, http.StatusOK, &PublishResponse{Commands: commands})
}
