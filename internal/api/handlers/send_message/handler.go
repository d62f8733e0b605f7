package send_message

import (
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/m04kA/SMC-BotCore/internal/api/handlers"
	"github.com/m04kA/SMC-BotCore/internal/api/handlers/send_message/models"
	"github.com/m04kA/SMC-BotCore/internal/domain"
)

const (
	msgInvalidRequestBody = "неверный формат тела запроса"
	msgMissingChatID      = "необходимо указать chat_id"
	msgMissingContent     = "необходимо указать text или image_url"
	msgPhotoWithButtons   = "кнопки не поддерживаются для фото"
	msgSendFailed         = "telegram не принял сообщение"
)

type Handler struct {
	telegramService TelegramService
	logger          Logger
}

func NewHandler(telegramService TelegramService, logger Logger) *Handler {
	return &Handler{
		telegramService: telegramService,
		logger:          logger,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Парсинг request body
	var req models.SendMessageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("Failed to decode request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Валидация получателя и содержимого
	if req.ChatID == 0 {
		handlers.RespondBadRequest(w, msgMissingChatID)
		return
	}
	if req.Text == "" && req.ImageURL == "" {
		handlers.RespondBadRequest(w, msgMissingContent)
		return
	}
	if req.ImageURL != "" && len(req.Buttons) > 0 {
		handlers.RespondBadRequest(w, msgPhotoWithButtons)
		return
	}

	var msg *domain.Message
	if req.ImageURL != "" {
		msg = h.telegramService.SendPhoto(req.ChatID, req.TopicID, req.Text, tgbotapi.FileURL(req.ImageURL), req.ReplyToMessageID)
	} else {
		msg = h.telegramService.SendKeyboard(req.ChatID, req.TopicID, req.Text, req.Layout(), req.ReplyToMessageID)
	}

	// Причина ошибки уже залогирована сервисом
	if msg == nil {
		handlers.RespondBadGateway(w, msgSendFailed)
		return
	}

	h.logger.Info("Sent message %d to chat %d", msg.MessageID, req.ChatID)

	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainMessage(msg, req.TopicID))
}
