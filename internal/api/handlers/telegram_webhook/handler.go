package telegram_webhook

import (
	"crypto/subtle"
	"io"
	"net/http"
	"sync"

	"github.com/m04kA/SMC-BotCore/internal/api/handlers"
	"github.com/m04kA/SMC-BotCore/internal/domain"
)

const (
	msgInvalidRequestBody = "неверный формат тела запроса"
	msgForbidden          = "неверный секрет webhook"

	// secretTokenHeader заголовок с секретом, заданным в setWebhook
	secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

	maxUpdateSize = 1 << 20
)

// Handler принимает обновления от Telegram
// Telegram доставляет webhook по нескольким соединениям параллельно, обновления обрабатываются по одному
type Handler struct {
	dispatcher  UpdateHandler
	secretToken string
	logger      Logger

	mu sync.Mutex
}

// NewHandler создает обработчик webhook
// Если secretToken пустой, заголовок секрета не проверяется
func NewHandler(dispatcher UpdateHandler, secretToken string, logger Logger) *Handler {
	return &Handler{
		dispatcher:  dispatcher,
		secretToken: secretToken,
		logger:      logger,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.secretToken != "" {
		got := r.Header.Get(secretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.secretToken)) != 1 {
			h.logger.Warn("Rejected telegram webhook with invalid secret token")
			handlers.RespondError(w, http.StatusForbidden, msgForbidden)
			return
		}
	}

	// Парсим webhook update от Telegram
	body, err := io.ReadAll(io.LimitReader(r.Body, maxUpdateSize))
	if err != nil {
		h.logger.Warn("Failed to read telegram webhook: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	update, err := domain.DecodeUpdate(body)
	if err != nil {
		h.logger.Warn("Failed to decode telegram webhook: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Ошибка обработки не возвращается Telegram: иначе обновление будет доставлено повторно
	if err := h.dispatch(r, update); err != nil {
		h.logger.Error("Failed to handle update %d: %v", update.UpdateID, err)
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) dispatch(r *http.Request, update domain.Update) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.dispatcher.HandleUpdate(r.Context(), update)
}
