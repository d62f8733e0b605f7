package health

import (
	"net/http"

	"github.com/m04kA/SMC-BotCore/internal/api/handlers"
)

// CursorReader источник текущего курсора опроса
type CursorReader interface {
	Cursor() int
}

type Handler struct {
	mode   string
	cursor CursorReader
}

// NewHandler создает health handler
// cursor может быть nil в режиме webhook
func NewHandler(mode string, cursor CursorReader) *Handler {
	return &Handler{
		mode:   mode,
		cursor: cursor,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status": "healthy",
		"mode":   h.mode,
	}

	if h.cursor != nil {
		response["next_update_id"] = h.cursor.Cursor()
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
