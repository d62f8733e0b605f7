package get_cursor

import (
	"net/http"

	"github.com/m04kA/SMC-BotCore/internal/api/handlers"
)

// CursorResponse состояние курсора опроса
type CursorResponse struct {
	InstanceID   string `json:"instance_id"`
	NextUpdateID int    `json:"next_update_id"`
	StoredCursor *int   `json:"stored_next_update_id,omitempty"`
}

type Handler struct {
	poller Poller
	store  CursorStore
	logger Logger
}

func NewHandler(poller Poller, store CursorStore, logger Logger) *Handler {
	return &Handler{
		poller: poller,
		store:  store,
		logger: logger,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	response := &CursorResponse{
		InstanceID:   h.poller.InstanceID(),
		NextUpdateID: h.poller.Cursor(),
	}

	stored, found, err := h.store.Load(r.Context())
	if err != nil {
		h.logger.Error("Failed to load stored cursor: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	if found {
		response.StoredCursor = &stored
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
