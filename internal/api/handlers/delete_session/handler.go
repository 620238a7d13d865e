package delete_session

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AllocationService/internal/api/handlers"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/allocation-sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	if err := h.service.Delete(sessionID); err != nil {
		h.logger.Warn("DELETE /allocation-sessions/{id} - Failed to delete session: session_id=%s, error=%v", sessionID, err)
		handlers.RespondWorkflowError(w, err)
		return
	}

	h.logger.Info("DELETE /allocation-sessions/{id} - Session deleted: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
