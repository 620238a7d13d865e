package get_session

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

// Handle GET /api/v1/allocation-sessions/{sessionId}
// Уведомление отдаётся один раз и после этого сбрасывается
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.service.Get(sessionID)
	if err != nil {
		h.logger.Warn("GET /allocation-sessions/{id} - Session not available: session_id=%s, error=%v", sessionID, err)
		handlers.RespondWorkflowError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromSessionView(session.ID, session.Controller.TakeView()))
}
