package refresh_session

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

// Handle POST /api/v1/allocation-sessions/{sessionId}/refresh
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.service.Get(sessionID)
	if err != nil {
		h.logger.Warn("POST /allocation-sessions/{id}/refresh - Session not available: session_id=%s, error=%v", sessionID, err)
		handlers.RespondWorkflowError(w, err)
		return
	}

	if err := session.Controller.Load(r.Context()); err != nil {
		h.logger.Warn("POST /allocation-sessions/{id}/refresh - Refresh rejected: session_id=%s, error=%v", sessionID, err)
		handlers.RespondWorkflowError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromSessionView(session.ID, session.Controller.TakeView()))
}
