package create_session

import (
	"net/http"

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

// Handle POST /api/v1/allocation-sessions
// Открывает экран распределения и сразу загружает одобренные записи
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Create(r.Context())
	if err != nil {
		h.logger.Error("POST /allocation-sessions - Failed to create session: %v", err)
		handlers.RespondWorkflowError(w, err)
		return
	}

	view := session.Controller.TakeView()
	h.logger.Info("POST /allocation-sessions - Session created: session_id=%s, appointments=%d",
		session.ID, len(view.Appointments))
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromSessionView(session.ID, view))
}
