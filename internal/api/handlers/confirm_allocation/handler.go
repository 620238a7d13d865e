package confirm_allocation

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AllocationService/internal/api/handlers"
	allocationWorkflow "github.com/m04kA/SMC-AllocationService/internal/usecase/allocation_workflow"
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

// Handle POST /api/v1/allocation-sessions/{sessionId}/allocation-confirm
// Ошибка назначения на бэкенде не является ошибкой запроса:
// ответ 200, в уведомлении текст ошибки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.service.Get(sessionID)
	if err != nil {
		h.logger.Warn("POST /allocation-sessions/{id}/allocation-confirm - Session not available: session_id=%s, error=%v", sessionID, err)
		handlers.RespondWorkflowError(w, err)
		return
	}

	if err := session.Controller.ConfirmAllocation(r.Context()); err != nil {
		h.logger.Warn("POST /allocation-sessions/{id}/allocation-confirm - Rejected: session_id=%s, error=%v", sessionID, err)
		handlers.RespondWorkflowError(w, err)
		return
	}

	view := session.Controller.TakeView()
	if view.Notification != nil && view.Notification.Kind == allocationWorkflow.NotificationSuccess {
		h.logger.Info("POST /allocation-sessions/{id}/allocation-confirm - Allocated: session_id=%s", sessionID)
	}
	handlers.RespondJSON(w, http.StatusOK, handlers.FromSessionView(session.ID, view))
}
