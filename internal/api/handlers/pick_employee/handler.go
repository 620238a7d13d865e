package pick_employee

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AllocationService/internal/api/handlers"
)

const msgInvalidEmployeeID = "некорректный ID сотрудника"

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

// Handle PUT /api/v1/allocation-sessions/{sessionId}/employees/{employeeId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil || employeeID <= 0 {
		h.logger.Warn("PUT /allocation-sessions/{id}/employees/{id} - Invalid employee ID: %s", vars["employeeId"])
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	session, err := h.service.Get(sessionID)
	if err != nil {
		h.logger.Warn("PUT /allocation-sessions/{id}/employees/{id} - Session not available: session_id=%s, error=%v", sessionID, err)
		handlers.RespondWorkflowError(w, err)
		return
	}

	if err := session.Controller.PickEmployee(employeeID); err != nil {
		h.logger.Warn("PUT /allocation-sessions/{id}/employees/{id} - Rejected: session_id=%s, employee_id=%d, error=%v",
			sessionID, employeeID, err)
		handlers.RespondWorkflowError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromSessionView(session.ID, session.Controller.TakeView()))
}
