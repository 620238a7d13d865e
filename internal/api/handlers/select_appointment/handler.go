package select_appointment

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AllocationService/internal/api/handlers"
)

const msgInvalidAppointmentID = "некорректный ID записи"

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

// Handle POST /api/v1/allocation-sessions/{sessionId}/appointments/{appointmentId}/select
// Открывает карточку записи; ошибка загрузки приходит уведомлением в ответе
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil || appointmentID <= 0 {
		h.logger.Warn("POST /allocation-sessions/{id}/appointments/{id}/select - Invalid appointment ID: %s", vars["appointmentId"])
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	session, err := h.service.Get(sessionID)
	if err != nil {
		h.logger.Warn("POST /allocation-sessions/{id}/appointments/{id}/select - Session not available: session_id=%s, error=%v", sessionID, err)
		handlers.RespondWorkflowError(w, err)
		return
	}

	if err := session.Controller.SelectAppointment(r.Context(), appointmentID); err != nil {
		h.logger.Warn("POST /allocation-sessions/{id}/appointments/{id}/select - Rejected: session_id=%s, appointment_id=%d, error=%v",
			sessionID, appointmentID, err)
		handlers.RespondWorkflowError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromSessionView(session.ID, session.Controller.TakeView()))
}
