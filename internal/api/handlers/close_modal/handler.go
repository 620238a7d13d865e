package close_modal

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AllocationService/internal/api/handlers"
)

const msgUnknownModal = "неизвестное окно, допустимо details или picker"

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

// Handle POST /api/v1/allocation-sessions/{sessionId}/modals/{modal}/close
// Закрытие выбора сотрудника возвращает к карточке записи
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]
	modal := vars["modal"]

	if modal != ModalDetails && modal != ModalPicker {
		h.logger.Warn("POST /allocation-sessions/{id}/modals/{modal}/close - Unknown modal: %s", modal)
		handlers.RespondBadRequest(w, msgUnknownModal)
		return
	}

	session, err := h.service.Get(sessionID)
	if err != nil {
		h.logger.Warn("POST /allocation-sessions/{id}/modals/{modal}/close - Session not available: session_id=%s, error=%v", sessionID, err)
		handlers.RespondWorkflowError(w, err)
		return
	}

	if modal == ModalDetails {
		err = session.Controller.CloseDetails()
	} else {
		err = session.Controller.ClosePicker()
	}
	if err != nil {
		h.logger.Warn("POST /allocation-sessions/{id}/modals/{modal}/close - Rejected: session_id=%s, modal=%s, error=%v",
			sessionID, modal, err)
		handlers.RespondWorkflowError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromSessionView(session.ID, session.Controller.TakeView()))
}
