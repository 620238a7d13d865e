package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AllocationService/internal/service/sessions"
	allocationWorkflow "github.com/m04kA/SMC-AllocationService/internal/usecase/allocation_workflow"
)

const (
	msgSessionNotFound    = "сессия не найдена"
	msgStepInProgress     = "предыдущий шаг ещё выполняется"
	msgInvalidTransition  = "действие недоступно в текущем состоянии"
	msgNoEmployeeSelected = "сотрудник не выбран"
	msgUnknownEmployee    = "сотрудник недоступен для назначения"
)

// RespondWorkflowError отвечает на ошибку сессии и возвращает HTTP статус.
// Для неизвестных ошибок отвечает 500
func RespondWorkflowError(w http.ResponseWriter, err error) int {
	switch {
	case errors.Is(err, sessions.ErrSessionNotFound):
		RespondNotFound(w, msgSessionNotFound)
		return http.StatusNotFound

	case errors.Is(err, allocationWorkflow.ErrBusy):
		RespondConflict(w, msgStepInProgress)
		return http.StatusConflict

	case errors.Is(err, allocationWorkflow.ErrInvalidTransition):
		RespondConflict(w, msgInvalidTransition)
		return http.StatusConflict

	case errors.Is(err, allocationWorkflow.ErrNoEmployeeSelected):
		RespondBadRequest(w, msgNoEmployeeSelected)
		return http.StatusBadRequest

	case errors.Is(err, allocationWorkflow.ErrUnknownEmployee):
		RespondBadRequest(w, msgUnknownEmployee)
		return http.StatusBadRequest

	default:
		RespondInternalError(w)
		return http.StatusInternalServerError
	}
}
