package list_allocations

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AllocationService/internal/api/handlers"
	"github.com/m04kA/SMC-AllocationService/internal/domain"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidEmployeeID    = "некорректный ID сотрудника"
	msgInvalidLimit         = "некорректный limit"
)

type Handler struct {
	repo   AllocationRepository
	logger Logger
}

func NewHandler(repo AllocationRepository, logger Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// Handle GET /api/v1/allocations?appointmentId=&employeeId=&limit=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var filter domain.AllocationFilter

	if raw := query.Get("appointmentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("GET /allocations - Invalid appointmentId: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidAppointmentID)
			return
		}
		filter.AppointmentID = &id
	}

	if raw := query.Get("employeeId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("GET /allocations - Invalid employeeId: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidEmployeeID)
			return
		}
		filter.EmployeeID = &id
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || limit == 0 {
			h.logger.Warn("GET /allocations - Invalid limit: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		filter.Limit = limit
	}

	records, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /allocations - Failed to list allocations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	resp := ListResponse{Allocations: make([]AllocationResponse, 0, len(records))}
	for _, rec := range records {
		resp.Allocations = append(resp.Allocations, AllocationResponse{
			ID:            rec.ID,
			AppointmentID: rec.AppointmentID,
			EmployeeID:    rec.EmployeeID,
			EmployeeName:  rec.EmployeeName,
			StatusUpdated: rec.StatusUpdated,
			CreatedAt:     rec.CreatedAt,
		})
	}

	h.logger.Info("GET /allocations - Allocations retrieved: count=%d", len(resp.Allocations))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
