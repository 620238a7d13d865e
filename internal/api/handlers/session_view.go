package handlers

import (
	"github.com/m04kA/SMC-AllocationService/internal/domain"
	allocationWorkflow "github.com/m04kA/SMC-AllocationService/internal/usecase/allocation_workflow"
)

// SessionResponse состояние экрана распределения для отрисовки клиентом
type SessionResponse struct {
	SessionID            string                `json:"sessionId"`
	State                string                `json:"state"`
	Busy                 BusyResponse          `json:"busy"`
	Empty                bool                  `json:"empty"`
	Appointments         []domain.Appointment  `json:"appointments"`
	Groups               []GroupResponse       `json:"groups"`
	SelectedAppointment  *domain.Appointment   `json:"selectedAppointment,omitempty"`
	Employees            []EmployeeResponse    `json:"employees,omitempty"`
	PickedEmployeeID     *int64                `json:"pickedEmployeeId,omitempty"`
	CanRequestAllocation bool                  `json:"canRequestAllocation"`
	CanConfirm           bool                  `json:"canConfirm"`
	Notification         *NotificationResponse `json:"notification,omitempty"`
}

type BusyResponse struct {
	Loading           bool `json:"loading"`
	FetchingDetails   bool `json:"fetchingDetails"`
	FetchingEmployees bool `json:"fetchingEmployees"`
	Allocating        bool `json:"allocating"`
}

// GroupResponse записи одного клиента
type GroupResponse struct {
	Key            string               `json:"key"`
	CustomerID     *int64               `json:"customerId,omitempty"`
	CustomerName   string               `json:"customerName,omitempty"`
	CustomerEmail  string               `json:"customerEmail,omitempty"`
	TotalCount     int                  `json:"totalCount"`
	ShowCountBadge bool                 `json:"showCountBadge"`
	Appointments   []domain.Appointment `json:"appointments"`
}

// EmployeeResponse сотрудник в списке выбора исполнителя
type EmployeeResponse struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName"`
	FullName    string `json:"fullName,omitempty"`
	Email       string `json:"email"`
	Role        string `json:"role,omitempty"`
	Enabled     *bool  `json:"enabled,omitempty"`
	Picked      bool   `json:"picked"`
}

type NotificationResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// FromSessionView конвертирует снимок сессии в HTTP ответ
func FromSessionView(sessionID string, v allocationWorkflow.View) *SessionResponse {
	resp := &SessionResponse{
		SessionID: sessionID,
		State:     string(v.State),
		Busy: BusyResponse{
			Loading:           v.Busy.Loading,
			FetchingDetails:   v.Busy.FetchingDetails,
			FetchingEmployees: v.Busy.FetchingEmployees,
			Allocating:        v.Busy.Allocating,
		},
		Empty:                len(v.Appointments) == 0 && !v.Busy.Loading,
		Appointments:         v.Appointments,
		Groups:               make([]GroupResponse, 0, len(v.Groups)),
		SelectedAppointment:  v.SelectedAppointment,
		PickedEmployeeID:     v.PickedEmployeeID,
		CanRequestAllocation: v.CanRequestAllocation,
		CanConfirm:           v.CanConfirm,
	}

	if resp.Appointments == nil {
		resp.Appointments = []domain.Appointment{}
	}

	for i := range v.Groups {
		g := &v.Groups[i]
		resp.Groups = append(resp.Groups, GroupResponse{
			Key:            g.Key,
			CustomerID:     g.CustomerID,
			CustomerName:   g.CustomerName,
			CustomerEmail:  g.CustomerEmail,
			TotalCount:     g.TotalCount,
			ShowCountBadge: g.ShowCountBadge(),
			Appointments:   g.Appointments,
		})
	}

	if v.Employees != nil {
		resp.Employees = make([]EmployeeResponse, 0, len(v.Employees))
		for i := range v.Employees {
			u := &v.Employees[i]
			resp.Employees = append(resp.Employees, EmployeeResponse{
				ID:          u.ID,
				DisplayName: u.DisplayName(),
				FullName:    u.FullName,
				Email:       u.Email,
				Role:        u.Role.String(),
				Enabled:     u.Enabled,
				Picked:      v.PickedEmployeeID != nil && *v.PickedEmployeeID == u.ID,
			})
		}
	}

	if v.Notification != nil {
		resp.Notification = &NotificationResponse{
			Kind:    string(v.Notification.Kind),
			Message: v.Notification.Message,
		}
	}

	return resp
}
