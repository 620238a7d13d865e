package list_allocations

import "time"

// AllocationResponse запись журнала назначений
type AllocationResponse struct {
	ID            int64     `json:"id"`
	AppointmentID int64     `json:"appointmentId"`
	EmployeeID    int64     `json:"employeeId"`
	EmployeeName  string    `json:"employeeName"`
	StatusUpdated bool      `json:"statusUpdated"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ListResponse struct {
	Allocations []AllocationResponse `json:"allocations"`
}
