package domain

import "time"

// AllocationRecord запись журнала об успешном распределении
type AllocationRecord struct {
	ID            int64
	AppointmentID int64
	EmployeeID    int64
	EmployeeName  string
	// StatusUpdated false, если дополнительный перевод в IN_PROGRESS не удался
	StatusUpdated bool
	CreatedAt     time.Time
}

// AllocationFilter фильтр выборки журнала
type AllocationFilter struct {
	AppointmentID *int64
	EmployeeID    *int64
	Limit         uint64
}
