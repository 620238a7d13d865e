package allocation_workflow

import (
	"context"

	"github.com/m04kA/SMC-AllocationService/internal/domain"
)

// AppointmentService интерфейс клиента бэкенда записей
type AppointmentService interface {
	GetByStatus(ctx context.Context, status domain.AppointmentStatus) ([]domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	AllocateToEmployee(ctx context.Context, appointmentID, employeeID int64) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, appointmentID int64, status domain.AppointmentStatus, note string) (*domain.Appointment, error)
	GetAvailableEmployees(ctx context.Context) ([]domain.User, error)
}

// AllocationJournal журнал успешных распределений (опционально)
type AllocationJournal interface {
	Create(ctx context.Context, record *domain.AllocationRecord) (*domain.AllocationRecord, error)
}

// Metrics учёт исходов распределения
type Metrics interface {
	IncAllocation(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
