package allocation_workflow

import "github.com/m04kA/SMC-AllocationService/internal/domain"

// State состояние экрана распределения
type State string

const (
	StateIdle               State = "IDLE"
	StateLoading            State = "LOADING"
	StateReady              State = "READY"
	StateDetailOpen         State = "DETAIL_OPEN"
	StateEmployeePickerOpen State = "EMPLOYEE_PICKER_OPEN"
	StateAllocating         State = "ALLOCATING"
)

// NotificationKind тип уведомления
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification одно временное уведомление сессии
type Notification struct {
	Kind    NotificationKind
	Message string
}

// Busy индикаторы выполняющихся шагов
type Busy struct {
	Loading           bool
	FetchingDetails   bool
	FetchingEmployees bool
	Allocating        bool
}

// Settings параметры процесса распределения
type Settings struct {
	ApprovedStatus              domain.AppointmentStatus
	UpdateStatusAfterAllocation bool
	InProgressNote              string
}

// View снимок состояния сессии для отрисовки
type View struct {
	State                State
	Busy                 Busy
	Appointments         []domain.Appointment
	Groups               []domain.CustomerGroup
	SelectedAppointment  *domain.Appointment
	Employees            []domain.User
	PickedEmployeeID     *int64
	CanRequestAllocation bool
	CanConfirm           bool
	Notification         *Notification
}
