package domain

import "time"

// AppointmentStatus статус записи на обслуживание
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "PENDING"
	StatusConfirmed  AppointmentStatus = "CONFIRMED"
	StatusApproved   AppointmentStatus = "APPROVED"
	StatusInProgress AppointmentStatus = "IN_PROGRESS"
	StatusCompleted  AppointmentStatus = "COMPLETED"
	StatusCancelled  AppointmentStatus = "CANCELLED"

	// StatusApproveFilter код фильтра, которым бэкенд выдаёт одобренные записи.
	// В перечислении статусов такого значения нет, поэтому фильтр вынесен в конфигурацию
	StatusApproveFilter AppointmentStatus = "APPROVE"
)

// Party вложенный объект клиента или сотрудника
type Party struct {
	ID       *int64 `json:"id,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Appointment каноническое представление записи после нормализации.
// Поля Customer*/Employee* всегда заполнены из вложенного объекта, если он есть,
// иначе из плоских полей ответа бэкенда
type Appointment struct {
	ID            int64             `json:"id"`
	Date          string            `json:"date,omitempty"` // "2025-10-15"
	Time          string            `json:"time,omitempty"` // "10:00:00"
	VehicleType   string            `json:"vehicleType,omitempty"`
	VehicleNumber string            `json:"vehicleNumber,omitempty"`
	Service       string            `json:"service,omitempty"`
	ServiceType   string            `json:"serviceType,omitempty"`
	Instructions  string            `json:"instructions,omitempty"`
	Status        AppointmentStatus `json:"status,omitempty"`
	CreatedAt     string            `json:"createdAt,omitempty"`
	UpdatedAt     string            `json:"updatedAt,omitempty"`

	Customer      *Party `json:"customer,omitempty"`
	CustomerID    *int64 `json:"customerId,omitempty"`
	CustomerName  string `json:"customerName,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	CustomerPhone string `json:"customerPhone,omitempty"`

	Employee      *Party `json:"employee,omitempty"`
	EmployeeID    *int64 `json:"employeeId,omitempty"`
	EmployeeName  string `json:"employeeName,omitempty"`
	EmployeeEmail string `json:"employeeEmail,omitempty"`
}

// GroupingKey ключ группировки: email вложенного клиента, затем плоский email, затем anonymous
func (a *Appointment) GroupingKey() string {
	if a.Customer != nil && a.Customer.Email != "" {
		return a.Customer.Email
	}
	if a.CustomerEmail != "" {
		return a.CustomerEmail
	}
	return AnonymousCustomerKey
}

// ResolvedCustomer данные клиента с приоритетом вложенного объекта
func (a *Appointment) ResolvedCustomer() (id *int64, name string, email string) {
	if a.Customer != nil {
		return a.Customer.ID, a.Customer.FullName, a.Customer.Email
	}
	return a.CustomerID, a.CustomerName, a.CustomerEmail
}

// IsAssigned true, если записи уже назначен сотрудник
func (a *Appointment) IsAssigned() bool {
	return a.EmployeeID != nil
}

// ScheduledAt дата и время записи; ошибка, если бэкенд прислал их в неожиданном формате
func (a *Appointment) ScheduledAt() (time.Time, error) {
	return time.Parse(DateFormat+" "+TimeFormat, a.Date+" "+a.Time)
}
