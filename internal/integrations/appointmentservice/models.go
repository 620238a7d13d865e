package appointmentservice

// PartyPayload вложенный объект клиента/сотрудника в ответе бэкенда
type PartyPayload struct {
	ID       *int64 `json:"id,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
}

// AppointmentPayload запись в том виде, в каком её присылает бэкенд.
// Данные клиента и сотрудника приходят вложенными объектами или плоскими полями,
// код услуги в поле service или serviceType
type AppointmentPayload struct {
	ID            int64  `json:"id"`
	Date          string `json:"date,omitempty"`
	Time          string `json:"time,omitempty"`
	VehicleType   string `json:"vehicleType,omitempty"`
	VehicleNumber string `json:"vehicleNumber,omitempty"`
	Service       string `json:"service,omitempty"`
	ServiceType   string `json:"serviceType,omitempty"`
	Instructions  string `json:"instructions,omitempty"`
	Status        string `json:"status,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
	UpdatedAt     string `json:"updatedAt,omitempty"`

	Customer      *PartyPayload `json:"customer,omitempty"`
	CustomerID    *int64        `json:"customerId,omitempty"`
	CustomerName  string        `json:"customerName,omitempty"`
	CustomerEmail string        `json:"customerEmail,omitempty"`
	CustomerPhone string        `json:"customerPhone,omitempty"`

	Employee      *PartyPayload `json:"employee,omitempty"`
	EmployeeID    *int64        `json:"employeeId,omitempty"`
	EmployeeName  string        `json:"employeeName,omitempty"`
	EmployeeEmail string        `json:"employeeEmail,omitempty"`
}

// AllocateRequest тело запроса назначения сотрудника
type AllocateRequest struct {
	EmployeeID int64 `json:"employeeId"`
}

// UpdateStatusRequest тело запроса смены статуса
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// ErrorResponse модель ошибки бэкенда
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}
