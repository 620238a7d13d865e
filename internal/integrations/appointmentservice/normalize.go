package appointmentservice

import "github.com/m04kA/SMC-AllocationService/internal/domain"

// Normalize приводит запись бэкенда к каноническому виду.
// Вложенные customer/employee сохраняются, плоские поля заполняются из них,
// а при их отсутствии берутся из плоских полей ответа.
// Функция чистая и идемпотентная: повторная нормализация результата ничего не меняет
func Normalize(p AppointmentPayload) domain.Appointment {
	service := p.Service
	if service == "" {
		service = p.ServiceType
	}

	appt := domain.Appointment{
		ID:            p.ID,
		Date:          p.Date,
		Time:          p.Time,
		VehicleType:   p.VehicleType,
		VehicleNumber: p.VehicleNumber,
		Service:       service,
		ServiceType:   service,
		Instructions:  p.Instructions,
		Status:        domain.AppointmentStatus(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		CustomerPhone: p.CustomerPhone,
	}

	if p.Customer != nil {
		appt.Customer = toParty(p.Customer)
		appt.CustomerID = copyID(p.Customer.ID)
		appt.CustomerName = p.Customer.FullName
		appt.CustomerEmail = p.Customer.Email
	} else {
		appt.CustomerID = copyID(p.CustomerID)
		appt.CustomerName = p.CustomerName
		appt.CustomerEmail = p.CustomerEmail
	}

	if p.Employee != nil {
		appt.Employee = toParty(p.Employee)
		appt.EmployeeID = copyID(p.Employee.ID)
		appt.EmployeeName = p.Employee.FullName
		appt.EmployeeEmail = p.Employee.Email
	} else {
		appt.EmployeeID = copyID(p.EmployeeID)
		appt.EmployeeName = p.EmployeeName
		appt.EmployeeEmail = p.EmployeeEmail
	}

	return appt
}

// NormalizeList нормализует список, сохраняя порядок бэкенда
func NormalizeList(payloads []AppointmentPayload) []domain.Appointment {
	result := make([]domain.Appointment, 0, len(payloads))
	for _, p := range payloads {
		result = append(result, Normalize(p))
	}
	return result
}

func toParty(p *PartyPayload) *domain.Party {
	return &domain.Party{
		ID:       copyID(p.ID),
		FullName: p.FullName,
		Email:    p.Email,
	}
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
