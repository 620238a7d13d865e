package domain

import "github.com/m04kA/SMC-AllocationService/pkg/orderedmap"

// CustomerGroup записи одного клиента
type CustomerGroup struct {
	Key           string        `json:"key"`
	CustomerID    *int64        `json:"customerId,omitempty"`
	CustomerName  string        `json:"customerName,omitempty"`
	CustomerEmail string        `json:"customerEmail,omitempty"`
	TotalCount    int           `json:"totalCount"`
	Appointments  []Appointment `json:"appointments"`
}

// ShowCountBadge счётчик услуг показывается только для клиентов с несколькими записями
func (g *CustomerGroup) ShowCountBadge() bool {
	return g.TotalCount > 1
}

// GroupByCustomer разбивает записи на группы по клиенту за один проход.
// Порядок групп совпадает с порядком первого появления ключа,
// данные клиента берутся из первой записи группы
func GroupByCustomer(appointments []Appointment) []CustomerGroup {
	groups := orderedmap.New[string, *CustomerGroup]()

	for _, appt := range appointments {
		key := appt.GroupingKey()

		group, ok := groups.Get(key)
		if !ok {
			id, name, email := appt.ResolvedCustomer()
			group = &CustomerGroup{
				Key:           key,
				CustomerID:    id,
				CustomerName:  name,
				CustomerEmail: email,
			}
			groups.Set(key, group)
		}

		group.Appointments = append(group.Appointments, appt)
		group.TotalCount++
	}

	result := make([]CustomerGroup, 0, groups.Len())
	for _, g := range groups.Values() {
		result = append(result, *g)
	}
	return result
}
