package allocation_workflow

import "errors"

// Ошибки нарушения предусловий. Сбои бэкенда ошибками не являются:
// они превращаются в уведомление сессии
var (
	// ErrBusy возвращается, когда предыдущий шаг сессии ещё выполняется
	ErrBusy = errors.New("allocation_workflow: another step is in progress")

	// ErrInvalidTransition возвращается, когда действие недоступно в текущем состоянии
	ErrInvalidTransition = errors.New("allocation_workflow: action not allowed in current state")

	// ErrNoEmployeeSelected возвращается при подтверждении без выбранного сотрудника
	ErrNoEmployeeSelected = errors.New("allocation_workflow: no employee selected")

	// ErrUnknownEmployee возвращается при выборе сотрудника не из списка доступных
	ErrUnknownEmployee = errors.New("allocation_workflow: employee is not in the available list")
)
