package allocation_workflow

type phase int

const (
	phaseIdle phase = iota
	phaseReady
	phaseDetailOpen
	phasePickerOpen
)

type action string

const (
	actionLoad              action = "load"
	actionSelectAppointment action = "select_appointment"
	actionCloseDetails      action = "close_details"
	actionRequestAllocation action = "request_allocation"
	actionPickEmployee      action = "pick_employee"
	actionClosePicker       action = "close_picker"
	actionConfirm           action = "confirm"
)

// operation удалённый шаг, выполняющийся в сессии
type operation int

const (
	opNone operation = iota
	opLoad
	opFetchDetails
	opFetchEmployees
	opAllocate
)

var transitionMap = map[action][]phase{
	actionLoad:              {phaseIdle, phaseReady},
	actionSelectAppointment: {phaseReady},
	actionCloseDetails:      {phaseDetailOpen},
	actionRequestAllocation: {phaseDetailOpen},
	actionPickEmployee:      {phasePickerOpen},
	actionClosePicker:       {phasePickerOpen},
	actionConfirm:           {phasePickerOpen},
}

func validTransition(a action, from phase) bool {
	allowed, ok := transitionMap[a]
	if !ok {
		return false
	}
	for _, p := range allowed {
		if p == from {
			return true
		}
	}
	return false
}
