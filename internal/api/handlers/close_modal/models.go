package close_modal

const (
	ModalDetails = "details"
	ModalPicker  = "picker"
)
