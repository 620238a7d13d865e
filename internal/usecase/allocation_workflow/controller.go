package allocation_workflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-AllocationService/internal/domain"
	appointmentClient "github.com/m04kA/SMC-AllocationService/internal/integrations/appointmentservice"
	"github.com/m04kA/SMC-AllocationService/pkg/metrics"
)

// Тексты уведомлений, когда бэкенд не прислал своего сообщения
const (
	msgLoadFailed      = "Failed to load approved appointments"
	msgDetailsFailed   = "Failed to load appointment details"
	msgEmployeesFailed = "Failed to load available employees"
	msgAllocateFailed  = "Failed to allocate appointment"
	msgAllocated       = "Appointment allocated to %s"
)

// Controller конечный автомат экрана распределения одного пользователя.
// Мьютекс не удерживается во время вызовов бэкенда: вместо этого выставляется
// inFlight, и любое изменяющее действие до завершения шага получает ErrBusy
type Controller struct {
	mu sync.Mutex

	service  AppointmentService
	journal  AllocationJournal
	metrics  Metrics
	logger   Logger
	settings Settings

	phase            phase
	inFlight         operation
	appointments     []domain.Appointment
	groups           []domain.CustomerGroup
	selected         *domain.Appointment
	employees        []domain.User
	pickedEmployeeID *int64
	notification     *Notification
	lastActivity     time.Time
}

// NewController создает контроллер в состоянии Idle. journal и metrics могут быть nil
func NewController(
	service AppointmentService,
	journal AllocationJournal,
	metrics Metrics,
	settings Settings,
	logger Logger,
) *Controller {
	return &Controller{
		service:      service,
		journal:      journal,
		metrics:      metrics,
		logger:       logger,
		settings:     settings,
		phase:        phaseIdle,
		appointments: []domain.Appointment{},
		groups:       []domain.CustomerGroup{},
		lastActivity: time.Now(),
	}
}

// Load загружает одобренные записи и перестраивает группы.
// При ошибке показывается уведомление, ранее отображённый список остаётся
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if err := c.begin(actionLoad, opLoad); err != nil {
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	c.runLoad(ctx)
	return nil
}

// SelectAppointment загружает детали записи и открывает карточку
func (c *Controller) SelectAppointment(ctx context.Context, appointmentID int64) error {
	c.mu.Lock()
	if err := c.begin(actionSelectAppointment, opFetchDetails); err != nil {
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	appt, err := c.service.GetByID(ctx, appointmentID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = opNone

	if err != nil {
		c.logger.Warn("SelectAppointment: failed to load appointment id=%d: %v", appointmentID, err)
		c.notifyError(err, msgDetailsFailed)
		return nil
	}

	c.selected = appt
	c.phase = phaseDetailOpen
	c.logger.Info("SelectAppointment: appointment id=%d opened", appointmentID)
	return nil
}

// CloseDetails закрывает карточку записи и сбрасывает выбор
func (c *Controller) CloseDetails() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(actionCloseDetails); err != nil {
		return err
	}

	c.resetSelection()
	c.phase = phaseReady
	return nil
}

// RequestAllocation загружает доступных сотрудников и открывает выбор исполнителя
func (c *Controller) RequestAllocation(ctx context.Context) error {
	c.mu.Lock()
	if err := c.begin(actionRequestAllocation, opFetchEmployees); err != nil {
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	employees, err := c.service.GetAvailableEmployees(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = opNone

	if err != nil {
		c.logger.Warn("RequestAllocation: failed to load employees: %v", err)
		c.notifyError(err, msgEmployeesFailed)
		return nil
	}

	c.employees = employees
	c.pickedEmployeeID = nil
	c.phase = phasePickerOpen
	return nil
}

// PickEmployee выбирает сотрудника; новый выбор заменяет предыдущий
func (c *Controller) PickEmployee(employeeID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(actionPickEmployee); err != nil {
		return err
	}
	if c.findEmployee(employeeID) == nil {
		return fmt.Errorf("%w: employee id=%d", ErrUnknownEmployee, employeeID)
	}

	id := employeeID
	c.pickedEmployeeID = &id
	return nil
}

// ClosePicker закрывает выбор исполнителя без назначения и возвращает к карточке записи
func (c *Controller) ClosePicker() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(actionClosePicker); err != nil {
		return err
	}

	c.employees = nil
	c.pickedEmployeeID = nil
	c.phase = phaseDetailOpen
	return nil
}

// ConfirmAllocation назначает выбранную запись выбранному сотруднику.
//  1. Ошибка назначения: уведомление, выбор исполнителя остаётся открытым.
//  2. Затем статус переводится в IN_PROGRESS; ошибка этого шага только логируется.
//  3. Уведомление об успехе, закрытие карточек, перезагрузка списка.
func (c *Controller) ConfirmAllocation(ctx context.Context) error {
	c.mu.Lock()
	if err := c.check(actionConfirm); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.pickedEmployeeID == nil {
		c.mu.Unlock()
		return ErrNoEmployeeSelected
	}
	appointmentID := c.selected.ID
	employee := *c.findEmployee(*c.pickedEmployeeID)
	c.inFlight = opAllocate
	c.touch()
	c.mu.Unlock()

	// Отключившийся клиент не должен прерывать уже начатое назначение
	ctx = context.WithoutCancel(ctx)

	c.logger.Info("ConfirmAllocation: allocating appointment id=%d to employee id=%d", appointmentID, employee.ID)

	if _, err := c.service.AllocateToEmployee(ctx, appointmentID, employee.ID); err != nil {
		c.logger.Error("ConfirmAllocation: allocation of appointment id=%d failed: %v", appointmentID, err)
		c.incAllocation(metrics.AllocationFailed)

		c.mu.Lock()
		c.inFlight = opNone
		c.notifyError(err, msgAllocateFailed)
		c.mu.Unlock()
		return nil
	}

	statusUpdated := false
	if c.settings.UpdateStatusAfterAllocation {
		if _, err := c.service.UpdateStatus(ctx, appointmentID, domain.StatusInProgress, c.settings.InProgressNote); err != nil {
			c.logger.Warn("ConfirmAllocation: status update for appointment id=%d failed, allocation kept: %v",
				appointmentID, err)
			c.incAllocation(metrics.AllocationStatusUpdateFailed)
		} else {
			statusUpdated = true
		}
	}

	c.recordAllocation(ctx, appointmentID, employee, statusUpdated)
	c.incAllocation(metrics.AllocationSucceeded)
	c.logger.Info("ConfirmAllocation: appointment id=%d allocated to employee id=%d", appointmentID, employee.ID)

	c.mu.Lock()
	c.notification = &Notification{
		Kind:    NotificationSuccess,
		Message: fmt.Sprintf(msgAllocated, employee.DisplayName()),
	}
	c.resetSelection()
	c.phase = phaseReady
	c.inFlight = opLoad
	c.mu.Unlock()

	c.runLoad(ctx)
	return nil
}

// View снимок состояния без изменения уведомления
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// TakeView снимок состояния; временное уведомление отдаётся один раз и сбрасывается
func (c *Controller) TakeView() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := c.snapshot()
	c.notification = nil
	c.touch()
	return v
}

// LastActivity время последнего действия пользователя в сессии
func (c *Controller) LastActivity() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActivity
}

// InFlight true, пока выполняется удалённый шаг
func (c *Controller) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight != opNone
}

// runLoad выполняет загрузку; inFlight = opLoad выставляет вызывающий
func (c *Controller) runLoad(ctx context.Context) {
	appointments, err := c.service.GetByStatus(ctx, c.settings.ApprovedStatus)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = opNone
	if c.phase == phaseIdle {
		c.phase = phaseReady
	}

	if err != nil {
		c.logger.Warn("Load: failed to load appointments with status=%s: %v", c.settings.ApprovedStatus, err)
		c.notifyError(err, msgLoadFailed)
		return
	}

	if appointments == nil {
		appointments = []domain.Appointment{}
	}
	c.appointments = appointments
	c.groups = domain.GroupByCustomer(appointments)
	c.logger.Info("Load: %d appointments in %d customer groups", len(c.appointments), len(c.groups))
}

func (c *Controller) recordAllocation(ctx context.Context, appointmentID int64, employee domain.User, statusUpdated bool) {
	if c.journal == nil {
		return
	}

	_, err := c.journal.Create(ctx, &domain.AllocationRecord{
		AppointmentID: appointmentID,
		EmployeeID:    employee.ID,
		EmployeeName:  employee.DisplayName(),
		StatusUpdated: statusUpdated,
	})
	if err != nil {
		c.logger.Error("ConfirmAllocation: failed to journal allocation of appointment id=%d: %v", appointmentID, err)
		c.incAllocation(metrics.AllocationJournalFailed)
	}
}

// begin проверяет переход и помечает шаг выполняющимся. Вызывается под мьютексом
func (c *Controller) begin(a action, op operation) error {
	if err := c.check(a); err != nil {
		return err
	}
	c.inFlight = op
	return nil
}

// check вызывается под мьютексом
func (c *Controller) check(a action) error {
	if c.inFlight != opNone {
		return ErrBusy
	}
	if !validTransition(a, c.phase) {
		return fmt.Errorf("%w: %s in state %s", ErrInvalidTransition, a, c.stateLocked())
	}
	c.touch()
	return nil
}

func (c *Controller) notifyError(err error, fallback string) {
	msg, ok := appointmentClient.ServerMessage(err)
	if !ok {
		msg = fallback
	}
	c.notification = &Notification{Kind: NotificationError, Message: msg}
}

func (c *Controller) resetSelection() {
	c.selected = nil
	c.employees = nil
	c.pickedEmployeeID = nil
}

func (c *Controller) findEmployee(id int64) *domain.User {
	for i := range c.employees {
		if c.employees[i].ID == id {
			return &c.employees[i]
		}
	}
	return nil
}

func (c *Controller) touch() {
	c.lastActivity = time.Now()
}

func (c *Controller) incAllocation(outcome string) {
	if c.metrics != nil {
		c.metrics.IncAllocation(outcome)
	}
}

func (c *Controller) stateLocked() State {
	switch c.inFlight {
	case opLoad:
		return StateLoading
	case opAllocate:
		return StateAllocating
	}

	switch c.phase {
	case phaseReady:
		return StateReady
	case phaseDetailOpen:
		return StateDetailOpen
	case phasePickerOpen:
		return StateEmployeePickerOpen
	default:
		return StateIdle
	}
}

func (c *Controller) snapshot() View {
	v := View{
		State: c.stateLocked(),
		Busy: Busy{
			Loading:           c.inFlight == opLoad,
			FetchingDetails:   c.inFlight == opFetchDetails,
			FetchingEmployees: c.inFlight == opFetchEmployees,
			Allocating:        c.inFlight == opAllocate,
		},
		Appointments:         append(make([]domain.Appointment, 0, len(c.appointments)), c.appointments...),
		Groups:               append(make([]domain.CustomerGroup, 0, len(c.groups)), c.groups...),
		CanRequestAllocation: c.phase == phaseDetailOpen && c.inFlight == opNone,
		CanConfirm:           c.phase == phasePickerOpen && c.pickedEmployeeID != nil && c.inFlight == opNone,
	}

	if c.selected != nil {
		selected := *c.selected
		v.SelectedAppointment = &selected
	}
	if c.employees != nil {
		v.Employees = append([]domain.User(nil), c.employees...)
	}
	if c.pickedEmployeeID != nil {
		id := *c.pickedEmployeeID
		v.PickedEmployeeID = &id
	}
	if c.notification != nil {
		n := *c.notification
		v.Notification = &n
	}
	return v
}
