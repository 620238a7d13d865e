package allocation_workflow

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AllocationService/internal/domain"
	appointmentClient "github.com/m04kA/SMC-AllocationService/internal/integrations/appointmentservice"
	"github.com/m04kA/SMC-AllocationService/pkg/metrics"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	mu sync.Mutex

	appointments []domain.Appointment
	getByStatus  func() ([]domain.Appointment, error)
	getByID      func(id int64) (*domain.Appointment, error)
	allocate     func(appointmentID, employeeID int64) (*domain.Appointment, error)
	updateStatus func(appointmentID int64) (*domain.Appointment, error)
	employees    func() ([]domain.User, error)

	statusFilters  []domain.AppointmentStatus
	allocateCalls  [][2]int64
	allocateCtxErr error
	statusCalls    []string
}

func (f *fakeService) GetByStatus(_ context.Context, status domain.AppointmentStatus) ([]domain.Appointment, error) {
	f.mu.Lock()
	f.statusFilters = append(f.statusFilters, status)
	f.mu.Unlock()
	if f.getByStatus != nil {
		return f.getByStatus()
	}
	return f.appointments, nil
}

func (f *fakeService) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if f.getByID != nil {
		return f.getByID(id)
	}
	for _, a := range f.appointments {
		if a.ID == id {
			appt := a
			return &appt, nil
		}
	}
	return nil, &appointmentClient.APIError{Operation: appointmentClient.OpGetByID, StatusCode: 404}
}

func (f *fakeService) AllocateToEmployee(ctx context.Context, appointmentID, employeeID int64) (*domain.Appointment, error) {
	f.mu.Lock()
	f.allocateCalls = append(f.allocateCalls, [2]int64{appointmentID, employeeID})
	f.allocateCtxErr = ctx.Err()
	f.mu.Unlock()
	if f.allocate != nil {
		return f.allocate(appointmentID, employeeID)
	}
	return &domain.Appointment{ID: appointmentID, EmployeeID: &employeeID}, nil
}

func (f *fakeService) UpdateStatus(_ context.Context, appointmentID int64, status domain.AppointmentStatus, note string) (*domain.Appointment, error) {
	f.mu.Lock()
	f.statusCalls = append(f.statusCalls, string(status)+":"+note)
	f.mu.Unlock()
	if f.updateStatus != nil {
		return f.updateStatus(appointmentID)
	}
	return &domain.Appointment{ID: appointmentID, Status: status}, nil
}

func (f *fakeService) GetAvailableEmployees(context.Context) ([]domain.User, error) {
	if f.employees != nil {
		return f.employees()
	}
	return []domain.User{
		{ID: 42, FullName: "Jane Worker", Email: "jane@x.com", Role: domain.Role{Name: "EMPLOYEE"}},
		{ID: 43, Email: "bob@x.com"},
	}, nil
}

type fakeJournal struct {
	records []domain.AllocationRecord
	err     error
}

func (j *fakeJournal) Create(_ context.Context, r *domain.AllocationRecord) (*domain.AllocationRecord, error) {
	if j.err != nil {
		return nil, j.err
	}
	j.records = append(j.records, *r)
	return r, nil
}

type countingMetrics struct {
	outcomes []string
}

func (m *countingMetrics) IncAllocation(outcome string) {
	m.outcomes = append(m.outcomes, outcome)
}

var testSettings = Settings{
	ApprovedStatus:              domain.StatusApproveFilter,
	UpdateStatusAfterAllocation: true,
	InProgressNote:              "Appointment has been assigned to an employee",
}

func sampleAppointments() []domain.Appointment {
	return []domain.Appointment{
		{ID: 5, Customer: &domain.Party{Email: "a@x.com", FullName: "A"}, CustomerEmail: "a@x.com", CustomerName: "A", Service: "oil_change"},
		{ID: 6, CustomerEmail: "a@x.com", CustomerName: "A2", Service: "tire_rotation"},
		{ID: 7, CustomerEmail: "b@x.com", Service: "wash"},
	}
}

func newController(svc *fakeService) (*Controller, *fakeJournal, *countingMetrics) {
	journal := &fakeJournal{}
	m := &countingMetrics{}
	return NewController(svc, journal, m, testSettings, nopLogger{}), journal, m
}

// openPicker проводит контроллер до выбора исполнителя для записи id
func openPicker(t *testing.T, c *Controller, id int64) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, c.Load(ctx))
	require.NoError(t, c.SelectAppointment(ctx, id))
	require.NoError(t, c.RequestAllocation(ctx))
	require.Equal(t, StateEmployeePickerOpen, c.View().State)
}

func TestController_Load(t *testing.T) {
	svc := &fakeService{appointments: sampleAppointments()}
	c, _, _ := newController(svc)

	assert.Equal(t, StateIdle, c.View().State)
	require.NoError(t, c.Load(context.Background()))

	v := c.View()
	assert.Equal(t, StateReady, v.State)
	assert.Len(t, v.Appointments, 3)
	require.Len(t, v.Groups, 2)
	assert.Equal(t, "a@x.com", v.Groups[0].Key)
	assert.Equal(t, 2, v.Groups[0].TotalCount)
	assert.Equal(t, []domain.AppointmentStatus{domain.StatusApproveFilter}, svc.statusFilters)
	assert.Nil(t, v.Notification)
}

func TestController_LoadEmpty(t *testing.T) {
	c, _, _ := newController(&fakeService{})

	require.NoError(t, c.Load(context.Background()))

	v := c.View()
	assert.Equal(t, StateReady, v.State)
	assert.NotNil(t, v.Appointments)
	assert.Empty(t, v.Appointments)
	assert.NotNil(t, v.Groups)
	assert.Empty(t, v.Groups)
}

func TestController_LoadFailureKeepsPreviousList(t *testing.T) {
	svc := &fakeService{appointments: sampleAppointments()}
	c, _, _ := newController(svc)
	require.NoError(t, c.Load(context.Background()))

	svc.getByStatus = func() ([]domain.Appointment, error) {
		return nil, errors.New("connection refused")
	}
	require.NoError(t, c.Load(context.Background()))

	v := c.View()
	assert.Equal(t, StateReady, v.State)
	assert.Len(t, v.Appointments, 3)
	require.NotNil(t, v.Notification)
	assert.Equal(t, NotificationError, v.Notification.Kind)
	assert.Equal(t, msgLoadFailed, v.Notification.Message)
}

func TestController_FirstLoadFailureShowsEmptyList(t *testing.T) {
	svc := &fakeService{getByStatus: func() ([]domain.Appointment, error) {
		return nil, &appointmentClient.APIError{StatusCode: 500, Message: "Database is down"}
	}}
	c, _, _ := newController(svc)

	require.NoError(t, c.Load(context.Background()))

	v := c.View()
	assert.Equal(t, StateReady, v.State)
	assert.Empty(t, v.Appointments)
	require.NotNil(t, v.Notification)
	assert.Equal(t, "Database is down", v.Notification.Message)
}

func TestController_SelectAppointment(t *testing.T) {
	c, _, _ := newController(&fakeService{appointments: sampleAppointments()})
	require.NoError(t, c.Load(context.Background()))

	require.NoError(t, c.SelectAppointment(context.Background(), 6))

	v := c.View()
	assert.Equal(t, StateDetailOpen, v.State)
	require.NotNil(t, v.SelectedAppointment)
	assert.Equal(t, int64(6), v.SelectedAppointment.ID)
	assert.True(t, v.CanRequestAllocation)
}

func TestController_SelectNotFoundKeepsList(t *testing.T) {
	c, _, _ := newController(&fakeService{appointments: sampleAppointments()})
	require.NoError(t, c.Load(context.Background()))

	require.NoError(t, c.SelectAppointment(context.Background(), 999))

	v := c.View()
	assert.Equal(t, StateReady, v.State)
	assert.Nil(t, v.SelectedAppointment)
	assert.Len(t, v.Appointments, 3)
	require.NotNil(t, v.Notification)
	assert.Equal(t, NotificationError, v.Notification.Kind)
	assert.Equal(t, msgDetailsFailed, v.Notification.Message)
}

func TestController_RequestAllocationFailureStaysOnDetails(t *testing.T) {
	svc := &fakeService{
		appointments: sampleAppointments(),
		employees: func() ([]domain.User, error) {
			return nil, errors.New("timeout")
		},
	}
	c, _, _ := newController(svc)
	require.NoError(t, c.Load(context.Background()))
	require.NoError(t, c.SelectAppointment(context.Background(), 5))

	require.NoError(t, c.RequestAllocation(context.Background()))

	v := c.View()
	assert.Equal(t, StateDetailOpen, v.State)
	assert.False(t, v.Busy.FetchingEmployees)
	assert.Equal(t, msgEmployeesFailed, v.Notification.Message)
	assert.Nil(t, v.Employees)
}

func TestController_PickEmployeeIsExclusive(t *testing.T) {
	c, _, _ := newController(&fakeService{appointments: sampleAppointments()})
	openPicker(t, c, 5)

	assert.False(t, c.View().CanConfirm)

	require.NoError(t, c.PickEmployee(42))
	require.NoError(t, c.PickEmployee(43))

	v := c.View()
	require.NotNil(t, v.PickedEmployeeID)
	assert.Equal(t, int64(43), *v.PickedEmployeeID)
	assert.True(t, v.CanConfirm)

	assert.ErrorIs(t, c.PickEmployee(1000), ErrUnknownEmployee)
	assert.Equal(t, int64(43), *c.View().PickedEmployeeID)
}

func TestController_ConfirmRequiresPick(t *testing.T) {
	svc := &fakeService{appointments: sampleAppointments()}
	c, _, _ := newController(svc)
	openPicker(t, c, 5)

	assert.ErrorIs(t, c.ConfirmAllocation(context.Background()), ErrNoEmployeeSelected)
	assert.Empty(t, svc.allocateCalls)
}

func TestController_ConfirmSuccess(t *testing.T) {
	svc := &fakeService{appointments: sampleAppointments()}
	c, journal, m := newController(svc)
	openPicker(t, c, 5)
	require.NoError(t, c.PickEmployee(42))

	require.NoError(t, c.ConfirmAllocation(context.Background()))

	assert.Equal(t, [][2]int64{{5, 42}}, svc.allocateCalls)
	assert.Equal(t, []string{"IN_PROGRESS:Appointment has been assigned to an employee"}, svc.statusCalls)
	// начальная загрузка и обновление после назначения
	assert.Len(t, svc.statusFilters, 2)

	v := c.TakeView()
	assert.Equal(t, StateReady, v.State)
	assert.Nil(t, v.SelectedAppointment)
	assert.Nil(t, v.Employees)
	assert.Nil(t, v.PickedEmployeeID)
	require.NotNil(t, v.Notification)
	assert.Equal(t, NotificationSuccess, v.Notification.Kind)
	assert.Equal(t, "Appointment allocated to Jane Worker", v.Notification.Message)

	require.Len(t, journal.records, 1)
	assert.Equal(t, int64(5), journal.records[0].AppointmentID)
	assert.Equal(t, int64(42), journal.records[0].EmployeeID)
	assert.True(t, journal.records[0].StatusUpdated)
	assert.Equal(t, []string{metrics.AllocationSucceeded}, m.outcomes)

	// уведомление отдаётся один раз
	assert.Nil(t, c.View().Notification)
}

func TestController_ConfirmSucceedsWhenStatusUpdateFails(t *testing.T) {
	svc := &fakeService{
		appointments: sampleAppointments(),
		updateStatus: func(int64) (*domain.Appointment, error) {
			return nil, errors.New("status service down")
		},
	}
	c, journal, m := newController(svc)
	openPicker(t, c, 5)
	require.NoError(t, c.PickEmployee(42))

	require.NoError(t, c.ConfirmAllocation(context.Background()))

	v := c.View()
	assert.Equal(t, StateReady, v.State)
	require.NotNil(t, v.Notification)
	assert.Equal(t, NotificationSuccess, v.Notification.Kind)
	assert.Len(t, svc.statusFilters, 2)
	require.Len(t, journal.records, 1)
	assert.False(t, journal.records[0].StatusUpdated)
	assert.Equal(t, []string{metrics.AllocationStatusUpdateFailed, metrics.AllocationSucceeded}, m.outcomes)
}

func TestController_ConfirmAllocationFailure(t *testing.T) {
	svc := &fakeService{
		appointments: sampleAppointments(),
		allocate: func(int64, int64) (*domain.Appointment, error) {
			return nil, &appointmentClient.APIError{
				Operation:  appointmentClient.OpAllocateToEmployee,
				StatusCode: 409,
				Message:    "Employee unavailable",
			}
		},
	}
	c, journal, _ := newController(svc)
	openPicker(t, c, 5)
	require.NoError(t, c.PickEmployee(42))

	require.NoError(t, c.ConfirmAllocation(context.Background()))

	v := c.View()
	assert.Equal(t, StateEmployeePickerOpen, v.State)
	assert.False(t, v.Busy.Allocating)
	require.NotNil(t, v.SelectedAppointment)
	assert.Equal(t, int64(5), v.SelectedAppointment.ID)
	require.NotNil(t, v.PickedEmployeeID)
	assert.Equal(t, int64(42), *v.PickedEmployeeID)
	assert.True(t, v.CanConfirm)
	require.NotNil(t, v.Notification)
	assert.Equal(t, "Employee unavailable", v.Notification.Message)

	assert.Empty(t, svc.statusCalls)
	assert.Len(t, svc.statusFilters, 1)
	assert.Empty(t, journal.records)
}

func TestController_ConfirmFailureWithoutServerMessage(t *testing.T) {
	svc := &fakeService{
		appointments: sampleAppointments(),
		allocate: func(int64, int64) (*domain.Appointment, error) {
			return nil, errors.New("dial tcp: connection refused")
		},
	}
	c, _, _ := newController(svc)
	openPicker(t, c, 5)
	require.NoError(t, c.PickEmployee(43))

	require.NoError(t, c.ConfirmAllocation(context.Background()))

	assert.Equal(t, msgAllocateFailed, c.View().Notification.Message)
}

func TestController_StatusUpdateDisabled(t *testing.T) {
	svc := &fakeService{appointments: sampleAppointments()}
	settings := testSettings
	settings.UpdateStatusAfterAllocation = false
	c := NewController(svc, nil, nil, settings, nopLogger{})
	openPicker(t, c, 5)
	require.NoError(t, c.PickEmployee(43))

	require.NoError(t, c.ConfirmAllocation(context.Background()))

	assert.Empty(t, svc.statusCalls)
	assert.Equal(t, "Appointment allocated to bob@x.com", c.View().Notification.Message)
}

func TestController_JournalFailureIsSuppressed(t *testing.T) {
	svc := &fakeService{appointments: sampleAppointments()}
	journal := &fakeJournal{err: errors.New("db down")}
	m := &countingMetrics{}
	c := NewController(svc, journal, m, testSettings, nopLogger{})
	openPicker(t, c, 5)
	require.NoError(t, c.PickEmployee(42))

	require.NoError(t, c.ConfirmAllocation(context.Background()))

	assert.Equal(t, NotificationSuccess, c.View().Notification.Kind)
	assert.Contains(t, m.outcomes, metrics.AllocationJournalFailed)
}

func TestController_CloseModals(t *testing.T) {
	svc := &fakeService{appointments: sampleAppointments()}
	c, _, _ := newController(svc)
	openPicker(t, c, 5)
	require.NoError(t, c.PickEmployee(42))

	require.NoError(t, c.ClosePicker())
	v := c.View()
	assert.Equal(t, StateDetailOpen, v.State)
	assert.Nil(t, v.PickedEmployeeID)
	assert.Nil(t, v.Employees)
	require.NotNil(t, v.SelectedAppointment)

	require.NoError(t, c.CloseDetails())
	v = c.View()
	assert.Equal(t, StateReady, v.State)
	assert.Nil(t, v.SelectedAppointment)

	assert.Empty(t, svc.allocateCalls)
}

func TestController_InvalidTransitions(t *testing.T) {
	c, _, _ := newController(&fakeService{appointments: sampleAppointments()})
	ctx := context.Background()

	assert.ErrorIs(t, c.SelectAppointment(ctx, 5), ErrInvalidTransition)
	assert.ErrorIs(t, c.RequestAllocation(ctx), ErrInvalidTransition)
	assert.ErrorIs(t, c.ConfirmAllocation(ctx), ErrInvalidTransition)
	assert.ErrorIs(t, c.CloseDetails(), ErrInvalidTransition)

	require.NoError(t, c.Load(ctx))
	require.NoError(t, c.SelectAppointment(ctx, 5))

	// пока открыта карточка, выбрать другую запись нельзя
	assert.ErrorIs(t, c.SelectAppointment(ctx, 6), ErrInvalidTransition)
	assert.ErrorIs(t, c.Load(ctx), ErrInvalidTransition)
	assert.ErrorIs(t, c.PickEmployee(42), ErrInvalidTransition)
}

func TestController_BusyWhileAllocating(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	svc := &fakeService{
		appointments: sampleAppointments(),
		allocate: func(appointmentID, employeeID int64) (*domain.Appointment, error) {
			close(started)
			<-release
			return &domain.Appointment{ID: appointmentID}, nil
		},
	}
	c, _, _ := newController(svc)
	openPicker(t, c, 5)
	require.NoError(t, c.PickEmployee(42))

	done := make(chan error, 1)
	go func() {
		done <- c.ConfirmAllocation(context.Background())
	}()
	<-started

	v := c.View()
	assert.Equal(t, StateAllocating, v.State)
	assert.True(t, v.Busy.Allocating)
	assert.False(t, v.CanConfirm)
	assert.ErrorIs(t, c.ConfirmAllocation(context.Background()), ErrBusy)
	assert.ErrorIs(t, c.ClosePicker(), ErrBusy)
	assert.True(t, c.InFlight())

	close(release)
	require.NoError(t, <-done)

	assert.Len(t, svc.allocateCalls, 1)
	assert.Equal(t, StateReady, c.View().State)
	assert.False(t, c.InFlight())
}

func TestController_BusyWhileFetchingEmployees(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	svc := &fakeService{
		appointments: sampleAppointments(),
		employees: func() ([]domain.User, error) {
			close(started)
			<-release
			return []domain.User{{ID: 1, Email: "e@x.com"}}, nil
		},
	}
	c, _, _ := newController(svc)
	require.NoError(t, c.Load(context.Background()))
	require.NoError(t, c.SelectAppointment(context.Background(), 5))

	done := make(chan error, 1)
	go func() {
		done <- c.RequestAllocation(context.Background())
	}()
	<-started

	v := c.View()
	assert.Equal(t, StateDetailOpen, v.State)
	assert.True(t, v.Busy.FetchingEmployees)
	assert.False(t, v.CanRequestAllocation)
	assert.ErrorIs(t, c.RequestAllocation(context.Background()), ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StateEmployeePickerOpen, c.View().State)
}

func TestController_CanceledContextDoesNotAbortAllocation(t *testing.T) {
	svc := &fakeService{appointments: sampleAppointments()}
	c, _, _ := newController(svc)
	openPicker(t, c, 5)
	require.NoError(t, c.PickEmployee(42))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, c.ConfirmAllocation(ctx))

	assert.NoError(t, svc.allocateCtxErr)
	assert.Equal(t, NotificationSuccess, c.View().Notification.Kind)
}
