package appointmentservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-AllocationService/internal/domain"
	"github.com/m04kA/SMC-AllocationService/pkg/metrics"
)

// Названия операций для логов и метрик
const (
	OpGetByStatus           = "get_by_status"
	OpGetByID               = "get_by_id"
	OpAllocateToEmployee    = "allocate_to_employee"
	OpUpdateStatus          = "update_status"
	OpGetAvailableEmployees = "get_available_employees"
)

const maxErrorBodySize = 64 << 10

// Client клиент бэкенда записей на обслуживание.
// Ответы с записями нормализуются, ошибки логируются и возвращаются вызывающему без повторов
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
	metrics    Metrics
	log        Logger
}

// NewClient создает новый экземпляр клиента. timeout = 0 отключает таймаут
func NewClient(baseURL string, timeout time.Duration, tokens TokenProvider, metrics Metrics, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens:  tokens,
		metrics: metrics,
		log:     log,
	}
}

// GetByStatus получает записи с указанным статусом в порядке бэкенда
func (c *Client) GetByStatus(ctx context.Context, status domain.AppointmentStatus) ([]domain.Appointment, error) {
	path := "/api/appointments/status/" + url.PathEscape(string(status))

	var payloads []AppointmentPayload
	if err := c.do(ctx, OpGetByStatus, http.MethodGet, path, nil, &payloads); err != nil {
		c.log.Error("GetByStatus: failed to fetch appointments with status=%s: %v", status, err)
		return nil, err
	}

	c.log.Info("GetByStatus: fetched %d appointments with status=%s", len(payloads), status)
	return NormalizeList(payloads), nil
}

// GetByID получает запись по ID. ErrNotFound, если записи нет
func (c *Client) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	path := fmt.Sprintf("/api/appointments/%d", id)

	var payload AppointmentPayload
	if err := c.do(ctx, OpGetByID, http.MethodGet, path, nil, &payload); err != nil {
		c.log.Error("GetByID: failed to fetch appointment id=%d: %v", id, err)
		return nil, err
	}

	appt := Normalize(payload)
	return &appt, nil
}

// AllocateToEmployee назначает запись сотруднику и возвращает обновлённую запись
func (c *Client) AllocateToEmployee(ctx context.Context, appointmentID, employeeID int64) (*domain.Appointment, error) {
	path := fmt.Sprintf("/api/appointments/%d/allocate", appointmentID)

	var payload AppointmentPayload
	body := AllocateRequest{EmployeeID: employeeID}
	if err := c.do(ctx, OpAllocateToEmployee, http.MethodPut, path, body, &payload); err != nil {
		c.log.Error("AllocateToEmployee: failed to allocate appointment id=%d to employee id=%d: %v",
			appointmentID, employeeID, err)
		return nil, err
	}

	c.log.Info("AllocateToEmployee: appointment id=%d allocated to employee id=%d", appointmentID, employeeID)
	appt := Normalize(payload)
	return &appt, nil
}

// UpdateStatus меняет статус записи с необязательным комментарием
func (c *Client) UpdateStatus(ctx context.Context, appointmentID int64, status domain.AppointmentStatus, note string) (*domain.Appointment, error) {
	path := fmt.Sprintf("/api/appointments/%d/status", appointmentID)

	var payload AppointmentPayload
	body := UpdateStatusRequest{Status: string(status), Note: note}
	if err := c.do(ctx, OpUpdateStatus, http.MethodPatch, path, body, &payload); err != nil {
		c.log.Error("UpdateStatus: failed to set status=%s for appointment id=%d: %v", status, appointmentID, err)
		return nil, err
	}

	c.log.Info("UpdateStatus: appointment id=%d moved to status=%s", appointmentID, status)
	appt := Normalize(payload)
	return &appt, nil
}

// GetAvailableEmployees получает сотрудников, доступных для назначения, без нормализации
func (c *Client) GetAvailableEmployees(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, OpGetAvailableEmployees, http.MethodGet, "/api/users/employees/available", nil, &users); err != nil {
		c.log.Error("GetAvailableEmployees: failed to fetch employees: %v", err)
		return nil, err
	}

	c.log.Info("GetAvailableEmployees: fetched %d employees", len(users))
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// do выполняет один запрос к бэкенду и декодирует успешный ответ в out
func (c *Client) do(ctx context.Context, op, method, path string, body interface{}, out interface{}) (err error) {
	start := time.Now()
	defer func() {
		c.observe(op, err, time.Since(start))
	}()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: %s: failed to encode request: %v", ErrInternal, op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %s: failed to create request: %v", ErrInternal, op, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Токен читается заново на каждый вызов
	if c.tokens != nil {
		if token := c.tokens.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: failed to execute request: %v", ErrInternal, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(op, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: failed to decode response: %v", ErrInvalidResponse, op, err)
	}
	return nil
}

func (c *Client) decodeError(op string, resp *http.Response) error {
	apiErr := &APIError{
		Operation:  op,
		StatusCode: resp.StatusCode,
	}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	var errResp ErrorResponse
	if len(data) > 0 && json.Unmarshal(data, &errResp) == nil {
		apiErr.Message = errResp.Message
	}

	if apiErr.Message == "" && len(data) > 0 {
		c.log.Warn("%s: backend returned status %d without message: %s", op, resp.StatusCode, string(data))
	}
	return apiErr
}

func (c *Client) observe(op string, err error, duration time.Duration) {
	if c.metrics == nil {
		return
	}
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
	}
	c.metrics.ObserveBackendCall(op, outcome, duration)
}
