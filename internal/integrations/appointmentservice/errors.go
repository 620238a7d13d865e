package appointmentservice

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound запись не найдена на бэкенде
	ErrNotFound = errors.New("appointmentservice client: not found")

	// ErrUnauthorized бэкенд отклонил токен
	ErrUnauthorized = errors.New("appointmentservice client: unauthorized")

	// ErrRemote бэкенд вернул ошибку бизнес-логики или иной неуспешный статус
	ErrRemote = errors.New("appointmentservice client: remote error")

	// ErrInternal внутренняя ошибка клиента или сбой транспорта
	ErrInternal = errors.New("appointmentservice client: internal error")

	// ErrInvalidResponse ответ бэкенда не удалось разобрать
	ErrInvalidResponse = errors.New("appointmentservice client: invalid response")
)

// APIError неуспешный HTTP ответ бэкенда
type APIError struct {
	Operation  string
	StatusCode int
	// Message поле message из тела ответа; пусто, если бэкенд его не прислал
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("appointmentservice %s: status %d: %s", e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("appointmentservice %s: status %d", e.Operation, e.StatusCode)
}

// Unwrap позволяет проверять категорию ошибки через errors.Is
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		return ErrRemote
	}
}

// ServerMessage извлекает сообщение бэкенда из цепочки ошибок
func ServerMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
