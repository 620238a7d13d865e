package appointmentservice

import (
	"context"
	"time"
)

// TokenProvider источник bearer-токена. Вызывается на каждый запрос,
// поэтому обновлённый посреди сессии токен применяется со следующего вызова
type TokenProvider interface {
	Token(ctx context.Context) string
}

// TokenFunc адаптер функции к TokenProvider
type TokenFunc func(ctx context.Context) string

func (f TokenFunc) Token(ctx context.Context) string {
	return f(ctx)
}

// Metrics учёт исходящих вызовов
type Metrics interface {
	ObserveBackendCall(operation, outcome string, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
