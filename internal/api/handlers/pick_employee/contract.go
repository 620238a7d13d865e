package pick_employee

import "github.com/m04kA/SMC-AllocationService/internal/service/sessions"

type SessionService interface {
	Get(id string) (*sessions.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
