package sessions

import allocationWorkflow "github.com/m04kA/SMC-AllocationService/internal/usecase/allocation_workflow"

// ControllerFactory создает контроллер для новой сессии
type ControllerFactory func() *allocationWorkflow.Controller

// Metrics учёт открытых сессий
type Metrics interface {
	SetActiveSessions(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
