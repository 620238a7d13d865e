package list_allocations

import (
	"context"

	"github.com/m04kA/SMC-AllocationService/internal/domain"
)

type AllocationRepository interface {
	List(ctx context.Context, filter domain.AllocationFilter) ([]*domain.AllocationRecord, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
