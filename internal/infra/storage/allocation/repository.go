package allocation

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AllocationService/internal/domain"
	"github.com/m04kA/SMC-AllocationService/pkg/psqlbuilder"
)

const tableAllocations = "allocations"

var allocationColumns = []string{
	"id",
	"appointment_id",
	"employee_id",
	"employee_name",
	"status_updated",
	"created_at",
}

// Repository журнал успешных распределений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись журнала и заполняет ID и CreatedAt
func (r *Repository) Create(ctx context.Context, record *domain.AllocationRecord) (*domain.AllocationRecord, error) {
	query, args, err := buildInsertQuery(record)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return record, nil
}

// List записи журнала по фильтру, новые первыми
func (r *Repository) List(ctx context.Context, filter domain.AllocationFilter) ([]*domain.AllocationRecord, error) {
	query, args, err := buildListQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.AllocationRecord, 0)
	for rows.Next() {
		var rec domain.AllocationRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.AppointmentID,
			&rec.EmployeeID,
			&rec.EmployeeName,
			&rec.StatusUpdated,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: List - scan allocation: %v", ErrScanRow, err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrScanRow, err)
	}

	return records, nil
}

func buildInsertQuery(record *domain.AllocationRecord) (string, []interface{}, error) {
	return psqlbuilder.Insert(tableAllocations).
		Columns(
			"appointment_id",
			"employee_id",
			"employee_name",
			"status_updated",
		).
		Values(
			record.AppointmentID,
			record.EmployeeID,
			record.EmployeeName,
			record.StatusUpdated,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
}

func buildListQuery(filter domain.AllocationFilter) (string, []interface{}, error) {
	limit := filter.Limit
	if limit == 0 {
		limit = domain.DefaultAllocationListLimit
	}
	if limit > domain.MaxAllocationListLimit {
		limit = domain.MaxAllocationListLimit
	}

	builder := psqlbuilder.Select(allocationColumns...).
		From(tableAllocations).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit)

	if filter.AppointmentID != nil {
		builder = builder.Where(squirrel.Eq{"appointment_id": *filter.AppointmentID})
	}
	if filter.EmployeeID != nil {
		builder = builder.Where(squirrel.Eq{"employee_id": *filter.EmployeeID})
	}

	return builder.ToSql()
}
