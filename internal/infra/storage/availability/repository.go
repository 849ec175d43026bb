package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioService/pkg/psqlbuilder"
)

var slotColumns = []string{"id", "available_from", "service_type", "created_at"}

// Repository репозиторий слотов доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListAfter возвращает слоты, начинающиеся строго после after, по возрастанию времени
func (r *Repository) ListAfter(ctx context.Context, after time.Time) ([]domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("availability").
		Where(squirrel.Gt{"available_from": after.UTC()}).
		OrderBy("available_from ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAfter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAfter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// CreateBatch вставляет слоты одним запросом
func (r *Repository) CreateBatch(ctx context.Context, starts []time.Time, serviceType *domain.ServiceType) ([]domain.AvailabilitySlot, error) {
	if len(starts) == 0 {
		return []domain.AvailabilitySlot{}, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var st interface{}
	if serviceType != nil {
		st = string(*serviceType)
	}

	builder := psqlbuilder.Insert("availability").Columns("id", "available_from", "service_type")
	for _, start := range starts {
		builder = builder.Values(uuid.New(), start.UTC(), st)
	}

	query, args, err := builder.Suffix("RETURNING id, available_from, service_type, created_at").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// Delete удаляет слот
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

func scanSlots(rows *sql.Rows) ([]domain.AvailabilitySlot, error) {
	slots := make([]domain.AvailabilitySlot, 0)
	for rows.Next() {
		var (
			id            uuid.UUID
			availableFrom time.Time
			serviceType   sql.NullString
			createdAt     sql.NullTime
		)
		if err := rows.Scan(&id, &availableFrom, &serviceType, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: scan slot: %v", ErrScanRow, err)
		}

		var st *domain.ServiceType
		if serviceType.Valid {
			v := domain.ServiceType(serviceType.String)
			st = &v
		}

		slot, err := domain.NewAvailabilitySlot(id, availableFrom, st)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScanRow, err)
		}
		slot.CreatedAt = createdAt.Time
		slots = append(slots, *slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate slots: %v", ErrScanRow, err)
	}
	return slots, nil
}
