package bookingslot

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/infra/storage/pgerror"
	"github.com/m04kA/SMC-StudioService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioService/pkg/psqlbuilder"
)

// Repository репозиторий связей бронирование-слот
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория связей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListBookedAvailabilityIDs возвращает ID всех занятых слотов
func (r *Repository) ListBookedAvailabilityIDs(ctx context.Context) ([]uuid.UUID, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("availability_id").
		From("booking_slots").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedAvailabilityIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedAvailabilityIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListBookedAvailabilityIDs - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBookedAvailabilityIDs - iterate rows: %v", ErrScanRow, err)
	}
	return ids, nil
}

// CreateBatch связывает бронирование со всеми слотами одним INSERT.
// Слот, уже связанный с другим бронированием, нарушает UNIQUE(availability_id)
func (r *Repository) CreateBatch(ctx context.Context, bookingID uuid.UUID, availabilityIDs []uuid.UUID) error {
	if len(availabilityIDs) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("booking_slots").Columns("booking_id", "availability_id")
	for _, id := range availabilityIDs {
		builder = builder.Values(bookingID, id)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if pgerror.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", ErrSlotAlreadyBooked, err)
		}
		return fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// DeleteByBookingID удаляет связи бронирования
func (r *Repository) DeleteByBookingID(ctx context.Context, bookingID uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_slots").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByBookingID - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByBookingID - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}

// ListSlotsByBookingIDs возвращает слоты, занятые каждым из бронирований, по возрастанию времени
func (r *Repository) ListSlotsByBookingIDs(ctx context.Context, bookingIDs []uuid.UUID) (map[uuid.UUID][]domain.AvailabilitySlot, error) {
	result := make(map[uuid.UUID][]domain.AvailabilitySlot, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return result, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("bs.booking_id", "a.id", "a.available_from").
		From("booking_slots bs").
		Join("availability a ON a.id = bs.availability_id").
		Where(squirrel.Eq{"bs.booking_id": bookingIDs}).
		OrderBy("a.available_from ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListSlotsByBookingIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSlotsByBookingIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			bookingID, slotID uuid.UUID
			availableFrom     time.Time
		)
		if err := rows.Scan(&bookingID, &slotID, &availableFrom); err != nil {
			return nil, fmt.Errorf("%w: ListSlotsByBookingIDs - scan row: %v", ErrScanRow, err)
		}
		result[bookingID] = append(result[bookingID], domain.AvailabilitySlot{
			ID:            slotID,
			AvailableFrom: availableFrom.UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSlotsByBookingIDs - iterate rows: %v", ErrScanRow, err)
	}
	return result, nil
}
