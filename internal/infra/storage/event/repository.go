package event

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioService/pkg/psqlbuilder"
)

var eventColumns = []string{"id", "title", "description", "start_date", "end_date", "location", "address", "image"}

// Repository репозиторий мероприятий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мероприятий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListAll возвращает все мероприятия по возрастанию даты начала
func (r *Repository) ListAll(ctx context.Context) ([]domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventColumns...).
		From("events").
		OrderBy("start_date ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		var (
			e       domain.Event
			endDate sql.NullTime
		)
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.StartDate, &endDate, &e.Location, &e.Address, &e.Image); err != nil {
			return nil, fmt.Errorf("%w: ListAll - scan event: %v", ErrScanRow, err)
		}
		e.StartDate = e.StartDate.UTC()
		if endDate.Valid {
			end := endDate.Time.UTC()
			e.EndDate = &end
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAll - iterate rows: %v", ErrScanRow, err)
	}
	return events, nil
}
