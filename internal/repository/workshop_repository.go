package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/model"
	"github.com/Freeeeeet/tutor_booking/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type WorkshopRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewWorkshopRepository(pool *pgxpool.Pool, logger *zap.Logger) *WorkshopRepository {
	return &WorkshopRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

const workshopColumns = `id, title, slug, description, date, start_time, end_time, capacity, created_at, updated_at`

func scanWorkshop(row pgx.Row) (*model.Workshop, error) {
	var w model.Workshop
	err := row.Scan(
		&w.ID,
		&w.Title,
		&w.Slug,
		&w.Description,
		&w.Date,
		&w.StartTime,
		&w.EndTime,
		&w.Capacity,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func collectWorkshops(rows pgx.Rows) ([]*model.Workshop, error) {
	defer rows.Close()

	var workshops []*model.Workshop
	for rows.Next() {
		w, err := scanWorkshop(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workshop: %w", err)
		}
		workshops = append(workshops, w)
	}
	return workshops, rows.Err()
}

// Create создаёт воркшоп
func (r *WorkshopRepository) Create(ctx context.Context, w *model.Workshop) error {
	query := `
		INSERT INTO workshops (title, slug, description, date, start_time, end_time, capacity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(ctx, query,
		w.Title,
		w.Slug,
		w.Description,
		w.Date,
		w.StartTime,
		w.EndTime,
		w.Capacity,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert workshop",
			zap.String("title", w.Title),
			zap.Error(err))
		return fmt.Errorf("create workshop: %w", err)
	}
	return nil
}

// GetByID получает воркшоп по ID
func (r *WorkshopRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Workshop, error) {
	query := `SELECT ` + workshopColumns + ` FROM workshops WHERE id = $1`

	w, err := scanWorkshop(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get workshop by id: %w", err)
	}
	return w, nil
}

// List возвращает все воркшопы по дате и времени начала
func (r *WorkshopRepository) List(ctx context.Context) ([]*model.Workshop, error) {
	query := `SELECT ` + workshopColumns + ` FROM workshops ORDER BY date, start_time`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list workshops: %w", err)
	}
	workshops, err := collectWorkshops(rows)
	if err != nil {
		return nil, fmt.Errorf("list workshops: %w", err)
	}
	return workshops, nil
}

// ListByDate возвращает воркшопы одного дня
func (r *WorkshopRepository) ListByDate(ctx context.Context, day time.Time) ([]*model.Workshop, error) {
	query := `SELECT ` + workshopColumns + ` FROM workshops WHERE date = $1 ORDER BY start_time`

	rows, err := r.Query(ctx, query, model.Day(day))
	if err != nil {
		return nil, fmt.Errorf("list workshops by date: %w", err)
	}
	workshops, err := collectWorkshops(rows)
	if err != nil {
		return nil, fmt.Errorf("list workshops by date: %w", err)
	}
	return workshops, nil
}

// NextUpcoming ближайший воркшоп, который ещё не начался
func (r *WorkshopRepository) NextUpcoming(ctx context.Context, today time.Time, clock string) (*model.Workshop, error) {
	query := `
		SELECT ` + workshopColumns + `
		FROM workshops
		WHERE date > $1 OR (date = $1 AND start_time > $2)
		ORDER BY date, start_time
		LIMIT 1
	`

	w, err := scanWorkshop(r.QueryRow(ctx, query, model.Day(today), clock))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get next workshop: %w", err)
	}
	return w, nil
}

// Update перезаписывает поля воркшопа
func (r *WorkshopRepository) Update(ctx context.Context, w *model.Workshop) error {
	query := `
		UPDATE workshops
		SET title = $2, slug = $3, description = $4, date = $5, start_time = $6, end_time = $7,
		    capacity = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := r.QueryRow(ctx, query,
		w.ID,
		w.Title,
		w.Slug,
		w.Description,
		w.Date,
		w.StartTime,
		w.EndTime,
		w.Capacity,
	).Scan(&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if base.IsNotFound(err) {
			return base.ErrNotFound
		}
		return fmt.Errorf("update workshop: %w", err)
	}
	return nil
}

// Delete удаляет воркшоп
func (r *WorkshopRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.ExecOne(ctx, `DELETE FROM workshops WHERE id = $1`, id); err != nil {
		if base.IsNotFound(err) {
			return err
		}
		return fmt.Errorf("delete workshop: %w", err)
	}
	return nil
}
