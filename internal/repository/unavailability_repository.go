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

type UnavailabilityRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewUnavailabilityRepository(pool *pgxpool.Pool, logger *zap.Logger) *UnavailabilityRepository {
	return &UnavailabilityRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

const unavailabilityColumns = `id, date, start_time, end_time, reason, created_at, updated_at`

func scanUnavailability(row pgx.Row) (*model.Unavailability, error) {
	var u model.Unavailability
	err := row.Scan(&u.ID, &u.Date, &u.StartTime, &u.EndTime, &u.Reason, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UnavailabilityRepository) list(ctx context.Context, query string, args ...any) ([]*model.Unavailability, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []*model.Unavailability
	for rows.Next() {
		u, err := scanUnavailability(rows)
		if err != nil {
			return nil, fmt.Errorf("scan unavailability: %w", err)
		}
		blocks = append(blocks, u)
	}
	return blocks, rows.Err()
}

// Create создаёт блок недоступности
func (r *UnavailabilityRepository) Create(ctx context.Context, u *model.Unavailability) error {
	query := `
		INSERT INTO unavailability (date, start_time, end_time, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(ctx, query, u.Date, u.StartTime, u.EndTime, u.Reason).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert unavailability",
			zap.Time("date", u.Date),
			zap.Error(err))
		return fmt.Errorf("create unavailability: %w", err)
	}
	return nil
}

// GetByID получает блок по ID
func (r *UnavailabilityRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Unavailability, error) {
	u, err := scanUnavailability(r.QueryRow(ctx, `SELECT `+unavailabilityColumns+` FROM unavailability WHERE id = $1`, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unavailability by id: %w", err)
	}
	return u, nil
}

// List возвращает все блоки по дате и времени
func (r *UnavailabilityRepository) List(ctx context.Context) ([]*model.Unavailability, error) {
	blocks, err := r.list(ctx, `SELECT `+unavailabilityColumns+` FROM unavailability ORDER BY date, start_time`)
	if err != nil {
		return nil, fmt.Errorf("list unavailability: %w", err)
	}
	return blocks, nil
}

// ListByDate возвращает блоки одного дня
func (r *UnavailabilityRepository) ListByDate(ctx context.Context, day time.Time) ([]*model.Unavailability, error) {
	blocks, err := r.list(ctx,
		`SELECT `+unavailabilityColumns+` FROM unavailability WHERE date = $1 ORDER BY start_time`,
		model.Day(day))
	if err != nil {
		return nil, fmt.Errorf("list unavailability by date: %w", err)
	}
	return blocks, nil
}

// Update перезаписывает блок
func (r *UnavailabilityRepository) Update(ctx context.Context, u *model.Unavailability) error {
	query := `
		UPDATE unavailability
		SET date = $2, start_time = $3, end_time = $4, reason = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := r.QueryRow(ctx, query, u.ID, u.Date, u.StartTime, u.EndTime, u.Reason).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if base.IsNotFound(err) {
			return base.ErrNotFound
		}
		return fmt.Errorf("update unavailability: %w", err)
	}
	return nil
}

// Delete удаляет блок
func (r *UnavailabilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.ExecOne(ctx, `DELETE FROM unavailability WHERE id = $1`, id); err != nil {
		if base.IsNotFound(err) {
			return err
		}
		return fmt.Errorf("delete unavailability: %w", err)
	}
	return nil
}
