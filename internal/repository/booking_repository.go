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

type BookingRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewBookingRepository(pool *pgxpool.Pool, logger *zap.Logger) *BookingRepository {
	return &BookingRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

const bookingColumns = `b.id, b.reference, b.name, b.email, b.phone, b.english_level, b.description,
	b.booking_type, b.workshop_id, b.session_dates, b.start_time, b.end_time, b.created_at, b.updated_at`

func scanBooking(row pgx.Row, extra ...any) (*model.Booking, error) {
	var b model.Booking
	dest := []any{
		&b.ID,
		&b.Reference,
		&b.Name,
		&b.Email,
		&b.Phone,
		&b.EnglishLevel,
		&b.Description,
		&b.BookingType,
		&b.WorkshopID,
		&b.SessionDates,
		&b.StartTime,
		&b.EndTime,
		&b.CreatedAt,
		&b.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create сохраняет подготовленное бронирование
func (r *BookingRepository) Create(ctx context.Context, b *model.Booking) error {
	query := `
		INSERT INTO bookings (reference, name, email, phone, english_level, description, booking_type,
		                      workshop_id, session_dates, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(ctx, query,
		b.Reference,
		b.Name,
		b.Email,
		b.Phone,
		b.EnglishLevel,
		b.Description,
		b.BookingType,
		b.WorkshopID,
		b.SessionDates,
		b.StartTime,
		b.EndTime,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert booking",
			zap.String("reference", b.Reference),
			zap.String("booking_type", string(b.BookingType)),
			zap.Error(err))
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// List возвращает бронирования от новых к старым с краткими данными воркшопа
func (r *BookingRepository) List(ctx context.Context) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `, w.title, w.date, w.start_time, w.end_time
		FROM bookings b
		LEFT JOIN workshops w ON w.id = b.workshop_id
		ORDER BY b.created_at DESC
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		var (
			title, start, end *string
			date              *time.Time
		)
		b, err := scanBooking(rows, &title, &date, &start, &end)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		if b.WorkshopID != nil && title != nil {
			b.Workshop = &model.WorkshopSummary{
				ID:        *b.WorkshopID,
				Title:     *title,
				Date:      *date,
				StartTime: *start,
				EndTime:   *end,
			}
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// ListBySessionDate возвращает бронирования, у которых среди дат занятий есть day
func (r *BookingRepository) ListBySessionDate(ctx context.Context, day time.Time) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE $1::date = ANY(b.session_dates)
		ORDER BY b.start_time, b.created_at
	`

	rows, err := r.Query(ctx, query, model.Day(day))
	if err != nil {
		return nil, fmt.Errorf("list bookings by date: %w", err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookings by date: %w", err)
	}
	return bookings, nil
}

// CountByWorkshop количество бронирований воркшопа
func (r *BookingRepository) CountByWorkshop(ctx context.Context, workshopID uuid.UUID) (int, error) {
	var count int
	err := r.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE workshop_id = $1`, workshopID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count workshop bookings: %w", err)
	}
	return count, nil
}
