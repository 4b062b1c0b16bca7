package schedule

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/model"
	"github.com/google/uuid"
)

// Store чтение занятых интервалов. Запись выполняет вызывающий слой.
type Store interface {
	// WorkshopsOn воркшопы, дата которых попадает в [day, day+1)
	WorkshopsOn(ctx context.Context, day time.Time) ([]*model.Workshop, error)
	// BookingsOn бронирования, у которых среди sessionDates есть day
	BookingsOn(ctx context.Context, day time.Time) ([]*model.Booking, error)
	// UnavailabilityOn блоки недоступности на day
	UnavailabilityOn(ctx context.Context, day time.Time) ([]*model.Unavailability, error)
	// GetWorkshop возвращает nil, nil если воркшопа нет
	GetWorkshop(ctx context.Context, id uuid.UUID) (*model.Workshop, error)
	// CountWorkshopBookings количество бронирований, ссылающихся на воркшоп
	CountWorkshopBookings(ctx context.Context, workshopID uuid.UUID) (int, error)
}
