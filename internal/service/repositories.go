package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/model"
	"github.com/google/uuid"
)

// GetByID во всех репозиториях возвращает nil, nil для отсутствующей записи.
// Update и Delete возвращают base.ErrNotFound.

type WorkshopRepository interface {
	Create(ctx context.Context, w *model.Workshop) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Workshop, error)
	List(ctx context.Context) ([]*model.Workshop, error)
	NextUpcoming(ctx context.Context, today time.Time, clock string) (*model.Workshop, error)
	Update(ctx context.Context, w *model.Workshop) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *model.Booking) error
	List(ctx context.Context) ([]*model.Booking, error)
	CountByWorkshop(ctx context.Context, workshopID uuid.UUID) (int, error)
}

type UnavailabilityRepository interface {
	Create(ctx context.Context, u *model.Unavailability) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Unavailability, error)
	List(ctx context.Context) ([]*model.Unavailability, error)
	Update(ctx context.Context, u *model.Unavailability) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type QuestionRepository interface {
	Create(ctx context.Context, q *model.Question) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error)
	List(ctx context.Context, f model.QuestionFilter) ([]*model.Question, error)
	Update(ctx context.Context, q *model.Question) error
	Delete(ctx context.Context, id uuid.UUID) error
}
