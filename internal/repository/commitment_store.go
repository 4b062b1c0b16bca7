package repository

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/model"
	"github.com/google/uuid"
)

// CommitmentStore отдаёт планировщику записи, занимающие слоты, из Postgres
type CommitmentStore struct {
	workshops      *WorkshopRepository
	bookings       *BookingRepository
	unavailability *UnavailabilityRepository
}

func NewCommitmentStore(w *WorkshopRepository, b *BookingRepository, u *UnavailabilityRepository) *CommitmentStore {
	return &CommitmentStore{workshops: w, bookings: b, unavailability: u}
}

func (s *CommitmentStore) WorkshopsOn(ctx context.Context, day time.Time) ([]*model.Workshop, error) {
	return s.workshops.ListByDate(ctx, day)
}

func (s *CommitmentStore) BookingsOn(ctx context.Context, day time.Time) ([]*model.Booking, error) {
	return s.bookings.ListBySessionDate(ctx, day)
}

func (s *CommitmentStore) UnavailabilityOn(ctx context.Context, day time.Time) ([]*model.Unavailability, error) {
	return s.unavailability.ListByDate(ctx, day)
}

func (s *CommitmentStore) GetWorkshop(ctx context.Context, id uuid.UUID) (*model.Workshop, error) {
	return s.workshops.GetByID(ctx, id)
}

func (s *CommitmentStore) CountWorkshopBookings(ctx context.Context, workshopID uuid.UUID) (int, error) {
	return s.bookings.CountByWorkshop(ctx, workshopID)
}
