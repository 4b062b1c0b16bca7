package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/tutor_booking/internal/lock"
	"github.com/Freeeeeet/tutor_booking/internal/model"
	"github.com/Freeeeeet/tutor_booking/internal/notify"
	"github.com/Freeeeeet/tutor_booking/internal/schedule"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

// Алфавит кода бронирования без похожих символов (0/O, 1/I)
const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type BookingService struct {
	bookingRepo BookingRepository
	validator   *schedule.BookingValidator
	guard       lock.Guard
	notifier    notify.Notifier
	logger      *zap.Logger
}

func NewBookingService(
	bookingRepo BookingRepository,
	validator *schedule.BookingValidator,
	guard lock.Guard,
	notifier notify.Notifier,
	logger *zap.Logger,
) *BookingService {
	if guard == nil {
		guard = lock.Nop{}
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &BookingService{
		bookingRepo: bookingRepo,
		validator:   validator,
		guard:       guard,
		notifier:    notifier,
		logger:      logger,
	}
}

// Create проверяет и сохраняет бронирование.
// Проверка и запись выполняются под guard по ключам затронутых дней и воркшопа.
func (s *BookingService) Create(ctx context.Context, in schedule.BookingInput) (*model.Booking, error) {
	var booking *model.Booking

	err := s.guard.Do(ctx, bookingLockKeys(in), func(ctx context.Context) error {
		prepared, err := s.validator.Prepare(ctx, in)
		if err != nil {
			return err
		}

		ref, err := gonanoid.Generate(referenceAlphabet, 8)
		if err != nil {
			return fmt.Errorf("generate booking reference: %w", err)
		}
		prepared.Reference = ref

		if err := s.bookingRepo.Create(ctx, prepared); err != nil {
			return err
		}
		booking = prepared
		return nil
	})
	if err != nil {
		if schedule.KindOf(err) == "" {
			s.logger.Error("Failed to create booking",
				zap.String("booking_type", in.BookingType),
				zap.Error(err))
		}
		return nil, storeFailure("create booking", err)
	}

	s.logger.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.String("booking_type", string(booking.BookingType)),
		zap.Int("sessions", len(booking.SessionDates)))

	s.notifier.BookingCreated(ctx, booking)
	return booking, nil
}

// List возвращает все бронирования для администратора
func (s *BookingService) List(ctx context.Context) ([]*model.Booking, error) {
	bookings, err := s.bookingRepo.List(ctx)
	if err != nil {
		return nil, storeFailure("list bookings", err)
	}
	return bookings, nil
}

// bookingLockKeys ключи для guard. Нераспознанные значения пропускаются:
// о них сообщит валидатор.
func bookingLockKeys(in schedule.BookingInput) []string {
	if model.BookingType(in.BookingType) == model.BookingTypeWorkshop {
		id, err := uuid.Parse(strings.TrimSpace(in.WorkshopID))
		if err != nil {
			return nil
		}
		return []string{lock.WorkshopKey(id)}
	}

	keys := make([]string, 0, len(in.SessionDates))
	for _, raw := range in.SessionDates {
		d, err := schedule.ParseDate(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		keys = append(keys, lock.DayKey(d))
	}
	return keys
}
