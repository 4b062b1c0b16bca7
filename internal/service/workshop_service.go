package service

import (
	"context"
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/lock"
	"github.com/Freeeeeet/tutor_booking/internal/model"
	"github.com/Freeeeeet/tutor_booking/internal/notify"
	"github.com/Freeeeeet/tutor_booking/internal/schedule"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// WorkshopInput данные для создания воркшопа
type WorkshopInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"required"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
	Capacity    int    `json:"capacity" validate:"required,min=1"`
}

// WorkshopPatch частичное обновление: nil поле не меняется
type WorkshopPatch struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	Capacity    *int    `json:"capacity" validate:"omitempty,min=1"`
}

type WorkshopService struct {
	workshopRepo WorkshopRepository
	bookingRepo  BookingRepository
	checker      *schedule.ConflictChecker
	guard        lock.Guard
	notifier     notify.Notifier
	loc          *time.Location
	now          func() time.Time
	logger       *zap.Logger
}

func NewWorkshopService(
	workshopRepo WorkshopRepository,
	bookingRepo BookingRepository,
	checker *schedule.ConflictChecker,
	guard lock.Guard,
	notifier notify.Notifier,
	loc *time.Location,
	logger *zap.Logger,
) *WorkshopService {
	if guard == nil {
		guard = lock.Nop{}
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &WorkshopService{
		workshopRepo: workshopRepo,
		bookingRepo:  bookingRepo,
		checker:      checker,
		guard:        guard,
		notifier:     notifier,
		loc:          loc,
		now:          time.Now,
		logger:       logger,
	}
}

// WithClock подменяет часы
func (s *WorkshopService) WithClock(now func() time.Time) *WorkshopService {
	s.now = now
	return s
}

// Create создаёт воркшоп после проверки конфликтов с бронированиями и недоступностью
func (s *WorkshopService) Create(ctx context.Context, in WorkshopInput) (*model.Workshop, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	date, err := schedule.ParseDate(strings.TrimSpace(in.Date))
	if err != nil {
		return nil, err
	}
	if err := schedule.ValidateTimeRange(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	workshop := &model.Workshop{
		Title:       strings.TrimSpace(in.Title),
		Slug:        slug.Make(in.Title),
		Description: strings.TrimSpace(in.Description),
		Date:        date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Capacity:    in.Capacity,
	}

	err = s.guard.Do(ctx, []string{lock.DayKey(date)}, func(ctx context.Context) error {
		res, err := s.checker.Check(ctx, schedule.TargetSession, timeRangeOf(workshop), uuid.Nil)
		if err != nil {
			return err
		}
		if res.HasConflict {
			return res.Err()
		}
		return s.workshopRepo.Create(ctx, workshop)
	})
	if err != nil {
		return nil, storeFailure("create workshop", err)
	}

	s.logger.Info("Workshop created",
		zap.String("workshop_id", workshop.ID.String()),
		zap.String("date", model.FormatDay(workshop.Date)),
		zap.String("start", workshop.StartTime),
		zap.String("end", workshop.EndTime))

	s.notifier.WorkshopCreated(ctx, workshop)
	return workshop, nil
}

// Update применяет patch. Конфликты проверяются только если изменились дата или время.
func (s *WorkshopService) Update(ctx context.Context, id uuid.UUID, patch WorkshopPatch) (*model.Workshop, error) {
	if err := validateStruct(patch); err != nil {
		return nil, err
	}

	existing, err := s.workshopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure("get workshop", err)
	}
	if existing == nil {
		return nil, schedule.NotFound("Workshop")
	}

	updated := *existing
	if patch.Title != nil {
		updated.Title = strings.TrimSpace(*patch.Title)
		updated.Slug = slug.Make(updated.Title)
	}
	if patch.Description != nil {
		updated.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Capacity != nil {
		updated.Capacity = *patch.Capacity
	}
	if patch.Date != nil {
		date, err := schedule.ParseDate(strings.TrimSpace(*patch.Date))
		if err != nil {
			return nil, err
		}
		updated.Date = date
	}
	if patch.StartTime != nil {
		updated.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		updated.EndTime = *patch.EndTime
	}

	moved := !model.SameDay(updated.Date, existing.Date) ||
		updated.StartTime != existing.StartTime ||
		updated.EndTime != existing.EndTime

	if moved {
		if err := schedule.ValidateTimeRange(updated.StartTime, updated.EndTime); err != nil {
			return nil, err
		}
	}

	// ключ воркшопа сериализует изменение вместимости с записью участников
	keys := []string{lock.DayKey(existing.Date), lock.DayKey(updated.Date), lock.WorkshopKey(id)}
	err = s.guard.Do(ctx, keys, func(ctx context.Context) error {
		if moved {
			res, err := s.checker.Check(ctx, schedule.TargetSession, timeRangeOf(&updated), id)
			if err != nil {
				return err
			}
			if res.HasConflict {
				return res.Err()
			}
		}
		return s.workshopRepo.Update(ctx, &updated)
	})
	if err != nil {
		return nil, writeFailure("update workshop", "Workshop", err)
	}

	s.logger.Info("Workshop updated",
		zap.String("workshop_id", id.String()),
		zap.Bool("rescheduled", moved))

	return &updated, nil
}

// Delete удаляет воркшоп, если на него нет бронирований
func (s *WorkshopService) Delete(ctx context.Context, id uuid.UUID) (*model.Workshop, error) {
	var deleted *model.Workshop

	err := s.guard.Do(ctx, []string{lock.WorkshopKey(id)}, func(ctx context.Context) error {
		existing, err := s.workshopRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return schedule.NotFound("Workshop")
		}

		count, err := s.bookingRepo.CountByWorkshop(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return schedule.Errorf(schedule.KindHasBookings,
				"Cannot delete workshop with existing bookings (%d)", count)
		}

		if err := s.workshopRepo.Delete(ctx, id); err != nil {
			return err
		}
		deleted = existing
		return nil
	})
	if err != nil {
		return nil, writeFailure("delete workshop", "Workshop", err)
	}

	s.logger.Info("Workshop deleted", zap.String("workshop_id", id.String()))
	return deleted, nil
}

// Get получает воркшоп по ID
func (s *WorkshopService) Get(ctx context.Context, id uuid.UUID) (*model.Workshop, error) {
	w, err := s.workshopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure("get workshop", err)
	}
	if w == nil {
		return nil, schedule.NotFound("Workshop")
	}
	return w, nil
}

// List возвращает все воркшопы по дате
func (s *WorkshopService) List(ctx context.Context) ([]*model.Workshop, error) {
	workshops, err := s.workshopRepo.List(ctx)
	if err != nil {
		return nil, storeFailure("list workshops", err)
	}
	return workshops, nil
}

// Next ближайший ещё не начавшийся воркшоп или nil
func (s *WorkshopService) Next(ctx context.Context) (*model.Workshop, error) {
	now := s.now().In(s.loc)
	w, err := s.workshopRepo.NextUpcoming(ctx, model.Day(now), now.Format("15:04"))
	if err != nil {
		return nil, storeFailure("get next workshop", err)
	}
	return w, nil
}

func timeRangeOf(w *model.Workshop) schedule.TimeRange {
	return schedule.TimeRange{Date: w.Date, Start: w.StartTime, End: w.EndTime}
}
