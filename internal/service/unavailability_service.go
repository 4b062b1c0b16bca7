package service

import (
	"context"
	"strings"

	"github.com/Freeeeeet/tutor_booking/internal/lock"
	"github.com/Freeeeeet/tutor_booking/internal/model"
	"github.com/Freeeeeet/tutor_booking/internal/notify"
	"github.com/Freeeeeet/tutor_booking/internal/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UnavailabilityInput данные блока недоступности
type UnavailabilityInput struct {
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	Reason    string `json:"reason" validate:"max=500"`
}

// UnavailabilityPatch частичное обновление блока
type UnavailabilityPatch struct {
	Date      *string `json:"date"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Reason    *string `json:"reason" validate:"omitempty,max=500"`
}

type UnavailabilityService struct {
	repo     UnavailabilityRepository
	checker  *schedule.ConflictChecker
	guard    lock.Guard
	notifier notify.Notifier
	logger   *zap.Logger
}

func NewUnavailabilityService(
	repo UnavailabilityRepository,
	checker *schedule.ConflictChecker,
	guard lock.Guard,
	notifier notify.Notifier,
	logger *zap.Logger,
) *UnavailabilityService {
	if guard == nil {
		guard = lock.Nop{}
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &UnavailabilityService{
		repo:     repo,
		checker:  checker,
		guard:    guard,
		notifier: notifier,
		logger:   logger,
	}
}

// Create закрывает интервал после проверки конфликтов с воркшопами и бронированиями
func (s *UnavailabilityService) Create(ctx context.Context, in UnavailabilityInput) (*model.Unavailability, error) {
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

	block := &model.Unavailability{
		Date:      date,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Reason:    strings.TrimSpace(in.Reason),
	}

	err = s.guard.Do(ctx, []string{lock.DayKey(date)}, func(ctx context.Context) error {
		res, err := s.checker.Check(ctx, schedule.TargetUnavailability, blockRange(block), uuid.Nil)
		if err != nil {
			return err
		}
		if res.HasConflict {
			return res.Err()
		}
		return s.repo.Create(ctx, block)
	})
	if err != nil {
		return nil, storeFailure("create unavailability", err)
	}

	s.logger.Info("Unavailability created",
		zap.String("unavailability_id", block.ID.String()),
		zap.String("date", model.FormatDay(block.Date)),
		zap.String("start", block.StartTime),
		zap.String("end", block.EndTime))

	s.notifier.UnavailabilityCreated(ctx, block)
	return block, nil
}

// Update применяет patch, проверяя конфликты только при переносе
func (s *UnavailabilityService) Update(ctx context.Context, id uuid.UUID, patch UnavailabilityPatch) (*model.Unavailability, error) {
	if err := validateStruct(patch); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure("get unavailability", err)
	}
	if existing == nil {
		return nil, schedule.NotFound("Unavailability")
	}

	updated := *existing
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
	if patch.Reason != nil {
		updated.Reason = strings.TrimSpace(*patch.Reason)
	}

	moved := !model.SameDay(updated.Date, existing.Date) ||
		updated.StartTime != existing.StartTime ||
		updated.EndTime != existing.EndTime

	if moved {
		if err := schedule.ValidateTimeRange(updated.StartTime, updated.EndTime); err != nil {
			return nil, err
		}
	}

	keys := []string{lock.DayKey(existing.Date), lock.DayKey(updated.Date)}
	err = s.guard.Do(ctx, keys, func(ctx context.Context) error {
		if moved {
			res, err := s.checker.Check(ctx, schedule.TargetUnavailability, blockRange(&updated), id)
			if err != nil {
				return err
			}
			if res.HasConflict {
				return res.Err()
			}
		}
		return s.repo.Update(ctx, &updated)
	})
	if err != nil {
		return nil, writeFailure("update unavailability", "Unavailability", err)
	}

	s.logger.Info("Unavailability updated",
		zap.String("unavailability_id", id.String()),
		zap.Bool("rescheduled", moved))

	return &updated, nil
}

// Delete удаляет блок
func (s *UnavailabilityService) Delete(ctx context.Context, id uuid.UUID) (*model.Unavailability, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure("get unavailability", err)
	}
	if existing == nil {
		return nil, schedule.NotFound("Unavailability")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, writeFailure("delete unavailability", "Unavailability", err)
	}

	s.logger.Info("Unavailability deleted", zap.String("unavailability_id", id.String()))
	return existing, nil
}

// List возвращает все блоки
func (s *UnavailabilityService) List(ctx context.Context) ([]*model.Unavailability, error) {
	blocks, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeFailure("list unavailability", err)
	}
	return blocks, nil
}

func blockRange(u *model.Unavailability) schedule.TimeRange {
	return schedule.TimeRange{Date: u.Date, Start: u.StartTime, End: u.EndTime}
}
