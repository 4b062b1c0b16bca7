package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/notify"
	"github.com/Freeeeeet/tutor_booking/internal/service"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	cron     *cron.Cron
	expr     string
	agenda   *service.AgendaService
	notifier notify.Notifier
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// NewScheduler создаёт новый планировщик. expr задаёт время ежедневной сводки.
func NewScheduler(expr string, agenda *service.AgendaService, notifier notify.Notifier, loc *time.Location, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		expr:     expr,
		agenda:   agenda,
		notifier: notifier,
		loc:      loc,
		now:      time.Now,
		logger:   logger,
	}
}

// Start регистрирует задачи и запускает cron
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.expr, func() {
		s.sendDigest(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule digest %q: %w", s.expr, err)
	}

	s.logger.Info("Starting background scheduler", zap.String("digest_cron", s.expr))
	s.cron.Start()
	return nil
}

// Stop останавливает cron и ждёт завершения запущенных задач
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	<-s.cron.Stop().Done()
}

// sendDigest отправляет преподавателю расписание на завтра
func (s *Scheduler) sendDigest(ctx context.Context) {
	tomorrow := s.now().In(s.loc).AddDate(0, 0, 1)

	items, err := s.agenda.Day(ctx, tomorrow)
	if err != nil {
		s.logger.Error("Failed to build daily digest", zap.Error(err))
		return
	}

	s.notifier.DailyDigest(ctx, tomorrow, items)
	s.logger.Info("Daily digest sent", zap.Int("items", len(items)))
}
