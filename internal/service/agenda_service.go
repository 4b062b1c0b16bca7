package service

import (
	"context"
	"sort"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/model"
	"github.com/Freeeeeet/tutor_booking/internal/schedule"
	"golang.org/x/sync/errgroup"
)

// AgendaService собирает все записи дня для преподавателя
type AgendaService struct {
	store schedule.Store
}

func NewAgendaService(store schedule.Store) *AgendaService {
	return &AgendaService{store: store}
}

// Day возвращает записи дня, отсортированные по времени начала
func (s *AgendaService) Day(ctx context.Context, day time.Time) ([]model.AgendaItem, error) {
	day = model.Day(day)

	var (
		workshops []*model.Workshop
		bookings  []*model.Booking
		blocks    []*model.Unavailability
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		workshops, err = s.store.WorkshopsOn(gctx, day)
		return err
	})
	g.Go(func() (err error) {
		bookings, err = s.store.BookingsOn(gctx, day)
		return err
	})
	g.Go(func() (err error) {
		blocks, err = s.store.UnavailabilityOn(gctx, day)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, storeFailure("load agenda", err)
	}

	items := make([]model.AgendaItem, 0, len(workshops)+len(bookings)+len(blocks))
	for _, w := range workshops {
		items = append(items, model.AgendaItem{
			ID:        w.ID,
			Kind:      model.AgendaWorkshop,
			Title:     w.Title,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		})
	}
	for _, b := range bookings {
		// Участники воркшопа уже видны через сам воркшоп
		if b.BookingType == model.BookingTypeWorkshop {
			continue
		}
		items = append(items, model.AgendaItem{
			ID:        b.ID,
			Kind:      model.AgendaBooking,
			Title:     b.Name + " (" + string(b.BookingType) + ")",
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
		})
	}
	for _, u := range blocks {
		title := u.Reason
		if title == "" {
			title = "Unavailable"
		}
		items = append(items, model.AgendaItem{
			ID:        u.ID,
			Kind:      model.AgendaUnavailability,
			Title:     title,
			StartTime: u.StartTime,
			EndTime:   u.EndTime,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StartTime < items[j].StartTime
	})
	return items, nil
}
