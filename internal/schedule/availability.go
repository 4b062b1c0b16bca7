package schedule

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/model"
	"golang.org/x/sync/errgroup"
)

// AvailabilityCalculator вычисляет свободные слоты дня
type AvailabilityCalculator struct {
	store Store
	loc   *time.Location // зона, в которой определяется "сегодня"
	now   func() time.Time
}

func NewAvailabilityCalculator(store Store, loc *time.Location) *AvailabilityCalculator {
	if loc == nil {
		loc = time.UTC
	}
	return &AvailabilityCalculator{store: store, loc: loc, now: time.Now}
}

// WithClock подменяет часы (для тестов и фоновых задач)
func (c *AvailabilityCalculator) WithClock(now func() time.Time) *AvailabilityCalculator {
	c.now = now
	return c
}

// Today текущая календарная дата в зоне отсечения
func (c *AvailabilityCalculator) Today() time.Time {
	return model.Day(c.now().In(c.loc))
}

// IsPast проверяет что день строго раньше сегодняшнего
func (c *AvailabilityCalculator) IsPast(day time.Time) bool {
	return model.Day(day).Before(c.Today())
}

// AvailableSlots возвращает слоты сетки, не занятые ни одной записью дня.
// Для прошедших дат возвращается пустой список без ошибки.
func (c *AvailabilityCalculator) AvailableSlots(ctx context.Context, day time.Time) ([]Slot, error) {
	day = model.Day(day)
	if c.IsPast(day) {
		return []Slot{}, nil
	}

	var (
		workshops []*model.Workshop
		bookings  []*model.Booking
		blocks    []*model.Unavailability
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		workshops, err = c.store.WorkshopsOn(gctx, day)
		return storeErrOrNil("find workshops", err)
	})
	g.Go(func() error {
		var err error
		bookings, err = c.store.BookingsOn(gctx, day)
		return storeErrOrNil("find bookings", err)
	})
	g.Go(func() error {
		var err error
		blocks, err = c.store.UnavailabilityOn(gctx, day)
		return storeErrOrNil("find unavailability", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	occupied := make(map[Slot]struct{})
	for _, w := range workshops {
		markOccupied(occupied, w.StartTime, w.EndTime)
	}
	for _, b := range bookings {
		markOccupied(occupied, b.StartTime, b.EndTime)
	}
	for _, u := range blocks {
		markOccupied(occupied, u.StartTime, u.EndTime)
	}

	available := make([]Slot, 0, len(allSlots))
	for _, s := range allSlots {
		if _, busy := occupied[s]; !busy {
			available = append(available, s)
		}
	}
	return available, nil
}

func storeErrOrNil(op string, err error) error {
	if err == nil {
		return nil
	}
	return storeErr(op, err)
}
