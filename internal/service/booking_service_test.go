package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/lock"
	"github.com/Freeeeeet/tutor_booking/internal/model"
	"github.com/Freeeeeet/tutor_booking/internal/repository/memstore"
	"github.com/Freeeeeet/tutor_booking/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingService_Create(t *testing.T) {
	f := newFixture(lock.Nop{})

	b, err := f.bookings.Create(ctx, privateBooking("2025-12-01", "10:00", "11:00"))
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Len(t, b.Reference, 8)
	assert.False(t, b.CreatedAt.IsZero())

	all, err := f.bookings.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, b.Reference, all[0].Reference)
}

func TestBookingService_SameSlotRejected(t *testing.T) {
	f := newFixture(lock.Nop{})

	_, err := f.bookings.Create(ctx, privateBooking("2025-12-01", "10:00", "11:00"))
	require.NoError(t, err)

	_, err = f.bookings.Create(ctx, privateBooking("2025-12-01", "10:00", "11:00"))
	assert.True(t, schedule.IsKind(err, schedule.KindSlotConflict))
}

func TestBookingService_WorkshopSnapshotNotSynced(t *testing.T) {
	f := newFixture(lock.Nop{})

	w, err := f.workshops.Create(ctx, WorkshopInput{
		Title: "Grammar", Description: "Tenses", Date: "2025-12-01",
		StartTime: "10:00", EndTime: "12:00", Capacity: 5,
	})
	require.NoError(t, err)

	in := privateBooking("", "09:00", "10:00")
	in.BookingType = "WORKSHOP"
	in.WorkshopID = w.ID.String()
	in.SessionDates = nil
	b, err := f.bookings.Create(ctx, in)
	require.NoError(t, err)

	_, err = f.workshops.Update(ctx, w.ID, WorkshopPatch{StartTime: ptr("13:00"), EndTime: ptr("15:00")})
	require.NoError(t, err)

	all, err := f.bookings.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, b.ID, all[0].ID)
	assert.Equal(t, "10:00", all[0].StartTime)
	require.NotNil(t, all[0].Workshop)
	assert.Equal(t, "13:00", all[0].Workshop.StartTime)
}

// barrierStore задерживает чтение бронирований, пока все участники не прочитают их,
// или до истечения timeout, если кто-то ждёт блокировку
type barrierStore struct {
	*memstore.Store
	parties int32
	arrived atomic.Int32
	release chan struct{}
	once    sync.Once
	timeout time.Duration
}

func newBarrierStore(mem *memstore.Store, parties int, timeout time.Duration) *barrierStore {
	return &barrierStore{
		Store:   mem,
		parties: int32(parties),
		release: make(chan struct{}),
		timeout: timeout,
	}
}

func (s *barrierStore) BookingsOn(ctx context.Context, day time.Time) ([]*model.Booking, error) {
	bookings, err := s.Store.BookingsOn(ctx, day)
	if s.arrived.Add(1) >= s.parties {
		s.once.Do(func() { close(s.release) })
	}
	select {
	case <-s.release:
	case <-time.After(s.timeout):
	}
	return bookings, err
}

func raceTwoBookings(t *testing.T, guard lock.Guard) (successes int, conflicts int) {
	t.Helper()
	mem := memstore.New()
	f := newFixtureWithStore(mem, newBarrierStore(mem, 2, 500*time.Millisecond), guard)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.bookings.Create(ctx, privateBooking("2025-12-01", "10:00", "11:00"))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case schedule.IsKind(err, schedule.KindSlotConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	return successes, conflicts
}

func TestBookingService_RaceWithoutGuard(t *testing.T) {
	successes, conflicts := raceTwoBookings(t, lock.Nop{})

	// проверка и запись не атомарны: оба запроса проходят
	assert.Equal(t, 2, successes)
	assert.Zero(t, conflicts)
}

func TestBookingService_RaceWithLocalGuard(t *testing.T) {
	successes, conflicts := raceTwoBookings(t, lock.NewLocal())

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
}

func TestBookingLockKeys(t *testing.T) {
	in := privateBooking("2025-12-01", "10:00", "11:00")
	in.SessionDates = []string{"2025-12-02", "bad", "2025-12-01"}
	assert.Equal(t, []string{"day:2025-12-02", "day:2025-12-01"}, bookingLockKeys(in))

	in.BookingType = "WORKSHOP"
	in.WorkshopID = "not-a-uuid"
	assert.Empty(t, bookingLockKeys(in))
}
