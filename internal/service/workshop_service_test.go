package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/lock"
	"github.com/Freeeeeet/tutor_booking/internal/model"
	"github.com/Freeeeeet/tutor_booking/internal/schedule"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workshopInput(date, start, end string) WorkshopInput {
	return WorkshopInput{
		Title:       "Speaking Club: Travel",
		Description: "Conversation practice",
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		Capacity:    6,
	}
}

func TestWorkshopService_Create(t *testing.T) {
	f := newFixture(lock.NewLocal())

	w, err := f.workshops.Create(ctx, workshopInput("2025-12-01", "10:00", "11:00"))
	require.NoError(t, err)
	assert.Equal(t, "speaking-club-travel", w.Slug)
	assert.NotEqual(t, uuid.Nil, w.ID)
}

func TestWorkshopService_CreateValidation(t *testing.T) {
	f := newFixture(nil)

	in := workshopInput("2025-12-01", "10:00", "11:00")
	in.Title = ""
	_, err := f.workshops.Create(ctx, in)
	var se *schedule.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, schedule.KindMissingField, se.Kind)
	assert.Equal(t, "title", se.Field)

	in = workshopInput("2025-12-01", "10:00", "11:00")
	in.Capacity = -1
	_, err = f.workshops.Create(ctx, in)
	assert.True(t, schedule.IsKind(err, schedule.KindInvalidInput))

	_, err = f.workshops.Create(ctx, workshopInput("2025/12/01", "10:00", "11:00"))
	assert.True(t, schedule.IsKind(err, schedule.KindInvalidDateFormat))

	_, err = f.workshops.Create(ctx, workshopInput("2025-12-01", "11:00", "10:00"))
	assert.True(t, schedule.IsKind(err, schedule.KindInvalidTimeRange))
}

func TestWorkshopService_CreateConflictsWithBooking(t *testing.T) {
	f := newFixture(nil)
	_, err := f.bookings.Create(ctx, privateBooking("2025-12-01", "10:00", "11:00"))
	require.NoError(t, err)

	_, err = f.workshops.Create(ctx, workshopInput("2025-12-01", "10:00", "11:00"))
	var se *schedule.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, schedule.KindSlotConflict, se.Kind)
	assert.Equal(t, schedule.CommitmentBooking, se.Commitment)
}

func TestWorkshopService_UpdateSkipsCheckWhenNotMoved(t *testing.T) {
	f := newFixture(nil)
	w, err := f.workshops.Create(ctx, workshopInput("2025-12-01", "10:00", "11:00"))
	require.NoError(t, err)

	// блок с тем же временем, записанный в обход проверок
	require.NoError(t, f.store.Unavailability().Create(ctx, &model.Unavailability{
		Date: w.Date, StartTime: "10:00", EndTime: "11:00",
	}))

	updated, err := f.workshops.Update(ctx, w.ID, WorkshopPatch{Title: ptr("Renamed"), Capacity: ptr(10)})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Slug)
	assert.Equal(t, 10, updated.Capacity)

	// повторная передача тех же значений тоже не перенос
	_, err = f.workshops.Update(ctx, w.ID, WorkshopPatch{Date: ptr("2025-12-01"), StartTime: ptr("10:00")})
	require.NoError(t, err)
}

func TestWorkshopService_UpdateMovedIsChecked(t *testing.T) {
	f := newFixture(nil)
	w, err := f.workshops.Create(ctx, workshopInput("2025-12-01", "10:00", "11:00"))
	require.NoError(t, err)
	_, err = f.unavailability.Create(ctx, UnavailabilityInput{Date: "2025-12-02", StartTime: "10:00", EndTime: "11:00"})
	require.NoError(t, err)

	_, err = f.workshops.Update(ctx, w.ID, WorkshopPatch{Date: ptr("2025-12-02")})
	var se *schedule.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, schedule.KindSlotConflict, se.Kind)
	assert.Equal(t, schedule.CommitmentUnavailability, se.Commitment)

	_, err = f.workshops.Update(ctx, w.ID, WorkshopPatch{Date: ptr("2025-12-02"), StartTime: ptr("11:00"), EndTime: ptr("12:00")})
	require.NoError(t, err)
}

func TestWorkshopService_UpdateNotFound(t *testing.T) {
	f := newFixture(nil)

	_, err := f.workshops.Update(ctx, uuid.New(), WorkshopPatch{Title: ptr("x")})
	assert.True(t, schedule.IsKind(err, schedule.KindNotFound))
}

func TestWorkshopService_DeleteBlockedByBookings(t *testing.T) {
	f := newFixture(lock.NewLocal())
	w, err := f.workshops.Create(ctx, workshopInput("2025-12-01", "10:00", "11:00"))
	require.NoError(t, err)

	in := privateBooking("", "09:00", "10:00")
	in.BookingType = "WORKSHOP"
	in.WorkshopID = w.ID.String()
	_, err = f.bookings.Create(ctx, in)
	require.NoError(t, err)

	_, err = f.workshops.Delete(ctx, w.ID)
	assert.True(t, schedule.IsKind(err, schedule.KindHasBookings))

	_, err = f.workshops.Get(ctx, w.ID)
	require.NoError(t, err)
}

func TestWorkshopService_Delete(t *testing.T) {
	f := newFixture(nil)
	w, err := f.workshops.Create(ctx, workshopInput("2025-12-01", "10:00", "11:00"))
	require.NoError(t, err)

	deleted, err := f.workshops.Delete(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, w.ID, deleted.ID)

	_, err = f.workshops.Delete(ctx, w.ID)
	assert.True(t, schedule.IsKind(err, schedule.KindNotFound))
}

func TestWorkshopService_Next(t *testing.T) {
	f := newFixture(nil)
	f.workshops.WithClock(func() time.Time {
		return time.Date(2025, 12, 1, 12, 30, 0, 0, time.UTC)
	})

	_, err := f.workshops.Create(ctx, workshopInput("2025-11-30", "10:00", "11:00"))
	require.NoError(t, err)
	_, err = f.workshops.Create(ctx, workshopInput("2025-12-01", "12:00", "13:00"))
	require.NoError(t, err)
	later, err := f.workshops.Create(ctx, workshopInput("2025-12-01", "14:00", "15:00"))
	require.NoError(t, err)
	_, err = f.workshops.Create(ctx, workshopInput("2025-12-05", "09:00", "10:00"))
	require.NoError(t, err)

	next, err := f.workshops.Next(ctx)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, later.ID, next.ID)
}

func TestWorkshopService_NextNone(t *testing.T) {
	f := newFixture(nil)

	next, err := f.workshops.Next(ctx)
	require.NoError(t, err)
	assert.Nil(t, next)
}

// keyRecorder запоминает ключи каждого вызова guard
type keyRecorder struct {
	lock.Guard
	mu    sync.Mutex
	calls [][]string
}

func (r *keyRecorder) Do(ctx context.Context, keys []string, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	r.calls = append(r.calls, append([]string(nil), keys...))
	r.mu.Unlock()
	return r.Guard.Do(ctx, keys, fn)
}

func TestWorkshopService_UpdateLocksWorkshopKey(t *testing.T) {
	guard := &keyRecorder{Guard: lock.NewLocal()}
	f := newFixture(guard)

	w, err := f.workshops.Create(ctx, workshopInput("2025-12-01", "10:00", "11:00"))
	require.NoError(t, err)

	_, err = f.workshops.Update(ctx, w.ID, WorkshopPatch{Capacity: ptr(2)})
	require.NoError(t, err)

	require.Len(t, guard.calls, 2)
	assert.Contains(t, guard.calls[1], lock.WorkshopKey(w.ID))
	assert.Contains(t, guard.calls[1], "day:2025-12-01")
}

func TestWorkshopService_CapacityChangeWaitsForWorkshopBooking(t *testing.T) {
	guard := lock.NewLocal()
	f := newFixture(guard)

	w, err := f.workshops.Create(ctx, workshopInput("2025-12-01", "10:00", "11:00"))
	require.NoError(t, err)

	// запись участника держит ключ воркшопа
	entered := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = guard.Do(ctx, []string{lock.WorkshopKey(w.ID)}, func(context.Context) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	shortCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	_, err = f.workshops.Update(shortCtx, w.ID, WorkshopPatch{Capacity: ptr(1)})
	assert.Error(t, err, "capacity update must wait for the workshop key")
	close(release)

	got, err := f.workshops.Get(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Capacity)

	_, err = f.workshops.Update(ctx, w.ID, WorkshopPatch{Capacity: ptr(1)})
	require.NoError(t, err)
}
