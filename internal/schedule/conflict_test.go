package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/model"
	"github.com/Freeeeeet/tutor_booking/internal/repository/memstore"
	"github.com/Freeeeeet/tutor_booking/internal/schedule"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := schedule.ParseDate(s)
	require.NoError(t, err)
	return d
}

func seedWorkshop(t *testing.T, store *memstore.Store, date, start, end string, capacity int) *model.Workshop {
	t.Helper()
	w := &model.Workshop{
		Title:     "Speaking club",
		Date:      day(t, date),
		StartTime: start,
		EndTime:   end,
		Capacity:  capacity,
	}
	require.NoError(t, store.Workshops().Create(context.Background(), w))
	return w
}

func seedBooking(t *testing.T, store *memstore.Store, start, end string, dates ...string) *model.Booking {
	t.Helper()
	b := &model.Booking{
		Name:        "Anna",
		BookingType: model.BookingTypePrivateSingle,
		StartTime:   start,
		EndTime:     end,
	}
	for _, d := range dates {
		b.SessionDates = append(b.SessionDates, day(t, d))
	}
	require.NoError(t, store.Bookings().Create(context.Background(), b))
	return b
}

func seedUnavailability(t *testing.T, store *memstore.Store, date, start, end string) *model.Unavailability {
	t.Helper()
	u := &model.Unavailability{Date: day(t, date), StartTime: start, EndTime: end}
	require.NoError(t, store.Unavailability().Create(context.Background(), u))
	return u
}

func TestCheck_UnavailabilityAgainstWorkshop(t *testing.T) {
	store := memstore.New()
	seedWorkshop(t, store, "2025-12-01", "10:00", "11:00", 5)
	checker := schedule.NewConflictChecker(store, nil)

	res, err := checker.Check(context.Background(), schedule.TargetUnavailability,
		schedule.TimeRange{Date: day(t, "2025-12-01"), Start: "10:00", End: "11:00"}, uuid.Nil)
	require.NoError(t, err)

	assert.True(t, res.HasConflict)
	assert.Equal(t, schedule.CommitmentWorkshop, res.Kind)
	assert.Equal(t, "Time slot conflict: Workshop exists at this time", res.Message)

	err = res.Err()
	assert.True(t, schedule.IsKind(err, schedule.KindSlotConflict))
}

func TestCheck_SessionIgnoresWorkshops(t *testing.T) {
	store := memstore.New()
	seedWorkshop(t, store, "2025-12-01", "10:00", "11:00", 5)
	checker := schedule.NewConflictChecker(store, nil)

	res, err := checker.Check(context.Background(), schedule.TargetSession,
		schedule.TimeRange{Date: day(t, "2025-12-01"), Start: "10:00", End: "11:00"}, uuid.Nil)
	require.NoError(t, err)
	assert.False(t, res.HasConflict)
}

func TestCheck_BookingCheckedBeforeUnavailability(t *testing.T) {
	store := memstore.New()
	seedBooking(t, store, "14:00", "15:00", "2025-12-01")
	seedUnavailability(t, store, "2025-12-01", "14:00", "15:00")
	checker := schedule.NewConflictChecker(store, nil)

	res, err := checker.Check(context.Background(), schedule.TargetSession,
		schedule.TimeRange{Date: day(t, "2025-12-01"), Start: "14:00", End: "15:00"}, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, schedule.CommitmentBooking, res.Kind)
	assert.Equal(t, "Time slot conflict: Booking exists at this time", res.Message)
}

func TestCheck_UnavailabilityAgainstUnavailability(t *testing.T) {
	store := memstore.New()
	seedUnavailability(t, store, "2025-12-01", "14:00", "15:00")
	checker := schedule.NewConflictChecker(store, nil)

	res, err := checker.Check(context.Background(), schedule.TargetSession,
		schedule.TimeRange{Date: day(t, "2025-12-01"), Start: "14:00", End: "15:00"}, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, schedule.CommitmentUnavailability, res.Kind)
	assert.Equal(t, "Time slot conflict: Unavailability block exists at this time", res.Message)
}

func TestCheck_ExactMatchBlindSpot(t *testing.T) {
	store := memstore.New()
	seedBooking(t, store, "10:00", "11:00", "2025-12-01")
	candidate := schedule.TimeRange{Date: day(t, "2025-12-01"), Start: "10:00", End: "12:00"}

	exact := schedule.NewConflictChecker(store, schedule.ExactMatch{})
	res, err := exact.Check(context.Background(), schedule.TargetSession, candidate, uuid.Nil)
	require.NoError(t, err)
	assert.False(t, res.HasConflict, "partial overlap is not detected in exact mode")

	overlap := schedule.NewConflictChecker(store, schedule.OverlapMatch{})
	res, err = overlap.Check(context.Background(), schedule.TargetSession, candidate, uuid.Nil)
	require.NoError(t, err)
	assert.True(t, res.HasConflict)
	assert.Equal(t, schedule.CommitmentBooking, res.Kind)
}

func TestCheck_OtherDateDoesNotConflict(t *testing.T) {
	store := memstore.New()
	seedBooking(t, store, "10:00", "11:00", "2025-12-01")
	checker := schedule.NewConflictChecker(store, nil)

	res, err := checker.Check(context.Background(), schedule.TargetSession,
		schedule.TimeRange{Date: day(t, "2025-12-02"), Start: "10:00", End: "11:00"}, uuid.Nil)
	require.NoError(t, err)
	assert.False(t, res.HasConflict)
}

func TestCheck_ExcludesOwnRecord(t *testing.T) {
	store := memstore.New()
	u := seedUnavailability(t, store, "2025-12-01", "10:00", "11:00")
	checker := schedule.NewConflictChecker(store, nil)
	r := schedule.TimeRange{Date: day(t, "2025-12-01"), Start: "10:00", End: "11:00"}

	res, err := checker.Check(context.Background(), schedule.TargetSession, r, u.ID)
	require.NoError(t, err)
	assert.False(t, res.HasConflict)
}

func TestCheck_Idempotent(t *testing.T) {
	store := memstore.New()
	seedBooking(t, store, "10:00", "11:00", "2025-12-01")
	checker := schedule.NewConflictChecker(store, nil)
	r := schedule.TimeRange{Date: day(t, "2025-12-01"), Start: "10:00", End: "11:00"}

	first, err := checker.Check(context.Background(), schedule.TargetSession, r, uuid.Nil)
	require.NoError(t, err)
	second, err := checker.Check(context.Background(), schedule.TargetSession, r, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMatcherByName(t *testing.T) {
	m, err := schedule.MatcherByName("")
	require.NoError(t, err)
	assert.IsType(t, schedule.ExactMatch{}, m)

	m, err = schedule.MatcherByName("Overlap")
	require.NoError(t, err)
	assert.IsType(t, schedule.OverlapMatch{}, m)

	_, err = schedule.MatcherByName("fuzzy")
	assert.Error(t, err)
}
