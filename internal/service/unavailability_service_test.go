package service

import (
	"testing"

	"github.com/Freeeeeet/tutor_booking/internal/lock"
	"github.com/Freeeeeet/tutor_booking/internal/schedule"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnavailabilityService_ConflictsWithWorkshop(t *testing.T) {
	f := newFixture(lock.NewLocal())
	_, err := f.workshops.Create(ctx, workshopInput("2025-12-01", "10:00", "11:00"))
	require.NoError(t, err)

	_, err = f.unavailability.Create(ctx, UnavailabilityInput{Date: "2025-12-01", StartTime: "10:00", EndTime: "11:00"})

	var se *schedule.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, schedule.KindSlotConflict, se.Kind)
	assert.Equal(t, schedule.CommitmentWorkshop, se.Commitment)
}

func TestUnavailabilityService_ConflictsWithBooking(t *testing.T) {
	f := newFixture(nil)
	_, err := f.bookings.Create(ctx, privateBooking("2025-12-01", "16:00", "17:00"))
	require.NoError(t, err)

	_, err = f.unavailability.Create(ctx, UnavailabilityInput{Date: "2025-12-01", StartTime: "16:00", EndTime: "17:00"})
	var se *schedule.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, schedule.CommitmentBooking, se.Commitment)
}

func TestUnavailabilityService_Lifecycle(t *testing.T) {
	f := newFixture(nil)

	u, err := f.unavailability.Create(ctx, UnavailabilityInput{
		Date: "2025-12-01", StartTime: "09:00", EndTime: "12:00", Reason: " Dentist ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dentist", u.Reason)

	updated, err := f.unavailability.Update(ctx, u.ID, UnavailabilityPatch{EndTime: ptr("13:00")})
	require.NoError(t, err)
	assert.Equal(t, "13:00", updated.EndTime)

	_, err = f.unavailability.Update(ctx, u.ID, UnavailabilityPatch{EndTime: ptr("08:00")})
	assert.True(t, schedule.IsKind(err, schedule.KindInvalidTimeRange))

	blocks, err := f.unavailability.List(ctx)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	_, err = f.unavailability.Delete(ctx, u.ID)
	require.NoError(t, err)

	_, err = f.unavailability.Delete(ctx, u.ID)
	assert.True(t, schedule.IsKind(err, schedule.KindNotFound))

	_, err = f.unavailability.Update(ctx, uuid.New(), UnavailabilityPatch{})
	assert.True(t, schedule.IsKind(err, schedule.KindNotFound))
}
