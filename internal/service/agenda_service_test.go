package service

import (
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgendaService_Day(t *testing.T) {
	f := newFixture(nil)

	w, err := f.workshops.Create(ctx, workshopInput("2025-12-01", "12:00", "13:00"))
	require.NoError(t, err)
	_, err = f.bookings.Create(ctx, privateBooking("2025-12-01", "09:00", "10:00"))
	require.NoError(t, err)
	_, err = f.unavailability.Create(ctx, UnavailabilityInput{Date: "2025-12-01", StartTime: "15:00", EndTime: "16:00"})
	require.NoError(t, err)
	_, err = f.bookings.Create(ctx, privateBooking("2025-12-02", "09:00", "10:00"))
	require.NoError(t, err)

	// участник воркшопа не дублирует сам воркшоп
	in := privateBooking("", "09:00", "10:00")
	in.BookingType = "WORKSHOP"
	in.WorkshopID = w.ID.String()
	_, err = f.bookings.Create(ctx, in)
	require.NoError(t, err)

	items, err := f.agenda.Day(ctx, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, model.AgendaBooking, items[0].Kind)
	assert.Equal(t, "09:00", items[0].StartTime)
	assert.Equal(t, model.AgendaWorkshop, items[1].Kind)
	assert.Equal(t, model.AgendaUnavailability, items[2].Kind)
	assert.Equal(t, "Unavailable", items[2].Title)
}
