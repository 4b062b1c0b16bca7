package notify

import (
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "01.12.2025 (Понедельник)", FormatDate(d))
}

func TestBookingText_EscapesUserInput(t *testing.T) {
	b := &model.Booking{
		Reference:    "K7Q2M9XA",
		Name:         "<b>Anna</b>",
		Email:        "anna@example.com",
		Phone:        "+7",
		EnglishLevel: "B1",
		BookingType:  model.BookingTypePrivatePackage4,
		SessionDates: []time.Time{
			time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC),
		},
		StartTime: "10:00",
		EndTime:   "11:00",
	}

	text := BookingText(b)
	assert.Contains(t, text, "&lt;b&gt;Anna&lt;/b&gt;")
	assert.Contains(t, text, "Пакет из 4 занятий")
	assert.Contains(t, text, "01.12.2025 (Понедельник), 10:00-11:00")
	assert.Contains(t, text, "08.12.2025")
	assert.Contains(t, text, "K7Q2M9XA")
}

func TestAgendaText(t *testing.T) {
	d := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	assert.Contains(t, AgendaText(d, nil), "Записей нет")

	text := AgendaText(d, []model.AgendaItem{
		{Kind: model.AgendaWorkshop, Title: "Grammar", StartTime: "10:00", EndTime: "12:00"},
		{Kind: model.AgendaUnavailability, Title: "Dentist", StartTime: "15:00", EndTime: "16:00"},
	})
	assert.Contains(t, text, "👥 10:00-12:00 Grammar")
	assert.Contains(t, text, "⛔️ 15:00-16:00 Dentist")
}

func TestAvailabilityText(t *testing.T) {
	d := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	assert.Contains(t, AvailabilityText(d, []string{"09:00", "11:00"}), "09:00, 11:00")
	assert.Contains(t, AvailabilityText(d, nil), "Свободных слотов нет")
}
