package handlers

import (
	"strings"

	"github.com/Freeeeeet/tutor_booking/internal/schedule"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetAvailability GET /api/availability?date=YYYY-MM-DD
func (h *Handlers) GetAvailability(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("date"))
	if raw == "" {
		return Fail(c, &schedule.Error{
			Kind:    schedule.KindMissingField,
			Field:   "date",
			Message: "Date parameter is required",
		})
	}

	day, err := schedule.ParseDate(raw)
	if err != nil {
		return Fail(c, err)
	}

	slots, err := h.availability.AvailableSlots(c.UserContext(), day)
	if err != nil {
		h.logger.Error("Failed to compute availability", zap.String("date", raw), zap.Error(err))
		return Fail(c, err)
	}
	return OK(c, slots)
}
