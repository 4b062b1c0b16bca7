package handlers

import (
	"github.com/Freeeeeet/tutor_booking/internal/schedule"
	"github.com/gofiber/fiber/v2"
)

// CreateBooking POST /api/bookings
func (h *Handlers) CreateBooking(c *fiber.Ctx) error {
	var in schedule.BookingInput
	if err := parseBody(c, &in); err != nil {
		return Fail(c, err)
	}

	booking, err := h.bookings.Create(c.UserContext(), in)
	if err != nil {
		return Fail(c, err)
	}
	return Created(c, booking)
}

// ListBookings GET /api/admin/bookings
func (h *Handlers) ListBookings(c *fiber.Ctx) error {
	bookings, err := h.bookings.List(c.UserContext())
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, bookings)
}
