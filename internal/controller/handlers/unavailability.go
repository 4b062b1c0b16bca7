package handlers

import (
	"github.com/Freeeeeet/tutor_booking/internal/service"
	"github.com/gofiber/fiber/v2"
)

func (h *Handlers) ListUnavailability(c *fiber.Ctx) error {
	blocks, err := h.unavailability.List(c.UserContext())
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, blocks)
}

func (h *Handlers) CreateUnavailability(c *fiber.Ctx) error {
	var in service.UnavailabilityInput
	if err := parseBody(c, &in); err != nil {
		return Fail(c, err)
	}
	u, err := h.unavailability.Create(c.UserContext(), in)
	if err != nil {
		return Fail(c, err)
	}
	return Created(c, u)
}

func (h *Handlers) UpdateUnavailability(c *fiber.Ctx) error {
	id, err := paramID(c, "Unavailability")
	if err != nil {
		return Fail(c, err)
	}
	var patch service.UnavailabilityPatch
	if err := parseBody(c, &patch); err != nil {
		return Fail(c, err)
	}
	u, err := h.unavailability.Update(c.UserContext(), id, patch)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, u)
}

func (h *Handlers) DeleteUnavailability(c *fiber.Ctx) error {
	id, err := paramID(c, "Unavailability")
	if err != nil {
		return Fail(c, err)
	}
	u, err := h.unavailability.Delete(c.UserContext(), id)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, u)
}
