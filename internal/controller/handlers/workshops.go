package handlers

import (
	"github.com/Freeeeeet/tutor_booking/internal/service"
	"github.com/gofiber/fiber/v2"
)

func (h *Handlers) ListWorkshops(c *fiber.Ctx) error {
	workshops, err := h.workshops.List(c.UserContext())
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, workshops)
}

// NextWorkshop возвращает null в data, если предстоящих воркшопов нет
func (h *Handlers) NextWorkshop(c *fiber.Ctx) error {
	w, err := h.workshops.Next(c.UserContext())
	if err != nil {
		return Fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": w})
}

func (h *Handlers) GetWorkshop(c *fiber.Ctx) error {
	id, err := paramID(c, "Workshop")
	if err != nil {
		return Fail(c, err)
	}
	w, err := h.workshops.Get(c.UserContext(), id)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, w)
}

func (h *Handlers) CreateWorkshop(c *fiber.Ctx) error {
	var in service.WorkshopInput
	if err := parseBody(c, &in); err != nil {
		return Fail(c, err)
	}
	w, err := h.workshops.Create(c.UserContext(), in)
	if err != nil {
		return Fail(c, err)
	}
	return Created(c, w)
}

func (h *Handlers) UpdateWorkshop(c *fiber.Ctx) error {
	id, err := paramID(c, "Workshop")
	if err != nil {
		return Fail(c, err)
	}
	var patch service.WorkshopPatch
	if err := parseBody(c, &patch); err != nil {
		return Fail(c, err)
	}
	w, err := h.workshops.Update(c.UserContext(), id, patch)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, w)
}

func (h *Handlers) DeleteWorkshop(c *fiber.Ctx) error {
	id, err := paramID(c, "Workshop")
	if err != nil {
		return Fail(c, err)
	}
	w, err := h.workshops.Delete(c.UserContext(), id)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, w)
}
