package handlers

import (
	"strconv"
	"strings"

	"github.com/Freeeeeet/tutor_booking/internal/schedule"
	"github.com/Freeeeeet/tutor_booking/internal/service"
	"github.com/gofiber/fiber/v2"
)

// ListPublicQuestions GET /api/questions?category=&limit=
func (h *Handlers) ListPublicQuestions(c *fiber.Ctx) error {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Fail(c, schedule.InvalidInput("limit must be a positive integer"))
		}
		limit = n
	}

	questions, err := h.questions.Public(c.UserContext(), c.Query("category"), limit)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, questions)
}

func (h *Handlers) ListQuestions(c *fiber.Ctx) error {
	questions, err := h.questions.List(c.UserContext())
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, questions)
}

func (h *Handlers) CreateQuestion(c *fiber.Ctx) error {
	var in service.QuestionInput
	if err := parseBody(c, &in); err != nil {
		return Fail(c, err)
	}
	q, err := h.questions.Create(c.UserContext(), in)
	if err != nil {
		return Fail(c, err)
	}
	return Created(c, q)
}

func (h *Handlers) UpdateQuestion(c *fiber.Ctx) error {
	id, err := paramID(c, "Question")
	if err != nil {
		return Fail(c, err)
	}
	var patch service.QuestionPatch
	if err := parseBody(c, &patch); err != nil {
		return Fail(c, err)
	}
	q, err := h.questions.Update(c.UserContext(), id, patch)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, q)
}

func (h *Handlers) DeleteQuestion(c *fiber.Ctx) error {
	id, err := paramID(c, "Question")
	if err != nil {
		return Fail(c, err)
	}
	if err := h.questions.Delete(c.UserContext(), id); err != nil {
		return Fail(c, err)
	}
	return OK(c, fiber.Map{"id": id})
}
