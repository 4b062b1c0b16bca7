package handlers

import (
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/model"
	"github.com/Freeeeeet/tutor_booking/internal/schedule"
	"github.com/gofiber/fiber/v2"
)

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login POST /api/admin/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return Fail(c, err)
	}
	if req.Password == "" {
		return Fail(c, schedule.MissingField("password"))
	}

	token, expires, err := h.auth.Login(req.Password)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, loginResponse{Token: token, ExpiresAt: expires})
}

// RequireAdmin пропускает только запросы с действующим Bearer токеном
func (h *Handlers) RequireAdmin(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return Fail(c, schedule.Unauthorized("Authorization required"))
	}
	if err := h.auth.Verify(strings.TrimSpace(token)); err != nil {
		return Fail(c, err)
	}
	return c.Next()
}

// GetAgenda GET /api/admin/agenda?date=YYYY-MM-DD, по умолчанию сегодня
func (h *Handlers) GetAgenda(c *fiber.Ctx) error {
	day := h.availability.Today()
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		d, err := schedule.ParseDate(raw)
		if err != nil {
			return Fail(c, err)
		}
		day = d
	}

	items, err := h.agenda.Day(c.UserContext(), day)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, fiber.Map{"date": model.FormatDay(day), "items": items})
}
