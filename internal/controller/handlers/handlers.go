package handlers

import (
	"strings"

	"github.com/Freeeeeet/tutor_booking/internal/schedule"
	"github.com/Freeeeeet/tutor_booking/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handlers struct {
	availability   *schedule.AvailabilityCalculator
	bookings       *service.BookingService
	workshops      *service.WorkshopService
	unavailability *service.UnavailabilityService
	questions      *service.QuestionService
	agenda         *service.AgendaService
	auth           *service.AdminAuthService
	logger         *zap.Logger
}

func NewHandlers(
	availability *schedule.AvailabilityCalculator,
	bookings *service.BookingService,
	workshops *service.WorkshopService,
	unavailability *service.UnavailabilityService,
	questions *service.QuestionService,
	agenda *service.AgendaService,
	auth *service.AdminAuthService,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		availability:   availability,
		bookings:       bookings,
		workshops:      workshops,
		unavailability: unavailability,
		questions:      questions,
		agenda:         agenda,
		auth:           auth,
		logger:         logger,
	}
}

// Register подключает все маршруты API
func (h *Handlers) Register(app *fiber.App) {
	app.Get("/health", h.Health)

	api := app.Group("/api")
	api.Get("/availability", h.GetAvailability)
	api.Get("/workshops", h.ListWorkshops)
	api.Get("/workshops/next", h.NextWorkshop)
	api.Get("/workshops/:id", h.GetWorkshop)
	api.Get("/unavailability", h.ListUnavailability)
	api.Get("/questions", h.ListPublicQuestions)
	api.Post("/bookings", h.CreateBooking)

	api.Post("/admin/login", h.Login)

	admin := api.Group("/admin", h.RequireAdmin)
	admin.Get("/workshops", h.ListWorkshops)
	admin.Post("/workshops", h.CreateWorkshop)
	admin.Put("/workshops/:id", h.UpdateWorkshop)
	admin.Delete("/workshops/:id", h.DeleteWorkshop)

	admin.Get("/unavailability", h.ListUnavailability)
	admin.Post("/unavailability", h.CreateUnavailability)
	admin.Put("/unavailability/:id", h.UpdateUnavailability)
	admin.Delete("/unavailability/:id", h.DeleteUnavailability)

	admin.Get("/bookings", h.ListBookings)
	admin.Get("/agenda", h.GetAgenda)

	admin.Get("/questions", h.ListQuestions)
	admin.Post("/questions", h.CreateQuestion)
	admin.Put("/questions/:id", h.UpdateQuestion)
	admin.Delete("/questions/:id", h.DeleteQuestion)
}

func (h *Handlers) Health(c *fiber.Ctx) error {
	return OK(c, fiber.Map{"status": "ok"})
}

// paramID разбирает :id. Некорректный идентификатор считается отсутствующей записью.
func paramID(c *fiber.Ctx, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return uuid.Nil, schedule.NotFound(what)
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return schedule.InvalidInput("Invalid request body")
	}
	return nil
}
