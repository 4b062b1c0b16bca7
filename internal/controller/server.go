package controller

import (
	"errors"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/controller/handlers"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// NewServer собирает fiber приложение со всеми маршрутами
func NewServer(h *handlers.Handlers, corsOrigins string, requestTimeout time.Duration, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "tutor-booking",
		DisableStartupMessage: true,
		ReadTimeout:           requestTimeout,
		WriteTimeout:          requestTimeout,
		IdleTimeout:           time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if !errors.As(err, &fe) {
				logger.Error("Unhandled request error",
					zap.String("path", c.Path()),
					zap.Error(err))
			}
			return handlers.Fail(c, err)
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(handlers.RequestLogger(logger))
	app.Use(handlers.RequestTimeout(requestTimeout))

	h.Register(app)
	return app
}
