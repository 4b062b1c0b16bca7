package handlers

import (
	"errors"

	"github.com/Freeeeeet/tutor_booking/internal/schedule"
	"github.com/gofiber/fiber/v2"
)

// Response общий формат ответа API
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK ответ 200 с данными
func OK(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(Response{Success: true, Data: data})
}

// Created ответ 201 с созданной записью
func Created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Response{Success: true, Data: data})
}

// StatusOf код ответа для вида ошибки
func StatusOf(kind schedule.Kind) int {
	switch kind {
	case schedule.KindMissingField,
		schedule.KindInvalidEnum,
		schedule.KindInvalidDateFormat,
		schedule.KindInvalidTimeRange,
		schedule.KindInvalidInput,
		schedule.KindSessionCountMismatch,
		schedule.KindDuplicateSessionDate:
		return fiber.StatusBadRequest
	case schedule.KindUnauthorized:
		return fiber.StatusUnauthorized
	case schedule.KindNotFound:
		return fiber.StatusNotFound
	case schedule.KindCapacityExceeded,
		schedule.KindSlotConflict,
		schedule.KindHasBookings:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// Fail пишет ошибку в формате API. Внутренние ошибки не раскрываются клиенту.
func Fail(c *fiber.Ctx, err error) error {
	var se *schedule.Error
	if errors.As(err, &se) {
		status := StatusOf(se.Kind)
		msg := se.Message
		if status == fiber.StatusInternalServerError {
			msg = "Internal server error"
		}
		return c.Status(status).JSON(Response{Success: false, Error: msg})
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(Response{Success: false, Error: fe.Message})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(Response{Success: false, Error: "Internal server error"})
}
