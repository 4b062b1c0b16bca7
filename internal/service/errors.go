package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/Freeeeeet/tutor_booking/internal/repository/base"
	"github.com/Freeeeeet/tutor_booking/internal/schedule"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// В ошибках используем имена полей из JSON
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct превращает ошибки validator в ошибки планировщика
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return schedule.InvalidInput("Invalid request body")
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return schedule.MissingField(fe.Field())
	case "oneof":
		return &schedule.Error{
			Kind:    schedule.KindInvalidEnum,
			Field:   fe.Field(),
			Message: "Invalid value for " + fe.Field() + ". Must be one of: " + fe.Param(),
		}
	default:
		return schedule.InvalidInput("Invalid value for field: %s", fe.Field())
	}
}

// storeFailure оставляет ожидаемые ошибки как есть, остальное считает сбоем хранилища
func storeFailure(op string, err error) error {
	if schedule.KindOf(err) != "" {
		return err
	}
	return schedule.StoreUnavailable(op, err)
}

// writeFailure как storeFailure, но отсутствие строки превращает в NotFound
func writeFailure(op, what string, err error) error {
	if base.IsNotFound(err) {
		return schedule.NotFound(what)
	}
	return storeFailure(op, err)
}
