package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/model"
	"github.com/google/uuid"
)

// BookingInput данные бронирования в том виде, в каком их прислал клиент
type BookingInput struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	EnglishLevel string   `json:"englishLevel"`
	Description  string   `json:"description"`
	BookingType  string   `json:"bookingType"`
	WorkshopID   string   `json:"workshopId"`
	SessionDates []string `json:"sessionDates"`
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
}

// BookingValidator проверяет структуру бронирования и конфликты.
// Сам ничего не записывает: подготовленную запись сохраняет вызывающий.
type BookingValidator struct {
	store   Store
	checker *ConflictChecker
}

func NewBookingValidator(store Store, checker *ConflictChecker) *BookingValidator {
	return &BookingValidator{store: store, checker: checker}
}

// Prepare проверяет вход и возвращает запись, готовую к сохранению (без ID и меток времени)
func (v *BookingValidator) Prepare(ctx context.Context, in BookingInput) (*model.Booking, error) {
	required := []struct {
		name  string
		value string
	}{
		{"name", in.Name},
		{"email", in.Email},
		{"phone", in.Phone},
		{"englishLevel", in.EnglishLevel},
		{"bookingType", in.BookingType},
		{"startTime", in.StartTime},
		{"endTime", in.EndTime},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return nil, MissingField(f.name)
		}
	}

	bookingType := model.BookingType(in.BookingType)
	if !bookingType.Valid() {
		return nil, &Error{
			Kind:    KindInvalidEnum,
			Field:   "bookingType",
			Message: "Invalid booking type. Must be WORKSHOP, PRIVATE_1_1, or PRIVATE_4_PACKAGE",
		}
	}

	booking := &model.Booking{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.TrimSpace(in.Email),
		Phone:        strings.TrimSpace(in.Phone),
		EnglishLevel: strings.TrimSpace(in.EnglishLevel),
		Description:  strings.TrimSpace(in.Description),
		BookingType:  bookingType,
	}

	if bookingType == model.BookingTypeWorkshop {
		if err := v.prepareWorkshop(ctx, in, booking); err != nil {
			return nil, err
		}
		return booking, nil
	}

	if err := v.preparePrivate(ctx, in, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// prepareWorkshop проверяет вместимость и копирует дату и время воркшопа в бронирование.
// Присланные startTime/endTime обязательны, но заменяются временем воркшопа.
func (v *BookingValidator) prepareWorkshop(ctx context.Context, in BookingInput, booking *model.Booking) error {
	if strings.TrimSpace(in.WorkshopID) == "" {
		return &Error{
			Kind:    KindMissingField,
			Field:   "workshopId",
			Message: "Workshop ID is required for workshop bookings",
		}
	}

	id, err := uuid.Parse(strings.TrimSpace(in.WorkshopID))
	if err != nil {
		return NotFound("Workshop")
	}

	workshop, err := v.store.GetWorkshop(ctx, id)
	if err != nil {
		return storeErr("get workshop", err)
	}
	if workshop == nil {
		return NotFound("Workshop")
	}

	count, err := v.store.CountWorkshopBookings(ctx, id)
	if err != nil {
		return storeErr("count workshop bookings", err)
	}
	if count >= workshop.Capacity {
		return newError(KindCapacityExceeded, "Workshop is at full capacity")
	}

	booking.WorkshopID = &workshop.ID
	booking.SessionDates = []time.Time{model.Day(workshop.Date)}
	booking.StartTime = workshop.StartTime
	booking.EndTime = workshop.EndTime
	return nil
}

func (v *BookingValidator) preparePrivate(ctx context.Context, in BookingInput, booking *model.Booking) error {
	if err := ValidateTimeRange(in.StartTime, in.EndTime); err != nil {
		return err
	}
	if in.SessionDates == nil {
		return &Error{
			Kind:    KindMissingField,
			Field:   "sessionDates",
			Message: "sessionDates array is required for private bookings",
		}
	}

	want := booking.BookingType.SessionCount()
	if len(in.SessionDates) != want {
		msg := "1:1 session must have exactly 1 date"
		if booking.BookingType == model.BookingTypePrivatePackage4 {
			msg = "4-session package must have exactly 4 dates"
		}
		return newError(KindSessionCountMismatch, "%s", msg)
	}

	dates := make([]time.Time, 0, len(in.SessionDates))
	seen := make(map[string]struct{}, len(in.SessionDates))
	for _, raw := range in.SessionDates {
		d, err := ParseDate(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		key := model.FormatDay(d)
		if _, dup := seen[key]; dup {
			return newError(KindDuplicateSessionDate, "4-session package cannot have duplicate dates")
		}
		seen[key] = struct{}{}
		dates = append(dates, d)
	}

	// Даты проверяются по порядку, первая конфликтная прерывает всё бронирование
	for _, d := range dates {
		res, err := v.checker.Check(ctx, TargetSession, TimeRange{Date: d, Start: in.StartTime, End: in.EndTime}, uuid.Nil)
		if err != nil {
			return err
		}
		if res.HasConflict {
			return &Error{
				Kind:       KindSlotConflict,
				Commitment: res.Kind,
				Message:    "Time conflict on " + model.FormatDay(d) + ": " + res.Message,
			}
		}
	}

	booking.SessionDates = dates
	booking.StartTime = in.StartTime
	booking.EndTime = in.EndTime
	return nil
}
