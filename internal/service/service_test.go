package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/lock"
	"github.com/Freeeeeet/tutor_booking/internal/repository/memstore"
	"github.com/Freeeeeet/tutor_booking/internal/schedule"
	"go.uber.org/zap"
)

type fixture struct {
	store          *memstore.Store
	bookings       *BookingService
	workshops      *WorkshopService
	unavailability *UnavailabilityService
	questions      *QuestionService
	agenda         *AgendaService
}

func newFixture(guard lock.Guard) *fixture {
	return newFixtureWithStore(memstore.New(), nil, guard)
}

// newFixtureWithStore позволяет подменить хранилище, которое видит планировщик
func newFixtureWithStore(mem *memstore.Store, view schedule.Store, guard lock.Guard) *fixture {
	if view == nil {
		view = mem
	}
	logger := zap.NewNop()
	checker := schedule.NewConflictChecker(view, nil)
	validator := schedule.NewBookingValidator(view, checker)

	return &fixture{
		store:          mem,
		bookings:       NewBookingService(mem.Bookings(), validator, guard, nil, logger),
		workshops:      NewWorkshopService(mem.Workshops(), mem.Bookings(), checker, guard, nil, time.UTC, logger),
		unavailability: NewUnavailabilityService(mem.Unavailability(), checker, guard, nil, logger),
		questions:      NewQuestionService(mem.Questions(), logger),
		agenda:         NewAgendaService(view),
	}
}

func ptr[T any](v T) *T {
	return &v
}

func privateBooking(date, start, end string) schedule.BookingInput {
	return schedule.BookingInput{
		Name:         "Anna",
		Email:        "anna@example.com",
		Phone:        "+79990000000",
		EnglishLevel: "B2",
		BookingType:  "PRIVATE_1_1",
		SessionDates: []string{date},
		StartTime:    start,
		EndTime:      end,
	}
}

var ctx = context.Background()
