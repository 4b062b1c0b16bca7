// Package notify сообщает преподавателю о новых записях в расписании
package notify

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/model"
)

type Notifier interface {
	BookingCreated(ctx context.Context, b *model.Booking)
	WorkshopCreated(ctx context.Context, w *model.Workshop)
	UnavailabilityCreated(ctx context.Context, u *model.Unavailability)
	DailyDigest(ctx context.Context, day time.Time, items []model.AgendaItem)
}

// Nop используется, когда Telegram не настроен
type Nop struct{}

func (Nop) BookingCreated(context.Context, *model.Booking) {}
func (Nop) WorkshopCreated(context.Context, *model.Workshop) {}
func (Nop) UnavailabilityCreated(context.Context, *model.Unavailability) {}
func (Nop) DailyDigest(context.Context, time.Time, []model.AgendaItem) {}
