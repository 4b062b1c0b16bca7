package model

import (
	"time"

	"github.com/google/uuid"
)

// Workshop групповое занятие, которое целиком занимает свой интервал времени
type Workshop struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`      // календарный день, время суток не используется
	StartTime   string    `json:"startTime"` // "HH:00"
	EndTime     string    `json:"endTime"`   // "HH:00", граница не включается
	Capacity    int       `json:"capacity"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// WorkshopSummary краткие данные воркшопа для списка бронирований
type WorkshopSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
}
