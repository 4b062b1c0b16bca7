package model

import "github.com/google/uuid"

type AgendaKind string

const (
	AgendaWorkshop       AgendaKind = "workshop"
	AgendaBooking        AgendaKind = "booking"
	AgendaUnavailability AgendaKind = "unavailability"
)

// AgendaItem одна запись расписания дня
type AgendaItem struct {
	ID        uuid.UUID  `json:"id"`
	Kind      AgendaKind `json:"kind"`
	Title     string     `json:"title"`
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
}
