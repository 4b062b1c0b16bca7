package model

import (
	"time"

	"github.com/google/uuid"
)

// Unavailability блок времени, когда преподаватель недоступен
type Unavailability struct {
	ID        uuid.UUID `json:"id"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
