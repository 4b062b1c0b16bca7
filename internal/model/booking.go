package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingType string

const (
	BookingTypeWorkshop        BookingType = "WORKSHOP"          // Место на групповом воркшопе
	BookingTypePrivateSingle   BookingType = "PRIVATE_1_1"       // Одно индивидуальное занятие
	BookingTypePrivatePackage4 BookingType = "PRIVATE_4_PACKAGE" // Пакет из 4 занятий
)

// Valid проверяет что тип бронирования известен
func (t BookingType) Valid() bool {
	switch t {
	case BookingTypeWorkshop, BookingTypePrivateSingle, BookingTypePrivatePackage4:
		return true
	}
	return false
}

// SessionCount возвращает обязательное количество дат для типа
func (t BookingType) SessionCount() int {
	switch t {
	case BookingTypePrivatePackage4:
		return 4
	default:
		return 1
	}
}

type Booking struct {
	ID           uuid.UUID   `json:"id"`
	Reference    string      `json:"reference"` // код подтверждения для клиента
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	EnglishLevel string      `json:"englishLevel"`
	Description  string      `json:"description,omitempty"`
	BookingType  BookingType `json:"bookingType"`
	WorkshopID   *uuid.UUID  `json:"workshopId,omitempty"`
	// Для WORKSHOP даты и время копируются из воркшопа в момент бронирования
	// и дальше не синхронизируются с его изменениями.
	SessionDates []time.Time `json:"sessionDates"`
	StartTime    string      `json:"startTime"`
	EndTime      string      `json:"endTime"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`

	// Дополнительные поля для удобства (не из таблицы bookings)
	Workshop *WorkshopSummary `json:"workshop,omitempty"`
}

// HasSessionOn проверяет есть ли у бронирования занятие в указанный день
func (b *Booking) HasSessionOn(day time.Time) bool {
	for _, d := range b.SessionDates {
		if SameDay(d, day) {
			return true
		}
	}
	return false
}
