package notify

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/model"
)

var weekdayNames = []string{
	"Воскресенье",
	"Понедельник",
	"Вторник",
	"Среда",
	"Четверг",
	"Пятница",
	"Суббота",
}

// FormatDate форматирует дату с днём недели
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s (%s)", t.Format("02.01.2006"), weekdayNames[t.Weekday()])
}

// FormatTimeRange форматирует интервал "HH:MM-HH:MM"
func FormatTimeRange(start, end string) string {
	return start + "-" + end
}

func bookingTypeLabel(t model.BookingType) string {
	switch t {
	case model.BookingTypeWorkshop:
		return "Воркшоп"
	case model.BookingTypePrivateSingle:
		return "Индивидуальное занятие"
	case model.BookingTypePrivatePackage4:
		return "Пакет из 4 занятий"
	default:
		return string(t)
	}
}

// BookingText сообщение о новом бронировании
func BookingText(b *model.Booking) string {
	var sb strings.Builder
	sb.WriteString("📥 <b>Новая запись</b>\n\n")
	fmt.Fprintf(&sb, "👤 %s\n", html.EscapeString(b.Name))
	fmt.Fprintf(&sb, "📧 %s\n", html.EscapeString(b.Email))
	fmt.Fprintf(&sb, "📞 %s\n", html.EscapeString(b.Phone))
	fmt.Fprintf(&sb, "🎓 Уровень: %s\n", html.EscapeString(b.EnglishLevel))
	fmt.Fprintf(&sb, "📚 %s\n", bookingTypeLabel(b.BookingType))
	fmt.Fprintf(&sb, "🔖 Код: <code>%s</code>\n\n", b.Reference)

	for _, d := range b.SessionDates {
		fmt.Fprintf(&sb, "📅 %s, %s\n", FormatDate(d), FormatTimeRange(b.StartTime, b.EndTime))
	}
	if b.Description != "" {
		fmt.Fprintf(&sb, "\n💬 %s\n", html.EscapeString(b.Description))
	}
	return sb.String()
}

// WorkshopText сообщение о новом воркшопе
func WorkshopText(w *model.Workshop) string {
	return fmt.Sprintf("🗓 <b>Новый воркшоп</b>\n\n%s\n📅 %s, %s\n👥 Мест: %d",
		html.EscapeString(w.Title),
		FormatDate(w.Date),
		FormatTimeRange(w.StartTime, w.EndTime),
		w.Capacity,
	)
}

// UnavailabilityText сообщение о новом блоке недоступности
func UnavailabilityText(u *model.Unavailability) string {
	text := fmt.Sprintf("⛔️ <b>Время закрыто</b>\n\n📅 %s, %s",
		FormatDate(u.Date),
		FormatTimeRange(u.StartTime, u.EndTime),
	)
	if u.Reason != "" {
		text += "\n💬 " + html.EscapeString(u.Reason)
	}
	return text
}

func agendaIcon(k model.AgendaKind) string {
	switch k {
	case model.AgendaWorkshop:
		return "👥"
	case model.AgendaBooking:
		return "👤"
	default:
		return "⛔️"
	}
}

// AgendaText расписание дня
func AgendaText(day time.Time, items []model.AgendaItem) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 <b>Расписание на %s</b>\n\n", FormatDate(day))
	if len(items) == 0 {
		sb.WriteString("Записей нет")
		return sb.String()
	}
	for _, it := range items {
		fmt.Fprintf(&sb, "%s %s %s\n",
			agendaIcon(it.Kind),
			FormatTimeRange(it.StartTime, it.EndTime),
			html.EscapeString(it.Title),
		)
	}
	return sb.String()
}

// AvailabilityText свободные слоты дня
func AvailabilityText(day time.Time, slots []string) string {
	if len(slots) == 0 {
		return fmt.Sprintf("📅 %s\n\nСвободных слотов нет", FormatDate(day))
	}
	return fmt.Sprintf("📅 %s\n\n🟢 Свободно: %s", FormatDate(day), strings.Join(slots, ", "))
}
