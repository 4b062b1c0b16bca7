package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/model"
)

// Slot метка часового слота "HH:00"
type Slot string

// Сетка слотов фиксирована и не настраивается: 09:00 ... 17:00, каждый ровно час.
var allSlots = [...]Slot{
	"09:00",
	"10:00",
	"11:00",
	"12:00",
	"13:00",
	"14:00",
	"15:00",
	"16:00",
	"17:00",
}

// AllSlots возвращает копию сетки в исходном порядке
func AllSlots() []Slot {
	out := make([]Slot, len(allSlots))
	copy(out, allSlots[:])
	return out
}

// TimeRange занятый или запрашиваемый интервал в пределах одного дня.
// End не включается: 10:00-12:00 занимает слоты 10:00 и 11:00.
type TimeRange struct {
	Date  time.Time
	Start string
	End   string
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s %s-%s", model.FormatDay(r.Date), r.Start, r.End)
}

// hourOf читает только часовую компоненту "HH:MM".
// Минуты игнорируются, поэтому невыровненные значения усекаются до часа.
func hourOf(t string) (int, bool) {
	head, _, _ := strings.Cut(strings.TrimSpace(t), ":")
	h, err := strconv.Atoi(head)
	if err != nil {
		return 0, false
	}
	return h, true
}

func slotLabel(h int) Slot {
	return Slot(fmt.Sprintf("%02d:00", h))
}

// OccupiedSlots возвращает метки h, для которых startHour <= h < endHour
func OccupiedSlots(startTime, endTime string) map[Slot]struct{} {
	occupied := make(map[Slot]struct{})
	markOccupied(occupied, startTime, endTime)
	return occupied
}

func markOccupied(occupied map[Slot]struct{}, startTime, endTime string) {
	start, ok := hourOf(startTime)
	if !ok {
		return
	}
	end, ok := hourOf(endTime)
	if !ok {
		return
	}
	for h := start; h < end; h++ {
		occupied[slotLabel(h)] = struct{}{}
	}
}

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^([01]\d|2[0-4]):([0-5]\d)$`)
)

// ParseDate разбирает YYYY-MM-DD в полночь UTC
func ParseDate(s string) (time.Time, error) {
	if !dateRe.MatchString(s) {
		return time.Time{}, newError(KindInvalidDateFormat, "Invalid date format. Use YYYY-MM-DD")
	}
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, &Error{Kind: KindInvalidDateFormat, Message: "Invalid date", Err: err}
	}
	return t, nil
}

// ValidateTimeRange проверяет что start и end выровнены по часу и start < end.
// Записи из хранилища этой проверке не подвергаются и читаются через hourOf.
func ValidateTimeRange(startTime, endTime string) error {
	for _, v := range []string{startTime, endTime} {
		m := timeRe.FindStringSubmatch(v)
		if m == nil {
			return newError(KindInvalidTimeRange, "Invalid time %q. Use HH:00", v)
		}
		if m[2] != "00" {
			return newError(KindInvalidTimeRange, "Time %q is not aligned to a full hour", v)
		}
	}
	start, _ := hourOf(startTime)
	end, _ := hourOf(endTime)
	if start >= end {
		return newError(KindInvalidTimeRange, "startTime must be before endTime")
	}
	return nil
}
