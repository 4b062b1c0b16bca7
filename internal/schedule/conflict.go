package schedule

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// CommitmentKind коллекция, в которой нашёлся конфликт
type CommitmentKind string

const (
	CommitmentWorkshop       CommitmentKind = "workshop"
	CommitmentBooking        CommitmentKind = "booking"
	CommitmentUnavailability CommitmentKind = "unavailability"
)

// Matcher стратегия сравнения кандидата с существующим интервалом того же дня
type Matcher interface {
	Conflicts(candidate, existing TimeRange) bool
}

// ExactMatch конфликт только при полном совпадении пары (start, end).
// Частично пересекающиеся интервалы конфликтом не считаются.
type ExactMatch struct{}

func (ExactMatch) Conflicts(candidate, existing TimeRange) bool {
	return candidate.Start == existing.Start && candidate.End == existing.End
}

// OverlapMatch конфликт при пересечении хотя бы одного часового слота
type OverlapMatch struct{}

func (OverlapMatch) Conflicts(candidate, existing TimeRange) bool {
	cs, ok1 := hourOf(candidate.Start)
	ce, ok2 := hourOf(candidate.End)
	es, ok3 := hourOf(existing.Start)
	ee, ok4 := hourOf(existing.End)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}
	return cs < ee && es < ce
}

// MatcherByName возвращает стратегию по имени из конфигурации
func MatcherByName(name string) (Matcher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "exact":
		return ExactMatch{}, nil
	case "overlap":
		return OverlapMatch{}, nil
	}
	return nil, fmt.Errorf("unknown conflict mode %q", name)
}

// Target определяет набор коллекций для проверки
type Target int

const (
	// TargetSession воркшоп или индивидуальное занятие: проверяются бронирования и недоступность
	TargetSession Target = iota
	// TargetUnavailability блок недоступности: проверяются воркшопы и бронирования
	TargetUnavailability
)

// ConflictResult результат проверки
type ConflictResult struct {
	HasConflict bool           `json:"hasConflict"`
	Kind        CommitmentKind `json:"conflictingKind,omitempty"`
	Message     string         `json:"message,omitempty"`
}

// Err превращает результат в ошибку SlotConflict или nil
func (r ConflictResult) Err() error {
	if !r.HasConflict {
		return nil
	}
	return &Error{Kind: KindSlotConflict, Commitment: r.Kind, Message: r.Message}
}

func conflictWith(kind CommitmentKind) ConflictResult {
	var what string
	switch kind {
	case CommitmentWorkshop:
		what = "Workshop"
	case CommitmentBooking:
		what = "Booking"
	default:
		what = "Unavailability block"
	}
	return ConflictResult{
		HasConflict: true,
		Kind:        kind,
		Message:     fmt.Sprintf("Time slot conflict: %s exists at this time", what),
	}
}

// ConflictChecker проверяет пересечение кандидата с существующими записями.
// Проверка только читает: запись после неё не атомарна, см. lock.Guard.
type ConflictChecker struct {
	store   Store
	matcher Matcher
}

func NewConflictChecker(store Store, matcher Matcher) *ConflictChecker {
	if matcher == nil {
		matcher = ExactMatch{}
	}
	return &ConflictChecker{store: store, matcher: matcher}
}

// Check ищет конфликт для интервала r. Запись с идентификатором exclude пропускается.
func (c *ConflictChecker) Check(ctx context.Context, target Target, r TimeRange, exclude uuid.UUID) (ConflictResult, error) {
	var order []CommitmentKind
	switch target {
	case TargetUnavailability:
		order = []CommitmentKind{CommitmentWorkshop, CommitmentBooking}
	default:
		order = []CommitmentKind{CommitmentBooking, CommitmentUnavailability}
	}

	for _, kind := range order {
		found, err := c.collides(ctx, kind, r, exclude)
		if err != nil {
			return ConflictResult{}, err
		}
		if found {
			return conflictWith(kind), nil
		}
	}
	return ConflictResult{}, nil
}

func (c *ConflictChecker) collides(ctx context.Context, kind CommitmentKind, r TimeRange, exclude uuid.UUID) (bool, error) {
	switch kind {
	case CommitmentWorkshop:
		items, err := c.store.WorkshopsOn(ctx, r.Date)
		if err != nil {
			return false, storeErr("find workshops", err)
		}
		for _, w := range items {
			if w.ID == exclude {
				continue
			}
			if c.matcher.Conflicts(r, TimeRange{Date: w.Date, Start: w.StartTime, End: w.EndTime}) {
				return true, nil
			}
		}
	case CommitmentBooking:
		items, err := c.store.BookingsOn(ctx, r.Date)
		if err != nil {
			return false, storeErr("find bookings", err)
		}
		for _, b := range items {
			if b.ID == exclude {
				continue
			}
			if c.matcher.Conflicts(r, TimeRange{Date: r.Date, Start: b.StartTime, End: b.EndTime}) {
				return true, nil
			}
		}
	case CommitmentUnavailability:
		items, err := c.store.UnavailabilityOn(ctx, r.Date)
		if err != nil {
			return false, storeErr("find unavailability", err)
		}
		for _, u := range items {
			if u.ID == exclude {
				continue
			}
			if c.matcher.Conflicts(r, TimeRange{Date: u.Date, Start: u.StartTime, End: u.EndTime}) {
				return true, nil
			}
		}
	}
	return false, nil
}
