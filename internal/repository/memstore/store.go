// Package memstore хранит записи в памяти процесса.
// Используется при STORE_DRIVER=memory и в тестах.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/model"
	"github.com/Freeeeeet/tutor_booking/internal/repository/base"
	"github.com/google/uuid"
)

type Store struct {
	mu             sync.RWMutex
	now            func() time.Time
	workshops      map[uuid.UUID]*model.Workshop
	bookings       map[uuid.UUID]*model.Booking
	unavailability map[uuid.UUID]*model.Unavailability
	questions      map[uuid.UUID]*model.Question
}

func New() *Store {
	return &Store{
		now:            time.Now,
		workshops:      make(map[uuid.UUID]*model.Workshop),
		bookings:       make(map[uuid.UUID]*model.Booking),
		unavailability: make(map[uuid.UUID]*model.Unavailability),
		questions:      make(map[uuid.UUID]*model.Question),
	}
}

func (s *Store) Workshops() *WorkshopRepository {
	return &WorkshopRepository{s: s}
}

func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{s: s}
}

func (s *Store) Unavailability() *UnavailabilityRepository {
	return &UnavailabilityRepository{s: s}
}

func (s *Store) Questions() *QuestionRepository {
	return &QuestionRepository{s: s}
}

func (s *Store) stamp(id *uuid.UUID, created, updated *time.Time) {
	now := s.now().UTC()
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	*created = now
	*updated = now
}

func copyWorkshop(w *model.Workshop) *model.Workshop {
	c := *w
	return &c
}

func copyBooking(b *model.Booking) *model.Booking {
	c := *b
	c.SessionDates = append([]time.Time(nil), b.SessionDates...)
	if b.WorkshopID != nil {
		id := *b.WorkshopID
		c.WorkshopID = &id
	}
	c.Workshop = nil
	return &c
}

func copyUnavailability(u *model.Unavailability) *model.Unavailability {
	c := *u
	return &c
}

func copyQuestion(q *model.Question) *model.Question {
	c := *q
	c.Options = append([]string(nil), q.Options...)
	return &c
}

// WorkshopsOn реализует schedule.Store
func (s *Store) WorkshopsOn(_ context.Context, day time.Time) ([]*model.Workshop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Workshop
	for _, w := range s.workshops {
		if model.SameDay(w.Date, day) {
			out = append(out, copyWorkshop(w))
		}
	}
	sortWorkshops(out)
	return out, nil
}

// BookingsOn реализует schedule.Store
func (s *Store) BookingsOn(_ context.Context, day time.Time) ([]*model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Booking
	for _, b := range s.bookings {
		if b.HasSessionOn(day) {
			out = append(out, copyBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// UnavailabilityOn реализует schedule.Store
func (s *Store) UnavailabilityOn(_ context.Context, day time.Time) ([]*model.Unavailability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Unavailability
	for _, u := range s.unavailability {
		if model.SameDay(u.Date, day) {
			out = append(out, copyUnavailability(u))
		}
	}
	sortUnavailability(out)
	return out, nil
}

// GetWorkshop реализует schedule.Store
func (s *Store) GetWorkshop(ctx context.Context, id uuid.UUID) (*model.Workshop, error) {
	return s.Workshops().GetByID(ctx, id)
}

// CountWorkshopBookings реализует schedule.Store
func (s *Store) CountWorkshopBookings(ctx context.Context, workshopID uuid.UUID) (int, error) {
	return s.Bookings().CountByWorkshop(ctx, workshopID)
}

func sortWorkshops(items []*model.Workshop) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.Before(items[j].Date)
		}
		return items[i].StartTime < items[j].StartTime
	})
}

func sortUnavailability(items []*model.Unavailability) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.Before(items[j].Date)
		}
		return items[i].StartTime < items[j].StartTime
	})
}

// WorkshopRepository воркшопы в памяти
type WorkshopRepository struct {
	s *Store
}

func (r *WorkshopRepository) Create(_ context.Context, w *model.Workshop) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.stamp(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	r.s.workshops[w.ID] = copyWorkshop(w)
	return nil
}

func (r *WorkshopRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Workshop, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	w, ok := r.s.workshops[id]
	if !ok {
		return nil, nil
	}
	return copyWorkshop(w), nil
}

func (r *WorkshopRepository) List(_ context.Context) ([]*model.Workshop, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*model.Workshop, 0, len(r.s.workshops))
	for _, w := range r.s.workshops {
		out = append(out, copyWorkshop(w))
	}
	sortWorkshops(out)
	return out, nil
}

func (r *WorkshopRepository) NextUpcoming(ctx context.Context, today time.Time, clock string) (*model.Workshop, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, w := range all {
		if model.Day(w.Date).After(today) {
			return w, nil
		}
		if model.SameDay(w.Date, today) && w.StartTime > clock {
			return w, nil
		}
	}
	return nil, nil
}

func (r *WorkshopRepository) Update(_ context.Context, w *model.Workshop) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.workshops[w.ID]
	if !ok {
		return base.ErrNotFound
	}
	w.CreatedAt = existing.CreatedAt
	w.UpdatedAt = r.s.now().UTC()
	r.s.workshops[w.ID] = copyWorkshop(w)
	return nil
}

func (r *WorkshopRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.workshops[id]; !ok {
		return base.ErrNotFound
	}
	delete(r.s.workshops, id)
	return nil
}

// BookingRepository бронирования в памяти
type BookingRepository struct {
	s *Store
}

func (r *BookingRepository) Create(_ context.Context, b *model.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.stamp(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	r.s.bookings[b.ID] = copyBooking(b)
	return nil
}

// List возвращает бронирования от новых к старым вместе с краткими данными воркшопа
func (r *BookingRepository) List(_ context.Context) ([]*model.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*model.Booking, 0, len(r.s.bookings))
	for _, b := range r.s.bookings {
		c := copyBooking(b)
		if c.WorkshopID != nil {
			if w, ok := r.s.workshops[*c.WorkshopID]; ok {
				c.Workshop = &model.WorkshopSummary{
					ID:        w.ID,
					Title:     w.Title,
					Date:      w.Date,
					StartTime: w.StartTime,
					EndTime:   w.EndTime,
				}
			}
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *BookingRepository) CountByWorkshop(_ context.Context, workshopID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, b := range r.s.bookings {
		if b.WorkshopID != nil && *b.WorkshopID == workshopID {
			n++
		}
	}
	return n, nil
}

// UnavailabilityRepository блоки недоступности в памяти
type UnavailabilityRepository struct {
	s *Store
}

func (r *UnavailabilityRepository) Create(_ context.Context, u *model.Unavailability) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.stamp(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	r.s.unavailability[u.ID] = copyUnavailability(u)
	return nil
}

func (r *UnavailabilityRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Unavailability, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.unavailability[id]
	if !ok {
		return nil, nil
	}
	return copyUnavailability(u), nil
}

func (r *UnavailabilityRepository) List(_ context.Context) ([]*model.Unavailability, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*model.Unavailability, 0, len(r.s.unavailability))
	for _, u := range r.s.unavailability {
		out = append(out, copyUnavailability(u))
	}
	sortUnavailability(out)
	return out, nil
}

func (r *UnavailabilityRepository) Update(_ context.Context, u *model.Unavailability) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.unavailability[u.ID]
	if !ok {
		return base.ErrNotFound
	}
	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = r.s.now().UTC()
	r.s.unavailability[u.ID] = copyUnavailability(u)
	return nil
}

func (r *UnavailabilityRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.unavailability[id]; !ok {
		return base.ErrNotFound
	}
	delete(r.s.unavailability, id)
	return nil
}

// QuestionRepository вопросы теста в памяти
type QuestionRepository struct {
	s *Store
}

func (r *QuestionRepository) Create(_ context.Context, q *model.Question) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.stamp(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	r.s.questions[q.ID] = copyQuestion(q)
	return nil
}

func (r *QuestionRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Question, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	q, ok := r.s.questions[id]
	if !ok {
		return nil, nil
	}
	return copyQuestion(q), nil
}

// List возвращает вопросы от новых к старым с учётом фильтра
func (r *QuestionRepository) List(_ context.Context, f model.QuestionFilter) ([]*model.Question, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*model.Question, 0, len(r.s.questions))
	for _, q := range r.s.questions {
		if f.OnlyActive && !q.IsActive {
			continue
		}
		if f.Category != "" && q.Category != f.Category {
			continue
		}
		out = append(out, copyQuestion(q))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *QuestionRepository) Update(_ context.Context, q *model.Question) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.questions[q.ID]
	if !ok {
		return base.ErrNotFound
	}
	q.CreatedAt = existing.CreatedAt
	q.UpdatedAt = r.s.now().UTC()
	r.s.questions[q.ID] = copyQuestion(q)
	return nil
}

func (r *QuestionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.questions[id]; !ok {
		return base.ErrNotFound
	}
	delete(r.s.questions, id)
	return nil
}
