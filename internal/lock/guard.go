// Package lock сериализует проверку конфликтов и запись для одних и тех же ключей.
//
// Без guard проверка и запись выполняются двумя независимыми шагами, и два
// параллельных запроса на один слот могут пройти проверку оба.
package lock

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/model"
	"github.com/google/uuid"
)

// Guard выполняет fn, удерживая блокировки на все ключи
type Guard interface {
	Do(ctx context.Context, keys []string, fn func(ctx context.Context) error) error
}

// DayKey ключ календарного дня
func DayKey(day time.Time) string {
	return "day:" + model.FormatDay(day)
}

// WorkshopKey ключ вместимости воркшопа
func WorkshopKey(id uuid.UUID) string {
	return "workshop:" + id.String()
}

// normalize убирает пустые и повторяющиеся ключи и сортирует их,
// чтобы все guard захватывали блокировки в одном порядке
func normalize(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Nop ничего не блокирует
type Nop struct{}

func (Nop) Do(ctx context.Context, _ []string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ErrUnknownMode неизвестное значение WRITE_GUARD
type ErrUnknownMode string

func (e ErrUnknownMode) Error() string {
	return fmt.Sprintf("unknown write guard %q", string(e))
}
