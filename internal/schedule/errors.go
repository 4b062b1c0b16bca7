package schedule

import (
	"errors"
	"fmt"
)

// Kind вид ожидаемой ошибки планировщика
type Kind string

const (
	KindMissingField         Kind = "missing_field"
	KindInvalidEnum          Kind = "invalid_enum"
	KindInvalidDateFormat    Kind = "invalid_date_format"
	KindInvalidTimeRange     Kind = "invalid_time_range"
	KindInvalidInput         Kind = "invalid_input"
	KindNotFound             Kind = "not_found"
	KindCapacityExceeded     Kind = "capacity_exceeded"
	KindSessionCountMismatch Kind = "session_count_mismatch"
	KindDuplicateSessionDate Kind = "duplicate_session_date"
	KindSlotConflict         Kind = "slot_conflict"
	KindHasBookings          Kind = "has_bookings"
	KindUnauthorized         Kind = "unauthorized"
	KindStoreUnavailable     Kind = "store_unavailable"
)

// Error ошибка с видом, которую вызывающий слой превращает в код ответа
type Error struct {
	Kind       Kind
	Field      string         // для MissingField/InvalidEnum
	Commitment CommitmentKind // для SlotConflict
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf возвращает вид ошибки или пустую строку для прочих ошибок
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// IsKind проверяет вид ошибки
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// MissingField ошибка отсутствующего обязательного поля
func MissingField(field string) *Error {
	return &Error{
		Kind:    KindMissingField,
		Field:   field,
		Message: "Missing required field: " + field,
	}
}

// NotFound ошибка отсутствующей записи
func NotFound(what string) *Error {
	return newError(KindNotFound, "%s not found", what)
}

// InvalidInput ошибка произвольных некорректных данных
func InvalidInput(format string, args ...any) *Error {
	return newError(KindInvalidInput, format, args...)
}

// Unauthorized ошибка авторизации администратора
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// StoreUnavailable оборачивает сбой хранилища
func StoreUnavailable(op string, err error) *Error {
	return &Error{
		Kind:    KindStoreUnavailable,
		Message: "storage failure: " + op,
		Err:     fmt.Errorf("%s: %w", op, err),
	}
}

// storeErr оставляет ошибки планировщика как есть, остальные оборачивает в StoreUnavailable
func storeErr(op string, err error) error {
	if KindOf(err) != "" {
		return err
	}
	return StoreUnavailable(op, err)
}

// Errorf создаёт ошибку указанного вида
func Errorf(kind Kind, format string, args ...any) *Error {
	return newError(kind, format, args...)
}
