package model

import "time"

// DateLayout формат календарной даты во всех API
const DateLayout = "2006-01-02"

// Day приводит момент времени к полуночи UTC того же календарного дня
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay сравнивает только календарные компоненты
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FormatDay форматирует дату как YYYY-MM-DD
func FormatDay(t time.Time) string {
	return t.Format(DateLayout)
}
