package display

import (
	"fmt"
	"time"

	"github.com/teamops/dashboard/structs"
)

var months = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var shortMonths = [...]string{
	"jan.", "fev.", "mar.", "abr.", "mai.", "jun.",
	"jul.", "ago.", "set.", "out.", "nov.", "dez.",
}

// FormatDate renders "02 de janeiro de 2025" in UTC, "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.UTC()
	return fmt.Sprintf("%02d de %s de %d", t.Day(), months[t.Month()-1], t.Year())
}

// FormatDatePtr is FormatDate for nullable dates.
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDate(*t)
}

// FormatDateShort renders "02 de jan. de 2025" in local time.
func FormatDateShort(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.Local()
	return fmt.Sprintf("%02d de %s de %d", t.Day(), shortMonths[t.Month()-1], t.Year())
}

// FormatDateTime renders "02/01/25, 15:04" in local time.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("02/01/06, 15:04")
}

// IsToday reports whether t falls on today's local date.
func IsToday(t time.Time) bool {
	return sameDay(t.Local(), time.Now())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// RelativeTime renders the distance from now, "há 3 dias" or "em 2 horas".
func RelativeTime(t time.Time) string {
	return relativeTo(t, time.Now())
}

func relativeTo(t, now time.Time) string {
	diff := t.Sub(now)
	past := diff < 0
	if past {
		diff = -diff
	}

	sec := int(diff / time.Second)
	if sec < 60 {
		if past {
			return "há alguns segundos"
		}
		return "em alguns segundos"
	}

	var n int
	var unit string
	switch m := sec / 60; {
	case m < 60:
		n, unit = m, plural(m, "minuto", "minutos")
	case m/60 < 24:
		n = m / 60
		unit = plural(n, "hora", "horas")
	case m/60/24 < 30:
		n = m / 60 / 24
		unit = plural(n, "dia", "dias")
	case m/60/24/30 < 12:
		n = m / 60 / 24 / 30
		unit = plural(n, "mês", "meses")
	default:
		n = m / 60 / 24 / 30 / 12
		unit = plural(n, "ano", "anos")
	}

	if past {
		return fmt.Sprintf("há %d %s", n, unit)
	}
	return fmt.Sprintf("em %d %s", n, unit)
}

func plural(n int, one, many string) string {
	if n > 1 {
		return many
	}
	return one
}

// DueDateInfo describes a task deadline.
type DueDateInfo struct {
	Relative  string
	Formatted string
	Overdue   bool
	DueToday  bool
}

// DueDate returns deadline details, false when the task has no due date.
// A task is overdue when the date passed and it is not completed.
func DueDate(due *time.Time, status structs.TaskStatus) (DueDateInfo, bool) {
	return dueDateAt(due, status, time.Now())
}

func dueDateAt(due *time.Time, status structs.TaskStatus, now time.Time) (DueDateInfo, bool) {
	if due == nil || due.IsZero() {
		return DueDateInfo{}, false
	}
	return DueDateInfo{
		Relative:  relativeTo(*due, now),
		Formatted: FormatDate(*due),
		Overdue:   due.Before(now) && status.Normalize() != structs.StatusCompleted,
		DueToday:  sameDay(due.In(now.Location()), now),
	}, true
}
