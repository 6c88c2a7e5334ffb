package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/teamops/dashboard/structs"
)

func TestLabels(t *testing.T) {
	assert.Equal(t, "Pendente", StatusLabel(structs.StatusPending))
	assert.Equal(t, "Em Progresso", StatusLabel(structs.StatusInProgress))
	assert.Equal(t, "Concluída", StatusLabel(structs.StatusDone))
	assert.Equal(t, "Cancelada", StatusLabel(structs.StatusCancelled))
	assert.Equal(t, "WEIRD", StatusLabel("WEIRD"))

	assert.Equal(t, "Média", PriorityLabel(structs.PriorityMedium))
	assert.Equal(t, "🔴", PriorityBadge(structs.PriorityUrgent).Icon)
	assert.Equal(t, "Gerente", RoleLabel(structs.RoleManager))
	assert.Equal(t, "Aviso", NotificationLabel(structs.NotificationWarning))
}

func TestNextStatus(t *testing.T) {
	next, ok := NextStatus(structs.StatusPending)
	assert.True(t, ok)
	assert.Equal(t, structs.StatusInProgress, next)

	next, ok = NextStatus(structs.StatusInProgress)
	assert.True(t, ok)
	assert.Equal(t, structs.StatusCompleted, next)

	_, ok = NextStatus(structs.StatusCompleted)
	assert.False(t, ok)
	_, ok = NextStatus(structs.StatusCancelled)
	assert.False(t, ok)

	assert.Equal(t, "Iniciar", NextStatusAction(structs.StatusPending))
	assert.Equal(t, "Marcar como Concluída", NextStatusActionLong(structs.StatusInProgress))
	assert.Empty(t, NextStatusAction(structs.StatusCompleted))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "02 de janeiro de 2025", FormatDate(time.Date(2025, 1, 2, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, "01 de março de 2024", FormatDate(time.Date(2024, 2, 29, 23, 0, 0, 0, time.FixedZone("BRT", -3*3600))))
	assert.Empty(t, FormatDate(time.Time{}))
	assert.Empty(t, FormatDatePtr(nil))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-10 * time.Second), "há alguns segundos"},
		{now.Add(30 * time.Second), "em alguns segundos"},
		{now.Add(-1 * time.Minute), "há 1 minuto"},
		{now.Add(-5 * time.Minute), "há 5 minutos"},
		{now.Add(2 * time.Hour), "em 2 horas"},
		{now.Add(-3 * 24 * time.Hour), "há 3 dias"},
		{now.Add(-45 * 24 * time.Hour), "há 1 mês"},
		{now.Add(90 * 24 * time.Hour), "em 3 meses"},
		{now.Add(-400 * 24 * time.Hour), "há 1 ano"},
		{now.Add(-800 * 24 * time.Hour), "há 2 anos"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, relativeTo(tt.at, now))
	}
}

func TestDueDate(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)

	info, ok := dueDateAt(&past, structs.StatusPending, now)
	assert.True(t, ok)
	assert.True(t, info.Overdue)
	assert.False(t, info.DueToday)
	assert.Equal(t, "há 2 dias", info.Relative)
	assert.Equal(t, "08 de junho de 2025", info.Formatted)

	info, _ = dueDateAt(&past, structs.StatusCompleted, now)
	assert.False(t, info.Overdue)

	later := now.Add(3 * time.Hour)
	info, _ = dueDateAt(&later, structs.StatusPending, now)
	assert.True(t, info.DueToday)
	assert.False(t, info.Overdue)

	_, ok = dueDateAt(nil, structs.StatusPending, now)
	assert.False(t, ok)
}

func TestMasks(t *testing.T) {
	assert.Equal(t, "12.345.678/0001-90", FormatCNPJ("12345678000190"))
	assert.Equal(t, "123.456.789-00", FormatCPF("123.456.789-00"))
	assert.Equal(t, "123", FormatCPF("1-2-3"))
	assert.Equal(t, "(11) 98765-4321", FormatPhone("11987654321"))
	assert.Equal(t, "(11) 8765-4321", FormatPhone("1187654321"))
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "Olá & bem-vindo <sempre>", StripHTML("<p>Olá &amp; <b>bem-vindo</b></p>\n<p>&lt;sempre&gt;</p>"))
	assert.Equal(t, "", StripHTML(""))
	assert.Equal(t, "a b", StripHTML("a&nbsp;  b"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "Relat...", Truncate("Relatório mensal", 8))
	assert.Equal(t, "abc…", Truncate("abcdefgh", 4, "…"))
	assert.Equal(t, "Olá...", StripAndTruncate("<p>Olá mundo</p>", 6))
}
