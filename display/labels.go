package display

import "github.com/teamops/dashboard/structs"

// Badge is a label with the foreground and background colors it is shown with.
type Badge struct {
	Label string
	Icon  string
	Color string
	Bg    string
}

var statusBadges = map[structs.TaskStatus]Badge{
	structs.StatusPending:    {Label: "Pendente", Color: "#b45309", Bg: "#fef3c7"},
	structs.StatusInProgress: {Label: "Em Progresso", Color: "#1d4ed8", Bg: "#dbeafe"},
	structs.StatusCompleted:  {Label: "Concluída", Color: "#15803d", Bg: "#dcfce7"},
	structs.StatusCancelled:  {Label: "Cancelada", Color: "#b91c1c", Bg: "#fee2e2"},
}

var priorityBadges = map[structs.TaskPriority]Badge{
	structs.PriorityLow:    {Label: "Baixa", Icon: "🟢", Color: "#15803d", Bg: "#dcfce7"},
	structs.PriorityMedium: {Label: "Média", Icon: "🟡", Color: "#a16207", Bg: "#fef9c3"},
	structs.PriorityHigh:   {Label: "Alta", Icon: "🟠", Color: "#c2410c", Bg: "#ffedd5"},
	structs.PriorityUrgent: {Label: "Urgente", Icon: "🔴", Color: "#b91c1c", Bg: "#fee2e2"},
}

var roleLabels = map[structs.Role]string{
	structs.RoleAdmin:    "Administrador",
	structs.RoleManager:  "Gerente",
	structs.RoleEmployee: "Colaborador",
}

var notificationLabels = map[structs.NotificationType]string{
	structs.NotificationInfo:    "Informação",
	structs.NotificationSuccess: "Sucesso",
	structs.NotificationWarning: "Aviso",
	structs.NotificationError:   "Erro",
}

// StatusBadge returns the badge of a status. DONE is shown as COMPLETED and
// unknown values keep their raw text.
func StatusBadge(s structs.TaskStatus) Badge {
	if b, ok := statusBadges[s.Normalize()]; ok {
		return b
	}
	return Badge{Label: string(s), Color: "#4b5563", Bg: "#f3f4f6"}
}

// StatusLabel returns the pt-BR label of a status.
func StatusLabel(s structs.TaskStatus) string { return StatusBadge(s).Label }

// PriorityBadge returns the badge of a priority.
func PriorityBadge(p structs.TaskPriority) Badge {
	if b, ok := priorityBadges[p]; ok {
		return b
	}
	return Badge{Label: string(p), Color: "#4b5563", Bg: "#f3f4f6"}
}

// PriorityLabel returns the pt-BR label of a priority.
func PriorityLabel(p structs.TaskPriority) string { return PriorityBadge(p).Label }

// RoleLabel returns the pt-BR label of a role.
func RoleLabel(r structs.Role) string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}

// NotificationLabel returns the pt-BR label of a notification type.
func NotificationLabel(t structs.NotificationType) string {
	if l, ok := notificationLabels[t]; ok {
		return l
	}
	return string(t)
}

// NextStatus returns the next step of the task workflow and false when the
// task is finished.
func NextStatus(s structs.TaskStatus) (structs.TaskStatus, bool) {
	switch s.Normalize() {
	case structs.StatusPending:
		return structs.StatusInProgress, true
	case structs.StatusInProgress:
		return structs.StatusCompleted, true
	default:
		return "", false
	}
}

// NextStatusAction returns the short button label for advancing a task.
func NextStatusAction(s structs.TaskStatus) string {
	switch s.Normalize() {
	case structs.StatusPending:
		return "Iniciar"
	case structs.StatusInProgress:
		return "Concluir"
	}
	return ""
}

// NextStatusActionLong returns the detail-page button label for advancing a task.
func NextStatusActionLong(s structs.TaskStatus) string {
	switch s.Normalize() {
	case structs.StatusPending:
		return "Iniciar Tarefa"
	case structs.StatusInProgress:
		return "Marcar como Concluída"
	}
	return ""
}
