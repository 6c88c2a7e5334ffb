package csvexport

import (
	"encoding/json"
	"time"

	"github.com/teamops/dashboard/display"
	"github.com/teamops/dashboard/structs"
)

// Default export names, suffixed with the export date.
const (
	TasksName = "tarefas"
	TeamsName = "times"
	LogsName  = "logs"
)

// Dated returns "<prefix>_<date>" for an export made at t.
func Dated(prefix string, t time.Time) string {
	return prefix + "_" + display.FormatDate(t)
}

// Tasks builds the task export.
func Tasks(tasks []structs.Task) *Table {
	t := &Table{Columns: []string{
		"ID", "Nome", "Descrição", "Status", "Prioridade", "Atribuído para",
		"Equipe", "Criado por", "Data de vencimento", "Criado em", "Atualizado em",
	}}
	for _, task := range tasks {
		t.Add(Row{
			"ID":                 task.ID,
			"Nome":               task.DisplayName(),
			"Descrição":          display.StripHTML(task.DescriptionText()),
			"Status":             string(task.Status),
			"Prioridade":         string(task.Priority),
			"Atribuído para":     refName(task.AssignedTo, ""),
			"Equipe":             refName(task.Team, ""),
			"Criado por":         refName(task.CreatedBy, ""),
			"Data de vencimento": display.FormatDatePtr(task.DueDate),
			"Criado em":          display.FormatDate(task.CreatedAt),
			"Atualizado em":      display.FormatDatePtr(task.UpdatedAt),
		})
	}
	return t
}

// Teams builds the team export.
func Teams(teams []structs.Team) *Table {
	t := &Table{Columns: []string{
		"ID", "Nome", "Descrição", "Gerente", "Número de membros",
		"Número de tarefas", "Criado em", "Atualizado em",
	}}
	for _, team := range teams {
		t.Add(Row{
			"ID":                team.ID,
			"Nome":              team.Name,
			"Descrição":         display.StripHTML(team.Description),
			"Gerente":           refName(team.Manager, ""),
			"Número de membros": len(team.Members),
			"Número de tarefas": len(team.Tasks),
			"Criado em":         display.FormatDate(team.CreatedAt),
			"Atualizado em":     display.FormatDate(team.UpdatedAt),
		})
	}
	return t
}

// Logs builds the activity log export. Entries without a user are
// attributed to "Sistema".
func Logs(logs []structs.LogEntry) *Table {
	t := &Table{Columns: []string{
		"ID", "Ação", "Entidade", "Usuário", "ID da Empresa", "Criado em", "Metadados",
	}}
	for _, l := range logs {
		meta := ""
		if len(l.Metadata) > 0 {
			if b, err := json.Marshal(l.Metadata); err == nil {
				meta = string(b)
			}
		}
		t.Add(Row{
			"ID":            l.ID,
			"Ação":          l.Action,
			"Entidade":      l.Entity,
			"Usuário":       refName(l.User, "Sistema"),
			"ID da Empresa": l.CompanyID,
			"Criado em":     display.FormatDate(l.CreatedAt),
			"Metadados":     meta,
		})
	}
	return t
}

func refName(r *structs.Ref, fallback string) string {
	if r == nil || r.Name == "" {
		return fallback
	}
	return r.Name
}
