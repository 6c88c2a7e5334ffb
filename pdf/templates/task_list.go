package templates

import (
	"context"
	"fmt"
	"strconv"

	"github.com/teamops/dashboard/display"
	"github.com/teamops/dashboard/pdf"
	"github.com/teamops/dashboard/structs"
)

type taskListData struct {
	Title string         `json:"title"`
	Tasks []structs.Task `json:"tasks"`
}

var summaryOrder = []structs.TaskStatus{
	structs.StatusPending,
	structs.StatusInProgress,
	structs.StatusCompleted,
	structs.StatusCancelled,
}

// statusCounts counts tasks per normalized status.
func statusCounts(tasks []structs.Task) map[structs.TaskStatus]int {
	counts := make(map[structs.TaskStatus]int, len(summaryOrder))
	for _, t := range tasks {
		counts[t.Status.Normalize()]++
	}
	return counts
}

func statusSummary(d *pdf.Document, tasks []structs.Task) {
	counts := statusCounts(tasks)
	rows := make([][]string, 0, len(summaryOrder)+1)
	for _, s := range summaryOrder {
		rows = append(rows, []string{pdf.FormatStatus(string(s)), strconv.Itoa(counts[s])})
	}
	rows = append(rows, []string{"Total", strconv.Itoa(len(tasks))})
	d.Table([]pdf.Column{{Header: "Status", Width: 0.7}, {Header: "Quantidade", Width: 0.3}}, rows)
}

func generateTaskList(ctx context.Context, data map[string]any, opts pdf.Options) ([]byte, error) {
	var in taskListData
	if err := decode(data, &in); err != nil {
		return nil, err
	}
	if in.Title == "" {
		in.Title = "Lista de Tarefas"
	}

	d := pdf.NewDocument(metadata(opts, in.Title, "Task List"))
	d.Footer(footerText, fmt.Sprintf("%d tarefas", len(in.Tasks)))
	d.NoBreak(func(d *pdf.Document) {
		d.Header(in.Title, generatedAt())
	})

	d.KeepSection("Resumo", func(d *pdf.Document) {
		statusSummary(d, in.Tasks)
	})

	rows := make([][]string, 0, len(in.Tasks))
	for _, t := range in.Tasks {
		assignee := ""
		if t.AssignedTo != nil {
			assignee = t.AssignedTo.Name
		}
		rows = append(rows, []string{
			pdf.Truncate(t.DisplayName(), 80),
			pdf.FormatStatus(string(t.Status)),
			pdf.FormatPriority(string(t.Priority)),
			assignee,
			display.FormatDatePtr(t.DueDate),
		})
	}
	d.Section("Tarefas", func(d *pdf.Document) {
		if len(rows) == 0 {
			d.Paragraph("Nenhuma tarefa encontrada.")
			return
		}
		d.Table([]pdf.Column{
			{Header: "Nome", Width: 0.34},
			{Header: "Status", Width: 0.16},
			{Header: "Prioridade", Width: 0.14},
			{Header: "Responsável", Width: 0.18},
			{Header: "Vencimento", Width: 0.18},
		}, rows)
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.Bytes()
}
