package templates

import (
	"context"
	"fmt"
	"strings"

	"github.com/teamops/dashboard/display"
	"github.com/teamops/dashboard/pdf"
	"github.com/teamops/dashboard/structs"
)

func generateTaskDetails(ctx context.Context, data map[string]any, opts pdf.Options) ([]byte, error) {
	var task structs.Task
	if err := decode(data, &task); err != nil {
		return nil, err
	}
	if task.ID == "" {
		return nil, fmt.Errorf("%w: task id is required", ErrInvalidData)
	}

	name := task.DisplayName()
	d := pdf.NewDocument(metadata(opts, "Task: "+name, "Task Details"))
	d.Footer(footerText, "")

	d.NoBreak(func(d *pdf.Document) {
		d.Header("Detalhes da Tarefa", generatedAt())
	})

	d.KeepSection("Informações da Tarefa", func(d *pdf.Document) {
		d.Field("ID da Tarefa", task.ID)
		d.Field("Nome da Tarefa", name)
		d.BadgeField("Status", pdf.FormatStatus(string(task.Status)), pdf.StatusVariant(string(task.Status)))
		d.BadgeField("Priority", pdf.FormatPriority(string(task.Priority)), pdf.PriorityVariant(string(task.Priority)))
		d.Field("Data de Vencimento", display.FormatDatePtr(task.DueDate))
		if len(task.Labels) > 0 {
			d.Field("Etiquetas", strings.Join(task.Labels, ", "))
		}
	})

	if desc := task.DescriptionText(); desc != "" {
		d.Section("Descrição", func(d *pdf.Document) {
			d.MinPresenceAhead(50)
			d.Paragraph(pdf.HTMLToPlainText(desc))
		})
	}

	d.KeepSection("Detalhes da Atribuição", func(d *pdf.Document) {
		assignee := ""
		if task.AssignedToID != nil {
			assignee = *task.AssignedToID
		}
		if task.AssignedTo != nil && task.AssignedTo.Name != "" {
			assignee = task.AssignedTo.Name
		}
		d.Field("Atribuído a", assignee)
		if task.AssignedTo != nil && task.AssignedTo.Email != "" {
			d.Field("Email do Atribuído", task.AssignedTo.Email)
		}
		if task.Team != nil && task.Team.Name != "" {
			d.Field("Equipe", task.Team.Name)
		}
	})

	d.KeepSection("Detalhes da Criação", func(d *pdf.Document) {
		creator := task.CreatedByID
		if task.CreatedBy != nil && task.CreatedBy.Name != "" {
			creator = task.CreatedBy.Name
		}
		d.Field("Criado Por", creator)
		d.Field("Criado Em", display.FormatDate(task.CreatedAt))
		d.Field("Última Atualização", display.FormatDatePtr(task.UpdatedAt))
	})

	if len(task.Files) > 0 {
		rows := make([][]string, 0, len(task.Files))
		for _, f := range task.Files {
			mime := f.MimeType
			if mime == "" && f.File != nil {
				mime = f.File.Mimetype
			}
			rows = append(rows, []string{pdf.Truncate(f.FileName(), 60), mime, formatSize(f.FileSize())})
		}
		d.Section("Arquivos", func(d *pdf.Document) {
			d.Table([]pdf.Column{
				{Header: "Nome", Width: 0.55},
				{Header: "Tipo", Width: 0.25},
				{Header: "Tamanho", Width: 0.2},
			}, rows)
		})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.Bytes()
}
