package templates

import (
	"context"
	"fmt"
	"strconv"

	"github.com/teamops/dashboard/display"
	"github.com/teamops/dashboard/logging/logger"
	"github.com/teamops/dashboard/pdf"
	"github.com/teamops/dashboard/structs"
)

type teamReportData struct {
	Team    structs.Team   `json:"team"`
	Members []structs.User `json:"members"`
	Tasks   []structs.Task `json:"tasks"`
	LogoURL string         `json:"logoUrl"`
}

func generateTeamReport(ctx context.Context, data map[string]any, opts pdf.Options) ([]byte, error) {
	var in teamReportData
	if err := decode(data, &in); err != nil {
		return nil, err
	}
	if in.Team.ID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidData)
	}
	if len(in.Members) == 0 {
		in.Members = in.Team.Members
	}
	if len(in.Tasks) == 0 {
		in.Tasks = in.Team.Tasks
	}

	d := pdf.NewDocument(metadata(opts, "Team: "+in.Team.Name, "Team Report"))
	d.Footer(footerText, in.Team.Name)

	if in.LogoURL != "" && pdf.IsExternalURL(in.LogoURL) {
		img, err := pdf.FetchImage(ctx, in.LogoURL)
		if err == nil {
			err = d.Image(img, 80)
		}
		if err != nil {
			logger.Warn(ctx, "team report logo skipped", "url", in.LogoURL, "error", err)
		}
	}

	d.NoBreak(func(d *pdf.Document) {
		d.Header("Relatório do Time", generatedAt())
	})

	d.KeepSection("Informações do Time", func(d *pdf.Document) {
		d.Field("Nome", in.Team.Name)
		if in.Team.Description != "" {
			d.Field("Descrição", pdf.HTMLToPlainText(in.Team.Description))
		}
		manager := in.Team.ManagerID
		if in.Team.Manager != nil && in.Team.Manager.Name != "" {
			manager = in.Team.Manager.Name
		}
		d.Field("Gerente", manager)
		d.Field("Membros", strconv.Itoa(len(in.Members)))
		d.Field("Criado Em", display.FormatDate(in.Team.CreatedAt))
	})

	d.Section("Membros", func(d *pdf.Document) {
		if len(in.Members) == 0 {
			d.Paragraph("Nenhum membro neste time.")
			return
		}
		rows := make([][]string, 0, len(in.Members))
		for _, m := range in.Members {
			rows = append(rows, []string{m.Name, m.Email, display.RoleLabel(m.Role)})
		}
		d.Table([]pdf.Column{
			{Header: "Nome", Width: 0.35},
			{Header: "Email", Width: 0.4},
			{Header: "Função", Width: 0.25},
		}, rows)
	})

	d.KeepSection("Resumo de Tarefas", func(d *pdf.Document) {
		statusSummary(d, in.Tasks)
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.Bytes()
}
