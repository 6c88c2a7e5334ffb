package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/teamops/dashboard/dashboard"
	"github.com/teamops/dashboard/display"
	"github.com/teamops/dashboard/structs"
)

func newLogsCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Audit log commands",
	}
	cmd.AddCommand(newLogListCommand(opts))
	return cmd
}

func newLogListCommand(opts *options) *cobra.Command {
	var params structs.LogListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List audit log entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				page, err := e.dash.Logs(ctx, &params)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if opts.jsonOutput {
					return printJSON(w, page)
				}

				rows := make([][]string, 0, len(page.Data))
				for _, l := range page.Data {
					user := "Sistema"
					if l.User != nil {
						user = l.User.Name
					}
					meta := ""
					if len(l.Metadata) > 0 {
						b, _ := json.Marshal(l.Metadata)
						meta = display.Truncate(string(b), 50)
					}
					rows = append(rows, []string{l.ID, l.Action, l.Entity, user, display.FormatDateTime(l.CreatedAt), meta})
				}
				renderTable(w, []string{"ID", "Ação", "Entidade", "Usuário", "Data", "Metadados"}, rows)
				renderFooter(w, dashboard.NewPageInfo(page, "registros"))
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&params.Page, "page", 1, "page number")
	f.IntVar(&params.Limit, "limit", 10, "items per page")
	f.StringVar(&params.Entity, "entity", "", "filter by entity")
	f.StringVar(&params.Action, "action", "", "filter by action")
	f.StringVar(&params.StartDate, "start", "", "period start date")
	f.StringVar(&params.EndDate, "end", "", "period end date")
	return cmd
}

func newMetricsCommand(opts *options) *cobra.Command {
	var filters structs.MetricsFilters

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Show the metrics of the signed-in user's role",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				m, err := e.dash.Metrics(ctx, &filters)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if opts.jsonOutput {
					return printJSON(w, m)
				}

				cards := dashboard.Cards(m)
				rows := make([][]string, 0, len(cards))
				for _, c := range cards {
					rows = append(rows, []string{c.Title, c.Value})
				}
				fmt.Fprintln(w, titleStyle.Render("Métricas · "+display.RoleLabel(m.Role)))
				renderTable(w, []string{"Indicador", "Valor"}, rows)

				switch {
				case m.Admin != nil:
					top := m.Admin.RecentActivity.TopActions
					rows := make([][]string, 0, len(top))
					for _, a := range top {
						rows = append(rows, []string{a.Action, strconv.Itoa(a.Count)})
					}
					renderTable(w, []string{"Ação", "Ocorrências"}, rows)
				case m.Manager != nil:
					reports := m.Manager.DirectReports.Users
					rows := make([][]string, 0, len(reports))
					for _, r := range reports {
						rows = append(rows, []string{
							r.UserName,
							strconv.Itoa(r.TasksAssigned),
							strconv.Itoa(r.TasksCompleted),
							strconv.FormatFloat(r.CompletionRate, 'f', 1, 64) + "%",
						})
					}
					renderTable(w, []string{"Colaborador", "Atribuídas", "Concluídas", "Taxa"}, rows)
				case m.Employee != nil:
					upcoming := m.Employee.UpcomingDeadlines
					rows := make([][]string, 0, len(upcoming))
					for _, d := range upcoming {
						rows = append(rows, []string{
							d.Title,
							display.PriorityLabel(structs.TaskPriority(d.Priority)),
							d.DueDate,
						})
					}
					renderTable(w, []string{"Próximos prazos", "Prioridade", "Vencimento"}, rows)
				}
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&filters.StartDate, "start", "", "period start date")
	f.StringVar(&filters.EndDate, "end", "", "period end date")
	f.StringVar(&filters.TeamID, "team", "", "team id")
	f.StringVar(&filters.UserID, "user", "", "user id")
	f.StringVar(&filters.TaskStatus, "status", "", "PENDING, IN_PROGRESS or DONE")
	f.StringVar(&filters.Priority, "priority", "", "LOW, MEDIUM, HIGH or URGENT")
	return cmd
}
