package commands

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/teamops/dashboard/dashboard"
	"github.com/teamops/dashboard/display"
	"github.com/teamops/dashboard/structs"
)

func newTeamsCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "teams",
		Aliases: []string{"team"},
		Short:   "Team commands",
	}

	cmd.AddCommand(
		newTeamListCommand(opts),
		newTeamMembersCommand(opts),
	)
	return cmd
}

func newTeamListCommand(opts *options) *cobra.Command {
	var params structs.TeamListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				page, err := e.dash.Teams(ctx, &params)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if opts.jsonOutput {
					return printJSON(w, page)
				}

				rows := make([][]string, 0, len(page.Data))
				for _, t := range page.Data {
					rows = append(rows, []string{
						t.ID,
						t.Name,
						refName(t.Manager),
						strconv.Itoa(len(t.Members)),
						strconv.Itoa(len(t.Tasks)),
						display.FormatDate(t.CreatedAt),
					})
				}
				renderTable(w, []string{"ID", "Nome", "Gerente", "Membros", "Tarefas", "Criado em"}, rows)
				renderFooter(w, dashboard.NewPageInfo(page, "times"))
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&params.Page, "page", 1, "page number")
	f.IntVar(&params.Limit, "limit", 10, "items per page")
	f.StringVar(&params.Name, "name", "", "filter by name")
	return cmd
}

func userRows(users []structs.User) [][]string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID, u.Name, u.Email, display.RoleLabel(u.Role)})
	}
	return rows
}

func newTeamMembersCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "members <team-id>",
		Short: "List the members of a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				members, err := e.dash.TeamMembers(ctx, args[0])
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return printJSON(cmd.OutOrStdout(), members)
				}
				renderTable(cmd.OutOrStdout(), []string{"ID", "Nome", "Email", "Perfil"}, userRows(members))
				return nil
			})
		},
	}
}

func newEmployeesCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"employee"},
		Short:   "Employee commands",
	}
	cmd.AddCommand(newEmployeeListCommand(opts))
	return cmd
}

func newEmployeeListCommand(opts *options) *cobra.Command {
	var params structs.EmployeeListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				page, err := e.dash.Employees(ctx, &params)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if opts.jsonOutput {
					return printJSON(w, page)
				}
				renderTable(w, []string{"ID", "Nome", "Email", "Perfil"}, userRows(page.Data))
				renderFooter(w, dashboard.NewPageInfo(page, "colaboradores"))
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&params.Page, "page", 1, "page number")
	f.IntVar(&params.Limit, "limit", 10, "items per page")
	f.StringVar(&params.Name, "name", "", "filter by name")
	f.StringVar(&params.TeamID, "team", "", "filter by team id")
	f.StringVar(&params.Role, "role", "", "filter by role")
	return cmd
}
