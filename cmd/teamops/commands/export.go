package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/teamops/dashboard/csvexport"
	"github.com/teamops/dashboard/paging"
	"github.com/teamops/dashboard/structs"
)

// exportPageSize is the page size used to walk a list for export.
const exportPageSize = 100

func newExportCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export commands",
	}
	cmd.AddCommand(newExportCSVCommand(opts))
	return cmd
}

func newExportCSVCommand(opts *options) *cobra.Command {
	var dir, name string

	cmd := &cobra.Command{
		Use:       "csv <tasks|teams|logs>",
		Short:     "Export a list to a CSV file",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"tasks", "teams", "logs"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				var (
					table  *csvexport.Table
					prefix string
					err    error
				)
				switch args[0] {
				case "tasks":
					prefix = csvexport.TasksName
					var tasks []structs.Task
					tasks, err = collect(ctx, func(ctx context.Context, p paging.Params) (*structs.Pagination[structs.Task], error) {
						return e.dash.Tasks(ctx, &structs.TaskListParams{Params: p})
					})
					table = csvexport.Tasks(tasks)
				case "teams":
					prefix = csvexport.TeamsName
					var teams []structs.Team
					teams, err = collect(ctx, func(ctx context.Context, p paging.Params) (*structs.Pagination[structs.Team], error) {
						return e.dash.Teams(ctx, &structs.TeamListParams{Params: p})
					})
					table = csvexport.Teams(teams)
				case "logs":
					prefix = csvexport.LogsName
					var logs []structs.LogEntry
					logs, err = collect(ctx, func(ctx context.Context, p paging.Params) (*structs.Pagination[structs.LogEntry], error) {
						return e.dash.Logs(ctx, &structs.LogListParams{Params: p})
					})
					table = csvexport.Logs(logs)
				}
				if err != nil {
					return err
				}

				if name == "" {
					name = csvexport.Dated(prefix, time.Now())
				}
				path, err := csvexport.Save(dir, name, table)
				if err != nil {
					return err
				}
				success(cmd.OutOrStdout(), fmt.Sprintf("%d registros exportados para %s", table.Len(), path))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "output directory")
	cmd.Flags().StringVarP(&name, "name", "n", "", "file name, defaults to <list>_<date>")
	return cmd
}

// collect walks every page of a list.
func collect[T any](ctx context.Context, list func(context.Context, paging.Params) (*structs.Pagination[T], error)) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		p, err := list(ctx, paging.Params{Page: page, Limit: exportPageSize})
		if err != nil {
			return nil, err
		}
		all = append(all, p.Data...)
		if len(p.Data) == 0 || page >= p.LastPage() {
			return all, nil
		}
	}
}
