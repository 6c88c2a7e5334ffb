package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/teamops/dashboard/apiclient"
	"github.com/teamops/dashboard/dashboard"
	"github.com/teamops/dashboard/display"
	"github.com/teamops/dashboard/structs"
	"github.com/teamops/dashboard/types"
	"github.com/teamops/dashboard/validation/validator"
)

func newTasksCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Task management commands",
	}

	cmd.AddCommand(
		newTaskListCommand(opts),
		newTaskShowCommand(opts),
		newTaskCreateCommand(opts),
		newTaskUpdateCommand(opts),
		newTaskStatusCommand(opts),
		newTaskDeleteCommand(opts),
	)
	return cmd
}

func taskRows(tasks []structs.Task) [][]string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		due := ""
		if info, ok := display.DueDate(t.DueDate, t.Status); ok {
			due = info.Formatted
			if info.Overdue {
				due += " (atrasada)"
			}
		}
		rows = append(rows, []string{
			t.ID,
			display.Truncate(t.DisplayName(), 40),
			renderBadge(display.StatusBadge(t.Status)),
			renderBadge(display.PriorityBadge(t.Priority)),
			refName(t.AssignedTo),
			due,
		})
	}
	return rows
}

func newTaskListCommand(opts *options) *cobra.Command {
	var params structs.TaskListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				page, err := e.dash.Tasks(ctx, &params)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if opts.jsonOutput {
					return printJSON(w, page)
				}
				renderTable(w, []string{"ID", "Nome", "Status", "Prioridade", "Responsável", "Vencimento"}, taskRows(page.Data))
				renderFooter(w, dashboard.NewPageInfo(page, "tarefas"))
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&params.Page, "page", 1, "page number")
	f.IntVar(&params.Limit, "limit", 10, "items per page")
	f.StringVar(&params.Name, "name", "", "filter by name")
	f.StringVar(&params.Status, "status", "", "filter by status")
	f.StringVar(&params.Priority, "priority", "", "filter by priority")
	f.StringVar(&params.TeamID, "team", "", "filter by team id")
	f.StringVar(&params.AssignedToID, "assignee", "", "filter by assignee id")
	return cmd
}

func newTaskShowCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				v, err := e.dash.TaskDetail(ctx, args[0])
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if opts.jsonOutput {
					return printJSON(w, v)
				}

				due := ""
				if v.Due != nil {
					due = v.Due.Formatted + " (" + v.Due.Relative + ")"
				}
				renderPanel(w, v.Title, []field{
					{"Status", renderBadge(v.Status)},
					{"Prioridade", renderBadge(v.Priority)},
					{"Responsável", refName(v.Task.AssignedTo)},
					{"Time", refName(v.Task.Team)},
					{"Criado por", refName(v.Task.CreatedBy)},
					{"Criado em", v.CreatedAt},
					{"Vencimento", due},
					{"Etiquetas", strings.Join(v.Task.Labels, ", ")},
					{"Descrição", v.Description},
				})

				if len(v.Task.Files) > 0 {
					rows := make([][]string, 0, len(v.Task.Files))
					for _, f := range v.Task.Files {
						rows = append(rows, []string{f.ID, f.FileName(), validator.FileKind(f.FileName()), f.FileURL()})
					}
					renderTable(w, []string{"ID", "Arquivo", "Tipo", "URL"}, rows)
				}
				if v.NextAction != "" {
					fmt.Fprintln(w, mutedStyle.Render("Próximo passo: "+v.NextAction))
				}
				return nil
			})
		},
	}
}

func newTaskCreateCommand(opts *options) *cobra.Command {
	var (
		in    structs.CreateTaskInput
		files []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				task, err := e.dash.CreateTask(ctx, &in)
				if err != nil {
					return err
				}
				if len(files) > 0 {
					uploads, closeAll, err := apiclient.OpenUploads(files...)
					if err != nil {
						return err
					}
					defer closeAll()
					if task, err = e.dash.UploadTaskFiles(ctx, task.ID, uploads); err != nil {
						return fmt.Errorf("Tarefa criada, mas houve um erro ao enviar os arquivos: %w", err)
					}
				}
				if opts.jsonOutput {
					return printJSON(cmd.OutOrStdout(), task)
				}
				success(cmd.OutOrStdout(), "Tarefa criada com sucesso: "+task.ID)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&in.Name, "name", "n", "", "task name")
	f.StringVarP(&in.Description, "description", "d", "", "task description")
	f.StringVar(&in.AssignedToID, "assignee", "", "assignee id")
	f.StringVar(&in.TeamID, "team", "", "team id")
	f.StringVar((*string)(&in.Priority), "priority", "", "LOW, MEDIUM, HIGH or URGENT")
	f.StringVar(&in.DueDate, "due", "", "due date")
	f.StringSliceVar(&in.Labels, "label", nil, "label, repeatable")
	f.StringSliceVar(&files, "file", nil, "file to attach, repeatable")
	return cmd
}

func newTaskUpdateCommand(opts *options) *cobra.Command {
	var (
		in       structs.UpdateTaskInput
		name     string
		assignee string
		team     string
		priority string
		due      string
		files    []string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task and attach files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			if f.Changed("name") {
				in.Name = types.ToPointer(name)
			}
			if f.Changed("assignee") {
				in.AssignedToID = types.ToPointer(assignee)
			}
			if f.Changed("team") {
				in.TeamID = types.ToPointer(team)
			}
			if f.Changed("priority") {
				in.Priority = types.ToPointer(structs.TaskPriority(strings.ToUpper(priority)))
			}
			if f.Changed("due") {
				if due == "" {
					in.ClearDueDate = true
				} else {
					in.DueDate = types.ToPointer(due)
				}
			}

			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				var uploads []apiclient.Upload
				if len(files) > 0 {
					var closeAll func()
					var err error
					uploads, closeAll, err = apiclient.OpenUploads(files...)
					if err != nil {
						return err
					}
					defer closeAll()
				}

				res := e.dash.EditTask(ctx, args[0], &in, uploads)
				if res.UpdateErr != nil {
					return fmt.Errorf("%s: %w", res.Message(), res.UpdateErr)
				}
				if opts.jsonOutput {
					return printJSON(cmd.OutOrStdout(), res.Task)
				}
				if res.UploadErr != nil {
					return fmt.Errorf("%s: %w", res.Message(), res.UploadErr)
				}
				success(cmd.OutOrStdout(), res.Message())
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&name, "name", "n", "", "task name")
	f.StringVarP(&in.Description, "description", "d", "", "task description")
	f.StringVar(&assignee, "assignee", "", "assignee id")
	f.StringVar(&team, "team", "", "team id")
	f.StringVar(&priority, "priority", "", "LOW, MEDIUM, HIGH or URGENT")
	f.StringVar(&due, "due", "", "due date, empty to clear")
	f.StringSliceVar(&in.Labels, "label", nil, "label, repeatable")
	f.StringSliceVar(&files, "file", nil, "file to attach, repeatable")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func newTaskStatusCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> [status]",
		Short: "Set a task status, or advance it to the next step",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				var (
					task *structs.Task
					err  error
				)
				if len(args) == 2 {
					task, err = e.dash.UpdateTaskStatus(ctx, args[0], structs.TaskStatus(strings.ToUpper(args[1])))
				} else {
					task, err = e.dash.AdvanceTask(ctx, args[0])
				}
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return printJSON(cmd.OutOrStdout(), task)
				}
				success(cmd.OutOrStdout(), fmt.Sprintf("Status atualizado: %s", display.StatusLabel(task.Status)))
				return nil
			})
		},
	}
}

func newTaskDeleteCommand(opts *options) *cobra.Command {
	var fileID string

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task, or one of its files with --file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				if fileID != "" {
					if err := e.dash.DeleteTaskFile(ctx, args[0], fileID); err != nil {
						return err
					}
					success(cmd.OutOrStdout(), "Arquivo removido")
					return nil
				}
				if err := e.dash.DeleteTask(ctx, args[0]); err != nil {
					if apiErr, ok := apiclient.AsAPIError(err); ok && apiclient.IsNotFound(err) {
						return errors.New(apiErr.Message)
					}
					return err
				}
				success(cmd.OutOrStdout(), "Tarefa excluída com sucesso")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&fileID, "file", "", "delete only this file of the task")
	return cmd
}
