package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/teamops/dashboard/paging"
	"github.com/teamops/dashboard/pdf"
	"github.com/teamops/dashboard/pdf/templates"
	"github.com/teamops/dashboard/structs"
)

func newPDFCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "PDF report commands",
	}

	cmd.AddCommand(
		newPDFTemplatesCommand(opts),
		newPDFRenderCommand(opts),
	)
	return cmd
}

func newPDFTemplatesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the registered templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := pdf.Default().Names()
			w := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(w, map[string]any{"templates": names, "count": len(names)})
			}
			rows := make([][]string, 0, len(names))
			for _, n := range names {
				rows = append(rows, []string{n})
			}
			renderTable(w, []string{"Template"}, rows)
			return nil
		},
	}
}

type renderFlags struct {
	data   string
	task   string
	team   string
	title  string
	out    string
	render pdf.Options
}

func newPDFRenderCommand(opts *options) *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render <template>",
		Short: "Render a template to a PDF file",
		Long: `Render a template from a JSON payload (--data, "-" for stdin) or from
API data: --task for task-details, --team for team-report, and the task list
(optionally of --team) for task-list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !pdf.Default().Has(name) {
				return &pdf.TemplateNotFoundError{Name: name, Names: pdf.Default().Names()}
			}

			var (
				data map[string]any
				err  error
			)
			if f.data != "" {
				data, err = readPayload(cmd.InOrStdin(), f.data)
			} else {
				err = withEnv(cmd, opts, func(ctx context.Context, e *env) error {
					data, err = payloadFromAPI(ctx, e, name, &f)
					return err
				})
			}
			if err != nil {
				return err
			}

			out, err := pdf.Default().Generate(cmd.Context(), name, data, f.render)
			if err != nil {
				return err
			}

			path := f.out
			if path == "" {
				path = fmt.Sprintf("%s-%d.pdf", name, time.Now().UnixMilli())
			}
			if path == "-" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(path, out, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			success(cmd.OutOrStdout(), fmt.Sprintf("PDF gerado: %s (%d bytes)", path, len(out)))
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.data, "data", "", `JSON payload file, "-" for stdin`)
	fl.StringVar(&f.task, "task", "", "task id for task-details")
	fl.StringVar(&f.team, "team", "", "team id for team-report and task-list")
	fl.StringVar(&f.title, "title", "", "list title for task-list")
	fl.StringVarP(&f.out, "out", "o", "", `output file, "-" for stdout`)
	fl.StringVar(&f.render.Title, "doc-title", "", "document title metadata")
	fl.StringVar(&f.render.Author, "author", "", "document author metadata")
	fl.StringVar(&f.render.Subject, "subject", "", "document subject metadata")
	return cmd
}

func readPayload(stdin io.Reader, path string) (map[string]any, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse payload: %w", err)
	}
	return data, nil
}

func payloadFromAPI(ctx context.Context, e *env, name string, f *renderFlags) (map[string]any, error) {
	switch name {
	case templates.TaskDetails:
		if f.task == "" {
			return nil, errors.New("--task is required for task-details")
		}
		task, err := e.dash.Task(ctx, f.task)
		if err != nil {
			return nil, err
		}
		return toMap(task)

	case templates.TeamReport:
		if f.team == "" {
			return nil, errors.New("--team is required for team-report")
		}
		team, err := e.dash.Team(ctx, f.team)
		if err != nil {
			return nil, err
		}
		members, err := e.dash.TeamMembers(ctx, f.team)
		if err != nil {
			return nil, err
		}
		tasks, err := collect(ctx, func(ctx context.Context, p paging.Params) (*structs.Pagination[structs.Task], error) {
			return e.dash.Tasks(ctx, &structs.TaskListParams{Params: p, TeamID: f.team})
		})
		if err != nil {
			return nil, err
		}
		return toMap(map[string]any{"team": team, "members": members, "tasks": tasks})

	case templates.TaskList:
		tasks, err := collect(ctx, func(ctx context.Context, p paging.Params) (*structs.Pagination[structs.Task], error) {
			return e.dash.Tasks(ctx, &structs.TaskListParams{Params: p, TeamID: f.team})
		})
		if err != nil {
			return nil, err
		}
		title := f.title
		if title == "" {
			title = "Lista de Tarefas"
		}
		return toMap(map[string]any{"title": title, "tasks": tasks})
	}
	return nil, fmt.Errorf("template %q needs --data", name)
}

func toMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
