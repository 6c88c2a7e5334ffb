package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/teamops/dashboard/dashboard"
	"github.com/teamops/dashboard/display"
	"github.com/teamops/dashboard/structs"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	panelStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// withEnv runs fn against a freshly wired env and closes it afterwards.
func withEnv(cmd *cobra.Command, opts *options, fn func(ctx context.Context, e *env) error) error {
	e, err := setup(opts)
	if err != nil {
		return err
	}
	defer e.close()
	return fn(cmd.Context(), e)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func renderTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("Nenhum registro encontrado"))
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
}

// field is one line of a detail panel.
type field struct {
	key   string
	value string
}

func renderPanel(w io.Writer, title string, fields []field) {
	lines := []string{titleStyle.Render(title)}
	for _, f := range fields {
		v := f.value
		if v == "" {
			v = mutedStyle.Render("N/A")
		}
		lines = append(lines, keyStyle.Render(f.key+":")+" "+v)
	}
	fmt.Fprintln(w, panelStyle.Render(strings.Join(lines, "\n")))
}

func renderBadge(b display.Badge) string {
	label := b.Label
	if b.Icon != "" {
		label = b.Icon + " " + label
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color)).Render(label)
}

func renderFooter(w io.Writer, info dashboard.PageInfo) {
	fmt.Fprintln(w, mutedStyle.Render(info.Summary+"   "+info.Window))
}

func success(w io.Writer, msg string) {
	fmt.Fprintln(w, successStyle.Render("✔ "+msg))
}

func refName(r *structs.Ref) string {
	if r == nil {
		return ""
	}
	return r.Name
}
