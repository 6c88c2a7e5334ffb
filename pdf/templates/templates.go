// Package templates registers the dashboard PDF templates with pdf.Default.
// Import it for its side effects.
package templates

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/teamops/dashboard/consts"
	"github.com/teamops/dashboard/display"
	"github.com/teamops/dashboard/pdf"
)

// Template names
const (
	TaskDetails = "task-details"
	TaskList    = "task-list"
	TeamReport  = "team-report"
)

const footerText = "Gerado por " + consts.AppName

// ErrInvalidData is returned when the payload cannot be read as the
// template's input.
var ErrInvalidData = errors.New("invalid template data")

// now is swapped in tests.
var now = time.Now

func init() {
	Register(pdf.Default())
}

// Register adds every dashboard template to r.
func Register(r *pdf.Registry) {
	r.Register(TaskDetails, generateTaskDetails)
	r.Register(TaskList, generateTaskList)
	r.Register(TeamReport, generateTeamReport)
}

// decode reads a loosely typed payload into out.
func decode(data map[string]any, out any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return nil
}

// metadata fills unset options from the template defaults.
func metadata(opts pdf.Options, title, subject string) pdf.Options {
	if opts.Author == "" {
		opts.Author = consts.AppName
	}
	if opts.Title == "" {
		opts.Title = title
	}
	if opts.Subject == "" {
		opts.Subject = subject
	}
	return opts
}

func generatedAt() string {
	return "Gerado em " + display.FormatDate(now())
}

func formatSize(n int64) string {
	switch {
	case n <= 0:
		return ""
	case n < 1<<10:
		return fmt.Sprintf("%d B", n)
	case n < 1<<20:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	}
}
