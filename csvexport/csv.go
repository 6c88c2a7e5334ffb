// Package csvexport turns table rows into the dashboard's CSV format: a
// header line, ';' separators, JSON-encoded cells and CRLF line endings.
package csvexport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
)

const (
	// Separator between cells
	Separator = ";"
	// LineBreak between rows
	LineBreak = "\r\n"
	// Ext is the file extension of exports
	Ext = ".csv"
)

// ErrNoData is returned for an empty export.
var ErrNoData = errors.New("Nenhum dado para exportar")

// Row is a record keyed by column header.
type Row map[string]any

// Table is an ordered set of columns and its rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows
func (t *Table) Len() int { return len(t.Rows) }

// Add appends a row.
func (t *Table) Add(r Row) { t.Rows = append(t.Rows, r) }

// Encode renders the table. Cells are JSON-encoded, nil becomes "" and a
// column missing from a row is left empty.
func Encode(t *Table) (string, error) {
	if t == nil || len(t.Rows) == 0 {
		return "", ErrNoData
	}
	columns := t.Columns
	if len(columns) == 0 {
		return "", fmt.Errorf("csv export has no columns")
	}

	lines := make([]string, 0, len(t.Rows)+1)
	lines = append(lines, strings.Join(columns, Separator))
	cells := make([]string, len(columns))
	for i, row := range t.Rows {
		for j, col := range columns {
			v, ok := row[col]
			if !ok {
				cells[j] = ""
				continue
			}
			cell, err := encodeCell(v)
			if err != nil {
				return "", fmt.Errorf("row %d column %q: %w", i, col, err)
			}
			cells[j] = cell
		}
		lines = append(lines, strings.Join(cells, Separator))
	}
	return strings.Join(lines, LineBreak), nil
}

func encodeCell(v any) (string, error) {
	if v == nil {
		v = ""
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Filename slugs name into a file name with the .csv extension.
func Filename(name string) string {
	name = strings.TrimSuffix(strings.TrimSpace(name), Ext)
	s := slug.Make(name)
	if s == "" {
		s = "export"
	}
	return s + Ext
}

// Save writes the table to dir and returns the file path.
func Save(dir, name string, t *Table) (string, error) {
	data, err := Encode(t)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, Filename(name))
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}
