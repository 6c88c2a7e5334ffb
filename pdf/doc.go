// Package pdf renders dashboard documents through a template registry.
//
// Templates register a GenerateFunc under a name, usually from an init
// function, and callers render by name:
//
//	import _ "github.com/teamops/dashboard/pdf/templates"
//
//	out, err := pdf.Default().Generate(ctx, "task-details", data, pdf.Options{})
//
// Document wraps fpdf with the components the templates share (header,
// sections, fields, badges, tables, footer) and with page-break helpers.
package pdf
