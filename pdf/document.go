package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/teamops/dashboard/consts"
)

// Page geometry in points.
const (
	pagePadding  = 40.0
	pageBottom   = 60.0
	footerBottom = 30.0
	fontFamily   = "Helvetica"
	lineHeight   = 14.0
	sectionAhead = 80.0
	fieldAhead   = 30.0
	scratchDepth = 100000.0
)

// Variant selects the colors of a badge.
type Variant string

const (
	VariantPrimary   Variant = "primary"
	VariantSuccess   Variant = "success"
	VariantWarning   Variant = "warning"
	VariantDanger    Variant = "danger"
	VariantSecondary Variant = "secondary"
)

type rgb struct{ r, g, b int }

func hex(s string) rgb {
	v, _ := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	return rgb{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}
}

var (
	colorAccent = hex("#3b82f6")
	colorTitle  = hex("#1e40af")
	colorMuted  = hex("#6b7280")
	colorText   = hex("#1f2937")
	colorRule   = hex("#e5e7eb")
)

// badge colors as foreground, background
var variants = map[Variant][2]rgb{
	VariantPrimary:   {hex("#1e40af"), hex("#dbeafe")},
	VariantSuccess:   {hex("#065f46"), hex("#d1fae5")},
	VariantWarning:   {hex("#92400e"), hex("#fef3c7")},
	VariantDanger:    {hex("#991b1b"), hex("#fee2e2")},
	VariantSecondary: {hex("#4b5563"), hex("#f3f4f6")},
}

// StatusVariant picks the badge variant of a task status.
func StatusVariant(status string) Variant {
	switch status {
	case "COMPLETED", "DONE":
		return VariantSuccess
	case "IN_PROGRESS":
		return VariantPrimary
	case "CANCELLED":
		return VariantDanger
	default:
		return VariantSecondary
	}
}

// PriorityVariant picks the badge variant of a task priority.
func PriorityVariant(priority string) Variant {
	switch priority {
	case "URGENT":
		return VariantDanger
	case "HIGH":
		return VariantWarning
	case "MEDIUM":
		return VariantPrimary
	default:
		return VariantSecondary
	}
}

// Column describes a table column. Width is a fraction of the content width.
type Column struct {
	Header string
	Width  float64
}

// Document is an A4 page flow with the dashboard's visual components.
// Text is UTF-8 and is translated to the core font encoding on output.
type Document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// NewDocument starts a document with one page and the given metadata.
func NewDocument(opts Options) *Document {
	d := newDocument(fpdf.New("P", "pt", "A4", ""))
	d.pdf.SetAutoPageBreak(true, pageBottom)
	d.pdf.SetTitle(opts.Title, true)
	d.pdf.SetAuthor(opts.Author, true)
	d.pdf.SetSubject(opts.Subject, true)
	d.pdf.SetCreator(consts.AppName, true)
	d.pdf.AliasNbPages("")
	d.pdf.AddPage()
	return d
}

func newDocument(f *fpdf.Fpdf) *Document {
	f.SetMargins(pagePadding, pagePadding, pagePadding)
	f.SetFont(fontFamily, "", 11)
	return &Document{pdf: f, tr: f.UnicodeTranslatorFromDescriptor("")}
}

// Fpdf exposes the underlying document for custom drawing.
func (d *Document) Fpdf() *fpdf.Fpdf { return d.pdf }

// ContentWidth is the printable width between the side margins.
func (d *Document) ContentWidth() float64 {
	w, _ := d.pdf.GetPageSize()
	return w - 2*pagePadding
}

// Remaining is the vertical space left above the bottom margin.
func (d *Document) Remaining() float64 {
	_, h := d.pdf.GetPageSize()
	return h - pageBottom - d.pdf.GetY()
}

func (d *Document) atTop() bool {
	return d.pdf.GetY() <= pagePadding+0.01
}

// PageBreak starts a new page.
func (d *Document) PageBreak() {
	d.pdf.AddPage()
}

// MinPresenceAhead starts a new page when less than h points remain.
func (d *Document) MinPresenceAhead(h float64) {
	if !d.atTop() && d.Remaining() < h {
		d.PageBreak()
	}
}

// KeepTogether draws fn on a fresh page when a block of the given height
// does not fit on the current one. Blocks taller than a page still flow.
func (d *Document) KeepTogether(height float64, fn func(*Document)) {
	d.MinPresenceAhead(height)
	fn(d)
}

// NoBreak is KeepTogether for blocks of unknown height. The block is drawn
// once on a scratch page to measure it.
func (d *Document) NoBreak(fn func(*Document)) {
	d.KeepTogether(d.Measure(fn), fn)
}

// Measure returns the height fn would occupy.
func (d *Document) Measure(fn func(*Document)) float64 {
	w, _ := d.pdf.GetPageSize()
	scratch := newDocument(fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: w, Ht: scratchDepth},
	}))
	scratch.pdf.SetAutoPageBreak(false, 0)
	scratch.pdf.AddPage()
	fn(scratch)
	return scratch.pdf.GetY() - pagePadding
}

func (d *Document) font(style string, size float64, c rgb) {
	d.pdf.SetFont(fontFamily, style, size)
	d.pdf.SetTextColor(c.r, c.g, c.b)
}

func (d *Document) rule(width float64, c rgb) {
	y := d.pdf.GetY()
	d.pdf.SetDrawColor(c.r, c.g, c.b)
	d.pdf.SetLineWidth(width)
	d.pdf.Line(pagePadding, y, pagePadding+d.ContentWidth(), y)
}

// Header draws the document title block.
func (d *Document) Header(title, subtitle string) {
	d.font("B", 24, colorTitle)
	d.pdf.CellFormat(0, 29, d.tr(title), "", 1, "L", false, 0, "")
	if subtitle != "" {
		d.pdf.Ln(5)
		d.font("", 12, colorMuted)
		d.pdf.CellFormat(0, 15, d.tr(subtitle), "", 1, "L", false, 0, "")
	}
	d.pdf.Ln(10)
	d.rule(2, colorAccent)
	d.pdf.Ln(20)
}

// SectionTitle draws an underlined section heading.
func (d *Document) SectionTitle(title string) {
	d.MinPresenceAhead(sectionAhead)
	d.font("B", 16, colorText)
	d.pdf.CellFormat(0, 19, d.tr(title), "", 1, "L", false, 0, "")
	d.pdf.Ln(5)
	d.rule(1, colorRule)
	d.pdf.Ln(10)
}

// Section draws a titled block that may span pages.
func (d *Document) Section(title string, fn func(*Document)) {
	d.SectionTitle(title)
	fn(d)
	d.pdf.Ln(20)
}

// KeepSection draws a titled block that is never split across pages.
func (d *Document) KeepSection(title string, fn func(*Document)) {
	d.NoBreak(func(d *Document) { d.Section(title, fn) })
}

func (d *Document) label(text string) {
	d.font("B", 10, colorMuted)
	d.pdf.CellFormat(0, 12, d.tr(text), "", 1, "L", false, 0, "")
	d.pdf.Ln(3)
}

// Field draws a label over its value. Empty values print "N/A".
func (d *Document) Field(label, value string) {
	if value == "" {
		value = "N/A"
	}
	d.MinPresenceAhead(fieldAhead)
	d.label(label)
	d.font("", 11, colorText)
	d.pdf.MultiCell(0, lineHeight, d.tr(value), "", "L", false)
	d.pdf.Ln(12)
}

// BadgeField draws a label over a badge.
func (d *Document) BadgeField(label, text string, v Variant) {
	d.MinPresenceAhead(fieldAhead)
	d.label(label)
	d.Badge(text, v)
	d.pdf.Ln(12)
}

// Badge draws a filled pill sized to its text.
func (d *Document) Badge(text string, v Variant) {
	colors, ok := variants[v]
	if !ok {
		colors = variants[VariantPrimary]
	}
	fg, bg := colors[0], colors[1]
	d.font("B", 9, fg)
	s := d.tr(text)
	d.pdf.SetFillColor(bg.r, bg.g, bg.b)
	d.pdf.CellFormat(d.pdf.GetStringWidth(s)+16, 17, s, "", 1, "C", true, 0, "")
}

// Paragraph draws body text, chunked so long descriptions flow across pages.
func (d *Document) Paragraph(text string) {
	d.font("", 11, colorText)
	for i, chunk := range SplitText(text, DefaultChunkSize) {
		if i > 0 {
			d.pdf.Ln(lineHeight)
		}
		d.pdf.MultiCell(0, lineHeight, d.tr(chunk), "", "L", false)
	}
}

// Table draws a header row followed by rows that are never split. The
// header is repeated after a page break.
func (d *Document) Table(cols []Column, rows [][]string) {
	const pad = 4.0
	width := d.ContentWidth()
	widths := make([]float64, len(cols))
	for i, c := range cols {
		widths[i] = c.Width * width
	}

	header := func() {
		d.font("B", 10, colorText)
		x, y := pagePadding, d.pdf.GetY()
		for i, c := range cols {
			d.pdf.SetXY(x, y)
			d.pdf.CellFormat(widths[i], lineHeight, d.tr(c.Header), "", 0, "L", false, 0, "")
			x += widths[i]
		}
		d.pdf.SetXY(pagePadding, y+lineHeight+5)
		d.rule(2, colorAccent)
		d.pdf.Ln(5)
	}

	d.MinPresenceAhead(3 * lineHeight)
	header()

	d.font("", 10, colorText)
	for _, row := range rows {
		cells := make([][]string, len(cols))
		lines := 1
		for i := range cols {
			text := ""
			if i < len(row) {
				text = row[i]
			}
			cells[i] = d.wrap(d.tr(text), widths[i]-2*pad)
			lines = max(lines, len(cells[i]))
		}
		height := float64(lines)*12 + 2*pad

		if !d.atTop() && d.Remaining() < height {
			d.PageBreak()
			header()
			d.font("", 10, colorText)
		}

		x, y := pagePadding, d.pdf.GetY()
		for i := range cols {
			for j, line := range cells[i] {
				d.pdf.SetXY(x+pad, y+pad+float64(j)*12)
				d.pdf.CellFormat(widths[i]-2*pad, 12, line, "", 0, "L", false, 0, "")
			}
			x += widths[i]
		}
		d.pdf.SetXY(pagePadding, y+height)
		d.rule(1, colorRule)
	}
	d.pdf.Ln(10)
}

// wrap splits encoded text into lines no wider than w at the current font.
func (d *Document) wrap(s string, w float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			next := word
			if line != "" {
				next = line + " " + word
			}
			if line != "" && d.pdf.GetStringWidth(next) > w {
				lines = append(lines, line)
				next = word
			}
			line = next
		}
		lines = append(lines, line)
	}
	return lines
}

// Footer installs a footer with left text and "Page n of m" on the right.
// Pages closed before the call carry no footer.
func (d *Document) Footer(left, right string) {
	f := d.pdf
	f.SetFooterFunc(func() {
		_, h := f.GetPageSize()
		top := h - footerBottom - 21
		f.SetY(top)
		d.rule(1, colorRule)
		f.SetY(top + 10)
		d.font("", 9, colorMuted)
		page := fmt.Sprintf("Page %d of {nb}", f.PageNo())
		if right != "" {
			page = right + " | " + page
		}
		half := d.ContentWidth() / 2
		f.CellFormat(half, 11, d.tr(left), "", 0, "L", false, 0, "")
		f.CellFormat(half, 11, d.tr(page), "", 0, "R", false, 0, "")
	})
}

// Err returns the first drawing error.
func (d *Document) Err() error { return d.pdf.Error() }

// Bytes closes the document and returns its encoded form.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
