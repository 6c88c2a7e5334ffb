package display

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

var (
	nonDigits = regexp.MustCompile(`\D`)
	cnpjShape = regexp.MustCompile(`^(\d{2})(\d{3})(\d{3})(\d{4})(\d{2})$`)
	cpfShape  = regexp.MustCompile(`^(\d{3})(\d{3})(\d{3})(\d{2})$`)
	phoneLong = regexp.MustCompile(`^(\d{2})(\d{5})(\d{4})$`)
	phoneShrt = regexp.MustCompile(`^(\d{2})(\d{4})(\d{4})$`)
	spaces    = regexp.MustCompile(`\s+`)
)

// FormatCNPJ renders 14 digits as 00.000.000/0000-00. Other inputs come back
// stripped of non-digits.
func FormatCNPJ(s string) string {
	return cnpjShape.ReplaceAllString(nonDigits.ReplaceAllString(s, ""), "$1.$2.$3/$4-$5")
}

// FormatCPF renders 11 digits as 000.000.000-00.
func FormatCPF(s string) string {
	return cpfShape.ReplaceAllString(nonDigits.ReplaceAllString(s, ""), "$1.$2.$3-$4")
}

// FormatPhone renders 10 or 11 digits as (00) 0000-0000 or (00) 00000-0000.
func FormatPhone(s string) string {
	d := nonDigits.ReplaceAllString(s, "")
	if phoneLong.MatchString(d) {
		return phoneLong.ReplaceAllString(d, "($1) $2-$3")
	}
	return phoneShrt.ReplaceAllString(d, "($1) $2-$3")
}

// StripHTML returns the text content of an HTML fragment with entities
// decoded and whitespace collapsed.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			text := strings.ReplaceAll(b.String(), "\u00a0", " ")
			return strings.TrimSpace(spaces.ReplaceAllString(text, " "))
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}

// Truncate shortens text to max runes including the suffix, "..." by default.
func Truncate(text string, max int, suffix ...string) string {
	sfx := "..."
	if len(suffix) > 0 {
		sfx = suffix[0]
	}
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	keep := max - utf8.RuneCountInString(sfx)
	if keep < 0 {
		keep = 0
	}
	return string([]rune(text)[:keep]) + sfx
}

// StripAndTruncate previews rich text as a single plain line.
func StripAndTruncate(s string, max int) string {
	return Truncate(StripHTML(s), max)
}
