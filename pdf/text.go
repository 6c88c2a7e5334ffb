package pdf

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultChunkSize is the SplitText chunk length.
const DefaultChunkSize = 1000

var (
	blankLines = regexp.MustCompile(`\n{3,}`)
	hspace     = regexp.MustCompile(`[ \t]+`)
)

// HTMLToPlainText converts rich-text markup to plain text. Paragraphs and
// headings are separated by blank lines, list items become "• " bullets and
// script or style content is dropped.
func HTMLToPlainText(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	skip := 0
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		name, _ := z.TagName()
		a := atom.Lookup(name)

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			switch a {
			case atom.Script, atom.Style:
				if tt == html.StartTagToken {
					skip++
				}
			case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
				b.WriteString("\n\n")
			case atom.Br:
				b.WriteString("\n")
			case atom.Li:
				b.WriteString("• ")
			case atom.Ul, atom.Ol:
				b.WriteString("\n")
			}
		case html.EndTagToken:
			switch a {
			case atom.Script, atom.Style:
				if skip > 0 {
					skip--
				}
			case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
				b.WriteString("\n")
			case atom.P:
				b.WriteString("\n\n")
			case atom.Li, atom.Ul, atom.Ol:
				b.WriteString("\n")
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}

	text := strings.ReplaceAll(b.String(), "\u00a0", " ")
	text = blankLines.ReplaceAllString(text, "\n\n")
	text = hspace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// SplitText breaks long text into chunks of at most max runes, on paragraph
// boundaries first and on sentence boundaries for oversized paragraphs.
// Text that fits is returned whole.
func SplitText(text string, max int) []string {
	if max <= 0 {
		max = DefaultChunkSize
	}
	if runeLen(text) <= max {
		return []string{text}
	}

	var chunks []string
	current := ""
	for _, paragraph := range strings.Split(text, "\n\n") {
		if runeLen(current)+runeLen(paragraph)+2 <= max {
			if current != "" {
				current += "\n\n"
			}
			current += paragraph
			continue
		}
		if current != "" {
			chunks = append(chunks, current)
		}
		if runeLen(paragraph) <= max {
			current = paragraph
			continue
		}

		temp := ""
		for _, sentence := range strings.Split(paragraph, ". ") {
			if runeLen(temp)+runeLen(sentence)+2 <= max {
				if temp != "" {
					temp += ". "
				}
				temp += sentence
				continue
			}
			if temp != "" {
				chunks = append(chunks, temp+".")
			}
			temp = sentence
		}
		current = temp
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

// Truncate shortens text to max runes, ending with "...".
func Truncate(text string, max int) string {
	if runeLen(text) <= max {
		return text
	}
	keep := max - 3
	if keep < 0 {
		keep = 0
	}
	return string([]rune(text)[:keep]) + "..."
}

// Capitalize upper-cases the first letter and leaves the rest untouched.
func Capitalize(text string) string {
	r, size := utf8.DecodeRuneInString(text)
	if size == 0 {
		return ""
	}
	return string(unicode.ToUpper(r)) + text[size:]
}

// FormatStatus renders IN_PROGRESS as "In Progress". Empty is "Unknown".
func FormatStatus(status string) string {
	if status == "" {
		return "Unknown"
	}
	caser := cases.Title(language.Und)
	words := strings.Split(status, "_")
	for i, w := range words {
		words[i] = caser.String(strings.ToLower(w))
	}
	return strings.Join(words, " ")
}

// FormatPriority renders HIGH as "High". Empty is "Normal".
func FormatPriority(priority string) string {
	if priority == "" {
		return "Normal"
	}
	return Capitalize(strings.ToLower(priority))
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }
