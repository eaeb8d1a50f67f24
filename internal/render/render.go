package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Zuo-Peng/cuedit/internal/cue"
	"github.com/Zuo-Peng/cuedit/internal/timestamp"
	"github.com/mattn/go-runewidth"
)

const (
	colorReset   = "\033[0m"
	colorTime    = "\033[1;34m" // bold blue
	colorDim     = "\033[2m"
	colorHit     = "\033[43m"   // yellow background
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
)

type Options struct {
	Width int    // wrap width (0 = no wrap)
	Query string // keywords to highlight
	Hit   int    // position to mark, -1 for none
	Color bool   // emit ANSI escapes
}

// highlightKeywords wraps case-insensitive matches of query terms in bold red ANSI codes.
func highlightKeywords(text, query string) string {
	if query == "" {
		return text
	}
	for _, term := range strings.Fields(query) {
		lower := strings.ToLower(term)
		i := 0
		for i < len(text) {
			lowerText := strings.ToLower(text[i:])
			if len(lowerText) != len(text[i:]) {
				break // case folding changed byte lengths; offsets would be wrong
			}
			idx := strings.Index(lowerText, lower)
			if idx < 0 {
				break
			}
			pos := i + idx
			orig := text[pos : pos+len(term)]
			replacement := colorBoldRed + orig + colorReset
			text = text[:pos] + replacement + text[pos+len(term):]
			i = pos + len(replacement)
		}
	}
	return text
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// RenderDocument renders rows as a two-column listing and returns the content
// and the 0-based line of the hit row (-1 if none).
func RenderDocument(name string, rows []cue.Row, opts Options) (string, int) {
	paint := func(color, s string) string {
		if !opts.Color {
			return s
		}
		return color + s + colorReset
	}

	timeW := len("0.000")
	for _, r := range rows {
		timeW = max(timeW, len(timestamp.Format(r.Time)))
	}
	textW := 0
	if opts.Width > 0 {
		textW = max(opts.Width-timeW-3, 10)
	}

	var b strings.Builder
	hitLine := -1
	lineCount := 0
	writeLine := func(s string) {
		b.WriteString(s)
		b.WriteString("\n")
		lineCount++
	}

	writeLine(paint(colorDim, fmt.Sprintf("--- %s (%d cues) ---", name, len(rows))))
	if len(rows) == 0 {
		writeLine(paint(colorDim, "(empty document)"))
		return b.String(), hitLine
	}

	indent := strings.Repeat(" ", timeW+3)
	for i, r := range rows {
		ts := fmt.Sprintf("%*s", timeW, timestamp.Format(r.Time))
		text := strings.ReplaceAll(r.Text, "\n", " ")
		if opts.Color {
			text = highlightKeywords(text, opts.Query)
		}
		lines := wrapLine(text, textW)

		if i == opts.Hit {
			hitLine = lineCount
			writeLine(paint(colorHit, ">> "+ts) + " " + lines[0])
		} else {
			writeLine("   " + paint(colorTime, ts) + " " + lines[0])
		}
		for _, l := range lines[1:] {
			writeLine(indent + " " + l)
		}
	}

	return b.String(), hitLine
}
