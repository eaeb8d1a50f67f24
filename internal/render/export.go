package render

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/Zuo-Peng/cuedit/internal/cue"
	"github.com/Zuo-Peng/cuedit/internal/parse"
	"gopkg.in/yaml.v3"
)

// Write encodes rows in format. Cues end where the next one starts; the last
// cue lasts tail seconds.
func Write(w io.Writer, rows []cue.Row, format parse.Format, tail float64) error {
	switch format {
	case parse.FormatSRT:
		return WriteSRT(w, rows, tail)
	case parse.FormatVTT:
		return WriteVTT(w, rows, tail)
	case parse.FormatYAML:
		return WriteYAML(w, rows)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func WriteSRT(w io.Writer, rows []cue.Row, tail float64) error {
	bw := bufio.NewWriter(w)
	for i, r := range rows {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "%d\n", i+1)
		fmt.Fprintf(bw, "%s --> %s\n", clock(r.Time, ','), clock(endTime(rows, i, tail), ','))
		fmt.Fprintln(bw, cueText(r.Text))
	}
	return bw.Flush()
}

func WriteVTT(w io.Writer, rows []cue.Row, tail float64) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "WEBVTT")
	for i, r := range rows {
		fmt.Fprintln(bw)
		fmt.Fprintf(bw, "%s --> %s\n", clock(r.Time, '.'), clock(endTime(rows, i, tail), '.'))
		fmt.Fprintln(bw, cueText(r.Text))
	}
	return bw.Flush()
}

type yamlDoc struct {
	Cues []cue.Row `yaml:"cues"`
}

func WriteYAML(w io.Writer, rows []cue.Row) error {
	if rows == nil {
		rows = []cue.Row{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlDoc{Cues: rows}); err != nil {
		return err
	}
	return enc.Close()
}

// endTime is the start of the next row, or start+tail for the last one.
func endTime(rows []cue.Row, i int, tail float64) float64 {
	if i+1 < len(rows) {
		return rows[i+1].Time
	}
	return rows[i].Time + tail
}

// clock formats seconds as HH:MM:SS<sep>mmm.
func clock(seconds float64, sep byte) string {
	ms := int64(math.Round(seconds * 1000))
	h := ms / 3_600_000
	ms %= 3_600_000
	m := ms / 60_000
	ms %= 60_000
	s := ms / 1000
	ms %= 1000
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", h, m, s, sep, ms)
}

// cueText keeps a cue body non-empty and free of blank lines, which would
// end the cue early in both formats.
func cueText(text string) string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	if text == "" {
		return " "
	}
	return text
}
