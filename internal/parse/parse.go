package parse

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/Zuo-Peng/cuedit/internal/cue"
	"github.com/Zuo-Peng/cuedit/internal/timestamp"
	"gopkg.in/yaml.v3"
)

const maxLineSize = 1024 * 1024

// FormatForPath maps a file extension to a Format.
func FormatForPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		return FormatSRT, true
	case ".vtt":
		return FormatVTT, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

// ParseFile reads a subtitle file, choosing the parser by extension.
func ParseFile(path string) (*Document, error) {
	format, ok := FormatForPath(path)
	if !ok {
		return nil, fmt.Errorf("unsupported file extension %q (want .srt, .vtt or .yaml)", filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := Parse(f, format)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &Document{
		Name:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Format: format,
		Path:   path,
		Rows:   rows,
	}, nil
}

// Parse reads cues in the given format. The result is sorted by time.
func Parse(r io.Reader, format Format) ([]cue.Row, error) {
	var (
		rows []cue.Row
		err  error
	)
	switch format {
	case FormatSRT, FormatVTT:
		rows, err = parseCues(r, format)
	case FormatYAML:
		rows, err = parseYAML(r)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return nil, err
	}
	cue.SortRows(rows)
	return rows, nil
}

// timingRe matches the start of a cue timing line in SRT ("00:00:01,000")
// and WebVTT ("00:00:01.000" or "00:01.000").
var timingRe = regexp.MustCompile(`^(?:(\d+):)?(\d{1,2}):(\d{2})[,.](\d{3})\s+-->\s+`)

// parseCues handles SRT and WebVTT. Each cue contributes its start time and
// its text lines joined with a space. Cue numbers and identifiers are skipped.
func parseCues(r io.Reader, format Format) ([]cue.Row, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		rows    []cue.Row
		inCue   bool
		cur     cue.Row
		text    []string
		lineNum int
		skip    bool // inside a WebVTT NOTE/STYLE/REGION block
	)

	flush := func() {
		if inCue {
			cur.Text = strings.Join(text, " ")
			rows = append(rows, cur)
		}
		inCue = false
		text = text[:0]
	}

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
			if format == FormatVTT {
				if !strings.HasPrefix(line, "WEBVTT") {
					return nil, fmt.Errorf("line 1: missing WEBVTT header")
				}
				continue
			}
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			skip = false
			continue
		}
		if skip {
			continue
		}

		if m := timingRe.FindStringSubmatch(trimmed); m != nil {
			flush()
			t, err := cueSeconds(m)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			cur = cue.Row{Time: t}
			inCue = true
			continue
		}

		if inCue {
			text = append(text, trimmed)
			continue
		}

		if format == FormatVTT && isVTTBlock(trimmed) {
			skip = true
			continue
		}
		// cue number (SRT) or cue identifier (WebVTT)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	return rows, nil
}

func isVTTBlock(line string) bool {
	for _, kw := range []string{"NOTE", "STYLE", "REGION"} {
		if line == kw || strings.HasPrefix(line, kw+" ") {
			return true
		}
	}
	return false
}

func cueSeconds(m []string) (float64, error) {
	hours := 0
	if m[1] != "" {
		h, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, err
		}
		hours = h
	}
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	millis, _ := strconv.Atoi(m[4])
	if minutes > 59 || seconds > 59 {
		return 0, fmt.Errorf("invalid cue timestamp %q", strings.TrimSpace(m[0]))
	}
	ms := ((hours*60+minutes)*60+seconds)*1000 + millis
	return timestamp.Round(float64(ms) / 1000), nil
}

type yamlDoc struct {
	Cues []cue.Row `yaml:"cues"`
}

func parseYAML(r io.Reader) ([]cue.Row, error) {
	var doc yamlDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	for i, row := range doc.Cues {
		if math.IsInf(row.Time, 0) || math.IsNaN(row.Time) {
			return nil, fmt.Errorf("cue %d: time %v is not a number of seconds", i, row.Time)
		}
		if row.Time < 0 {
			return nil, fmt.Errorf("cue %d: negative time %v", i, row.Time)
		}
		doc.Cues[i].Time = timestamp.Round(row.Time)
	}
	return doc.Cues, nil
}
