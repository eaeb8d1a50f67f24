package parse

import "github.com/Zuo-Peng/cuedit/internal/cue"

type Format string

const (
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
	FormatYAML Format = "yaml"
)

// Document is a cue list read from a file.
type Document struct {
	Name   string // file base name without extension
	Format Format
	Path   string
	Rows   []cue.Row
}
