package timestamp

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{"integer seconds", "12", 12, true},
		{"fractional seconds", "12.5", 12.5, true},
		{"leading dot", ".25", 0.25, true},
		{"surrounding whitespace", "  7.1 \t", 7.1, true},
		{"minutes and seconds", "1:30", 90, true},
		{"minutes seconds fraction", "2:03.5", 123.5, true},
		{"seconds only clock group", "0:00.001", 0.001, true},
		{"large minutes", "120:00", 7200, true},
		{"rounds to milliseconds", "1.2346", 1.235, true},
		{"rounds clock form", "0:01.0004", 1.0, true},
		{"letters", "abc", 0, false},
		{"negative", "-5", 0, false},
		{"hours not accepted", "1:2:3", 0, false},
		{"trailing dot", "12.", 0, false},
		{"empty", "", 0, false},
		{"blank", "   ", 0, false},
		{"colon without seconds", "1:", 0, false},
		{"leading colon", ":30", 0, false},
		{"embedded space", "1 2", 0, false},
		{"minutes overflow", "1" + strings.Repeat("0", 307) + ":00", 0, false},
		{"seconds overflow", "1" + strings.Repeat("0", 400), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.000"},
		{12, "12.000"},
		{12.5, "12.500"},
		{0.25, "0.250"},
		{123.5, "123.500"},
	}
	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatParseIdempotent(t *testing.T) {
	inputs := []string{"12", "12.5", ".25", "1:30", "2:03.5", "1.2346", "59:59.9999"}
	for _, in := range inputs {
		first, ok := Parse(in)
		if !ok {
			t.Fatalf("Parse(%q) rejected", in)
		}
		second, ok := Parse(Format(first))
		if !ok {
			t.Fatalf("Parse(Format(%v)) rejected", first)
		}
		if first != second {
			t.Errorf("%q: reparse changed value %v -> %v", in, first, second)
		}
	}
}
