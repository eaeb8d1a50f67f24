package search

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zuo-Peng/cuedit/internal/cue"
	"github.com/Zuo-Peng/cuedit/internal/db"
)

func seed(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.OpenDB(filepath.Join(t.TempDir(), "cuedit.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { d.Close() })

	docs := map[string][]cue.Row{
		"ep1": {{Time: 0, Text: "Hello there"}, {Time: 2.5, Text: "General Kenobi"}},
		"ep2": {{Time: 1, Text: "hello again, friend"}, {Time: 4, Text: "你好世界"}},
	}
	for name, rows := range docs {
		if err := d.SaveDocument(name, rows); err != nil {
			t.Fatal(err)
		}
	}
	return d
}

func TestSearchFTS(t *testing.T) {
	d := seed(t)

	tests := []struct {
		name    string
		opts    Options
		wantLen int
	}{
		{"matches across documents", Options{Query: "hello"}, 2},
		{"document filter", Options{Query: "hello", Document: "ep2"}, 1},
		{"multiple terms", Options{Query: "general kenobi"}, 1},
		{"punctuation is literal", Options{Query: "again,"}, 1},
		{"no match", Options{Query: "grievous"}, 0},
		{"empty query", Options{Query: "  "}, 0},
		{"limit", Options{Query: "hello", Limit: 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := Search(d, tt.opts)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(results) != tt.wantLen {
				t.Fatalf("got %d results, want %d: %+v", len(results), tt.wantLen, results)
			}
		})
	}
}

func TestSearchResultFields(t *testing.T) {
	d := seed(t)
	results, err := Search(d, Options{Query: "kenobi"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results", len(results))
	}
	r := results[0]
	if r.Document != "ep1" || r.Position != 1 || r.Time != 2.5 {
		t.Errorf("result = %+v", r)
	}
	if !strings.Contains(r.Snippet, ">>>Kenobi<<<") {
		t.Errorf("snippet = %q", r.Snippet)
	}
}

func TestSearchCJK(t *testing.T) {
	d := seed(t)
	results, err := Search(d, Options{Query: "世界"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Document != "ep2" {
		t.Fatalf("results = %+v", results)
	}
	if results[0].Snippet != "你好>>>世界<<<" {
		t.Errorf("snippet = %q", results[0].Snippet)
	}
}

func TestMakeSnippet(t *testing.T) {
	tests := []struct {
		text, query string
		ctx         int
		want        string
	}{
		{"the quick brown fox", "quick", 4, "the >>>quick<<< bro..."},
		{"abcdef", "zz", 2, "abcd..."},
		{"short", "zz", 10, "short"},
	}
	for _, tt := range tests {
		if got := makeSnippet(tt.text, tt.query, tt.ctx); got != tt.want {
			t.Errorf("makeSnippet(%q, %q) = %q, want %q", tt.text, tt.query, got, tt.want)
		}
	}
}
