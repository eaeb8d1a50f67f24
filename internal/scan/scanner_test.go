package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Zuo-Peng/cuedit/internal/parse"
)

func TestScanPath(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"b.vtt",
		"a.srt",
		"sub/c.yaml",
		"sub/readme.txt",
		".hidden/d.srt",
	}
	for _, f := range files {
		p := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := ScanPath(dir)
	if err != nil {
		t.Fatalf("ScanPath() error = %v", err)
	}
	want := []struct {
		rel    string
		format parse.Format
	}{
		{"a.srt", parse.FormatSRT},
		{"b.vtt", parse.FormatVTT},
		{"sub/c.yaml", parse.FormatYAML},
	}
	if len(got) != len(want) {
		t.Fatalf("ScanPath() = %+v", got)
	}
	for i, w := range want {
		if got[i].Path != filepath.Join(dir, w.rel) || got[i].Format != w.format {
			t.Errorf("file %d = %+v, want %s (%s)", i, got[i], w.rel, w.format)
		}
	}

	single, err := ScanPath(filepath.Join(dir, "a.srt"))
	if err != nil || len(single) != 1 || single[0].Size != 1 {
		t.Errorf("ScanPath(file) = %+v, %v", single, err)
	}

	none, err := ScanPath(filepath.Join(dir, "sub", "readme.txt"))
	if err != nil || len(none) != 0 {
		t.Errorf("ScanPath(txt) = %+v, %v", none, err)
	}

	if _, err := ScanPath(filepath.Join(dir, "missing")); err == nil {
		t.Error("ScanPath(missing) error = nil")
	}
}
