package logging

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := Setup(path)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	log.Printf("hello from test")
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("log file = %q", data)
	}

	cleanup, err = Setup("")
	if err != nil {
		t.Fatalf("Setup(\"\") error = %v", err)
	}
	cleanup()
}

func TestSetupBadPath(t *testing.T) {
	if _, err := Setup(filepath.Join(t.TempDir(), "missing", "debug.log")); err == nil {
		t.Error("Setup() with missing directory error = nil")
	}
	log.SetOutput(os.Stderr)
}
