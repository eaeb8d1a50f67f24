package logging

import (
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
)

// Setup routes the standard logger to filename. With an empty filename all
// log output is discarded. The returned cleanup closes the log file.
func Setup(filename string) (cleanup func(), err error) {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if filename == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	// LogToFile points the standard logger at the file as well
	f, err := tea.LogToFile(filename, "debug")
	if err != nil {
		return nil, err
	}
	return func() { f.Close() }, nil
}
