package index

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Zuo-Peng/cuedit/internal/db"
	"github.com/Zuo-Peng/cuedit/internal/parse"
	"github.com/Zuo-Peng/cuedit/internal/scan"
)

type Stats struct {
	Scanned  int
	Imported int
	Skipped  int
	Errors   int
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned=%d imported=%d skipped=%d errors=%d",
		s.Scanned, s.Imported, s.Skipped, s.Errors)
}

// Options controls an import run.
type Options struct {
	// Force replaces documents that already exist instead of skipping them.
	Force bool
	// Report, when set, receives one line per file.
	Report func(format string, args ...any)
}

// ImportAll stores the subtitle file at path as document name. When path is
// a directory every importable file below it is stored as name/<file name>.
func ImportAll(d *db.DB, name, path string, opts Options) (Stats, error) {
	var stats Stats
	report := opts.Report
	if report == nil {
		report = func(string, ...any) {}
	}

	info, err := os.Stat(path)
	if err != nil {
		return stats, err
	}

	files, err := scan.ScanPath(path)
	if err != nil {
		return stats, fmt.Errorf("scan: %w", err)
	}
	stats.Scanned = len(files)

	for _, fi := range files {
		doc, err := parse.ParseFile(fi.Path)
		if err != nil {
			stats.Errors++
			report("  WARN: %v", err)
			log.Printf("import: parse %s: %v", fi.Path, err)
			continue
		}

		docName := name
		if info.IsDir() {
			docName = documentName(name, path, fi.Path)
		}

		if !opts.Force {
			exists, err := hasDocument(d, docName)
			if err != nil {
				stats.Errors++
				report("  WARN: %s: %v", docName, err)
				continue
			}
			if exists {
				stats.Skipped++
				report("  skip %s: already exists (use --force to replace)", docName)
				continue
			}
		}

		if err := d.SaveDocument(docName, doc.Rows); err != nil {
			stats.Errors++
			report("  WARN: %s: %v", docName, err)
			log.Printf("import: save %s: %v", docName, err)
			continue
		}
		stats.Imported++
		report("  %s: %d cues from %s", docName, len(doc.Rows), fi.Path)
	}

	return stats, nil
}

// documentName is prefix joined with the file's path relative to root,
// without its extension, using forward slashes.
func documentName(prefix, root, file string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		rel = filepath.Base(file)
	}
	rel = rel[:len(rel)-len(filepath.Ext(rel))]
	return prefix + "/" + filepath.ToSlash(rel)
}

func hasDocument(d *db.DB, name string) (bool, error) {
	_, ok, err := d.LoadDocument(name)
	return ok, err
}
