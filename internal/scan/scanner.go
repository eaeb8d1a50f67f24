package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Zuo-Peng/cuedit/internal/parse"
)

type FileInfo struct {
	Path   string
	Format parse.Format
	Size   int64
}

// ScanPath returns the importable file at root, or every importable file
// below root when it is a directory. Results are sorted by path.
func ScanPath(root string) ([]FileInfo, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		format, ok := parse.FormatForPath(root)
		if !ok {
			return nil, nil
		}
		return []FileInfo{{Path: root, Format: format, Size: info.Size()}}, nil
	}

	var files []FileInfo
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		format, ok := parse.FormatForPath(path)
		if !ok {
			return nil
		}
		files = append(files, FileInfo{
			Path:   path,
			Format: format,
			Size:   info.Size(),
		})
		return nil
	})
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}
