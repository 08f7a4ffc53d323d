package group

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Scan lists the regular files directly inside dir whose extension is in
// exts (compared case-insensitively). Subdirectories are not descended.
// The result is sorted by name.
func Scan(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("group: scan %s: %w", dir, err)
	}

	allowed := make([]string, len(exts))
	for i, e := range exts {
		allowed[i] = strings.ToLower(e)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !slices.Contains(allowed, ext) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if e.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(path); err != nil || info.IsDir() {
				continue
			}
		}
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths, nil
}
