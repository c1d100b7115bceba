package render

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var imageExts = []string{".png", ".jpg", ".jpeg", ".PNG", ".JPG", ".JPEG"}

// FindImage looks for "<code>.<ext>" in dir, then for any file whose name
// starts with code.
func FindImage(dir, code string) string {
	for _, ext := range imageExts {
		p := filepath.Join(dir, code+ext)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), code) && isImage(e.Name()) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return filepath.Join(dir, names[0])
}

func isImage(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range imageExts {
		if ext == e {
			return true
		}
	}
	return false
}
