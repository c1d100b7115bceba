package suggestions

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"carta/internal/errx"
	"carta/internal/selection"
	"carta/internal/util"
)

const fileExt = ".txt"

// FileStore keeps one "<name>.txt" file per suggestion holding the sorted,
// comma-separated ids.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(name string) (string, error) {
	clean := util.SanitizeName(name)
	if clean == "" {
		return "", errx.MissingInput("suggestion name %q has no usable characters", name)
	}
	return filepath.Join(s.dir, clean+fileExt), nil
}

func (s *FileStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	out := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), fileExt) {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	sort.Strings(out)
	return out, nil
}

func (s *FileStore) Read(_ context.Context, name string) (selection.Set, bool, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, false, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return selection.Set{}, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return selection.ParseSet(string(b)), true, nil
}

// Write replaces the file through a temp file and rename so readers never see
// a partial list.
func (s *FileStore) Write(_ context.Context, name string, ids selection.Set) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".suggestion-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.WriteString(ids.String()); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, p); err != nil {
		return fmt.Errorf("replace %s: %w", p, err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if errors.Is(err, fs.ErrNotExist) {
		return errx.NotFound("suggestion %q not found", name)
	}
	return err
}
