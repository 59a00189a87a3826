// Package artifact keeps rendered report documents on local disk.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var ErrNotFound = errors.New("artifact not found")

var namePattern = regexp.MustCompile(`^report_[1-9][0-9]*\.pdf$`)

type Store struct {
	root string
}

// NewStore creates the root directory if needed.
func NewStore(root string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("artifact root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("artifact root: %w", err)
	}
	return &Store{root: abs}, nil
}

// Name is the canonical file name of a report's document.
func Name(id uint) string {
	return "report_" + strconv.FormatUint(uint64(id), 10) + ".pdf"
}

// Save writes data as the document for id, replacing any previous render,
// and returns the artifact name.
func (s *Store) Save(id uint, data []byte) (string, error) {
	if id == 0 {
		return "", errors.New("artifact: id must be positive")
	}
	name := Name(id)
	tmp, err := os.CreateTemp(s.root, ".tmp-"+name+"-*")
	if err != nil {
		return "", fmt.Errorf("artifact temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("artifact write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("artifact write: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.root, name)); err != nil {
		return "", fmt.Errorf("artifact rename: %w", err)
	}
	return name, nil
}

// Load returns the bytes of a named artifact. Names outside the canonical
// pattern are reported as missing.
func (s *Store) Load(name string) ([]byte, error) {
	path, ok := s.resolve(name)
	if !ok {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("artifact read: %w", err)
	}
	return data, nil
}

func (s *Store) resolve(name string) (string, bool) {
	if !namePattern.MatchString(name) {
		return "", false
	}
	path := filepath.Join(s.root, name)
	rel, err := filepath.Rel(s.root, path)
	if err != nil || rel != name || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return path, true
}
