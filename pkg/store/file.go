package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/svgstack/pkg/errors"
	"github.com/matzehuels/svgstack/pkg/record"
)

// FileStore is a file-based [Store] for CLI use.
// Records are stored as JSON files named after the record.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// fileEntry is the on-disk form of a stored record.
type fileEntry struct {
	ID     string        `json:"id"`
	Record record.Record `json:"record"`
}

// NewFileStore creates a file store rooted at baseDir.
// If baseDir is empty, defaults to ~/.local/share/svgstack/records/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".local", "share", "svgstack", "records")
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create record dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) recordPath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

func (s *FileStore) read(path string) (fileEntry, error) {
	var e fileEntry
	data, err := os.ReadFile(path)
	if err != nil {
		return e, err
	}
	if err := json.Unmarshal(data, &e); err != nil {
		return e, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return e, nil
}

func (s *FileStore) Put(ctx context.Context, rec *record.Record) (string, error) {
	if err := validate(rec); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.recordPath(rec.Name)
	id := NewID()
	if old, err := s.read(path); err == nil {
		id = old.ID
	}

	data, err := json.Marshal(fileEntry{ID: id, Record: *rec})
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write record file: %w", err)
	}
	return id, nil
}

func (s *FileStore) Get(ctx context.Context, name string) (*record.Record, error) {
	if err := errors.ValidateRecordName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, err := s.read(s.recordPath(name))
	if os.IsNotExist(err) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, err
	}
	return &e.Record, nil
}

func (s *FileStore) List(ctx context.Context, tag string) ([]record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read record dir: %w", err)
	}

	var out []record.Record
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		e, err := s.read(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue // Skip unreadable files
		}
		if hasTag(e.Record, tag) {
			out = append(out, e.Record)
		}
	}
	slices.SortFunc(out, func(a, b record.Record) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateRecordName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.recordPath(name))
	if os.IsNotExist(err) {
		return notFound(name)
	}
	return err
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
