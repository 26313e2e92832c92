package scores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// FileStore keeps every score in a single JSON array on disk.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

// NewFileStore returns a store backed by the JSON file at path.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Save appends score to the file.
func (s *FileStore) Save(ctx context.Context, score Score) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return err
	}
	all = append(all, score)
	return s.write(all)
}

// List returns every saved score. A missing file is an empty history; a
// malformed one is reset to an empty array.
func (s *FileStore) List(ctx context.Context) ([]Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Close is a no-op; the file is opened per call.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) read() ([]Score, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []Score{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}

	var all []Score
	if err := json.Unmarshal(data, &all); err != nil {
		if s.logger != nil {
			s.logger.Warn("resetting malformed score file",
				zap.String("path", s.path),
				zap.Error(err),
			)
		}
		if err := s.write([]Score{}); err != nil {
			return nil, err
		}
		return []Score{}, nil
	}
	if all == nil {
		all = []Score{}
	}
	return all, nil
}

func (s *FileStore) write(all []Score) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create score dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write scores: %w", err)
	}
	return nil
}
