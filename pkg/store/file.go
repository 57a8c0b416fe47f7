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
	"time"
)

// FileStore is a file-based store for CLI usage.
// Clouds are stored as JSON files in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based store.
// If baseDir is empty, defaults to ~/.config/wordcloud/clouds/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "wordcloud", "clouds")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create cloud dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) cloudPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

// validID rejects IDs that would escape the base directory.
func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\`) && id != "." && id != ".."
}

func (s *FileStore) Get(ctx context.Context, id string) (*Cloud, error) {
	if !validID(id) {
		return nil, ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.cloudPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read cloud file: %w", err)
	}

	var cloud Cloud
	if err := json.Unmarshal(data, &cloud); err != nil {
		return nil, fmt.Errorf("parse cloud: %w", err)
	}
	return &cloud, nil
}

func (s *FileStore) List(ctx context.Context) ([]*Cloud, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read cloud dir: %w", err)
	}

	var clouds []*Cloud
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		var cloud Cloud
		if err := json.Unmarshal(data, &cloud); err != nil {
			continue
		}
		clouds = append(clouds, &cloud)
	}

	slices.SortFunc(clouds, func(a, b *Cloud) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return clouds, nil
}

func (s *FileStore) Put(ctx context.Context, cloud *Cloud) error {
	if !validID(cloud.ID) {
		return ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cloud.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(cloud, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cloud: %w", err)
	}

	if err := os.WriteFile(s.cloudPath(cloud.ID), data, 0600); err != nil {
		return fmt.Errorf("write cloud file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.cloudPath(id))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("remove cloud file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for cloud files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
