// Package yamlfile persists the account directory as a single YAML file with
// one top-level "users" mapping. Every operation is a full read-parse or
// serialize-write of that file; there is no incremental log.
package yamlfile

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aut-dev/aut/internal/aut/domain"
	"github.com/aut-dev/aut/internal/aut/store"
)

// Store is the flat-file driver. A single RWMutex serialises writers: Mutate
// holds the write lock across its whole load-apply-persist cycle, so two
// concurrent saves cannot interleave and lose an update. Readers only share
// the read lock.
type Store struct {
	mu   sync.RWMutex
	path string
}

var _ store.Store = (*Store)(nil)

// NewStore opens the directory file at path. The file itself is not touched
// until the first operation, so a missing file surfaces per-request as
// store.ErrUnavailable rather than at startup.
func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Load(ctx context.Context) (domain.Directory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

func (s *Store) Mutate(ctx context.Context, fn func(*domain.Directory) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir, err := s.load()
	if err != nil {
		return err
	}
	if dir.Users == nil {
		dir.Users = make(map[string]domain.User)
	}

	if err := fn(&dir); err != nil {
		return err
	}

	return s.persist(dir)
}

func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return nil
}

func (s *Store) Close() error { return nil }

// load must be called with at least the read lock held.
func (s *Store) load() (domain.Directory, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return domain.Directory{}, fmt.Errorf("%w: reading %s: %v", store.ErrUnavailable, s.path, err)
	}

	var dir domain.Directory
	if err := yaml.Unmarshal(raw, &dir); err != nil {
		return domain.Directory{}, fmt.Errorf("%w: parsing %s: %v", store.ErrUnavailable, s.path, err)
	}
	return dir, nil
}

// persist must be called with the write lock held.
func (s *Store) persist(dir domain.Directory) error {
	raw, err := yaml.Marshal(dir)
	if err != nil {
		return fmt.Errorf("%w: encoding directory: %v", store.ErrUnavailable, err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("%w: writing %s: %v", store.ErrUnavailable, s.path, err)
	}
	return nil
}
