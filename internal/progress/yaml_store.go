package progress

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// YAMLStore keeps one YAML file per user under a directory.
// Each mutation reads, applies and atomically rewrites the file while holding the user's lock.
type YAMLStore struct {
	aggregateStore

	directory string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewYAMLStore creates a YAMLStore rooted at directory, creating it when missing.
func NewYAMLStore(directory string) (*YAMLStore, error) {
	if err := os.MkdirAll(directory, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s)> %w", directory, err)
	}
	s := &YAMLStore{
		directory: directory,
		locks:     make(map[string]*sync.Mutex),
	}
	s.aggregateStore = newAggregateStore(s)
	return s, nil
}

func (s *YAMLStore) lock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

func (s *YAMLStore) path(userID string) string {
	return filepath.Join(s.directory, url.PathEscape(userID)+".yml")
}

func (s *YAMLStore) view(_ context.Context, userID string, fn func(*userAggregate) error) error {
	l := s.lock(userID)
	l.Lock()
	defer l.Unlock()

	agg, err := s.load(userID)
	if err != nil {
		return err
	}
	return fn(agg)
}

func (s *YAMLStore) update(_ context.Context, userID string, fn func(*userAggregate) error) error {
	l := s.lock(userID)
	l.Lock()
	defer l.Unlock()

	agg, err := s.load(userID)
	if err != nil {
		return err
	}
	if err := fn(agg); err != nil {
		return err
	}
	return s.save(agg)
}

func (s *YAMLStore) load(userID string) (*userAggregate, error) {
	path := s.path(userID)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return newUserAggregate(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s)> %w", path, err)
	}

	var p UserProgress
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s)> %w", path, err)
	}
	p.UserID = userID
	return aggregateFromSnapshot(p), nil
}

func (s *YAMLStore) save(agg *userAggregate) error {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(agg.snapshot()); err != nil {
		return fmt.Errorf("encode progress of %s: %w", agg.userID, err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encode progress of %s: %w", agg.userID, err)
	}

	path := s.path(agg.userID)
	if err := renameio.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("renameio.WriteFile(%s)> %w", path, err)
	}
	return nil
}
