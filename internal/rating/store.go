// internal/rating/store.go
package rating

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Store is the persisted rating store: a keyed lookup/update of one numeric
// rating per (profile identity, team identity). Opened before a tournament,
// written at each rating-unit boundary, closed at tournament end.
type Store interface {
	// Load returns the persisted ratings for the given teams under the
	// profile; teams with no record are simply absent from the result.
	Load(ctx context.Context, profileID string, teams []string) (map[string]float64, error)

	// Save merges the given ratings into the store under the profile.
	Save(ctx context.Context, profileID string, ratings map[string]float64) error

	Close() error
}

// MemoryStore is an in-process Store, used for tests and throwaway runs.
type MemoryStore struct {
	mu sync.Mutex
	m  map[string]map[string]float64 // profileID -> team -> rating
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]map[string]float64)}
}

func (s *MemoryStore) Load(_ context.Context, profileID string, teams []string) (map[string]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]float64)
	for _, team := range teams {
		if r, ok := s.m[profileID][team]; ok {
			out[team] = r
		}
	}
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, profileID string, ratings map[string]float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m[profileID] == nil {
		s.m[profileID] = make(map[string]float64)
	}
	for team, r := range ratings {
		s.m[profileID][team] = r
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// FileStore persists ratings as a single JSON document on disk, keyed by
// profile then team. Writes go through a temp file + rename.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by the given JSON file; the file is
// created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) read() (map[string]map[string]float64, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return make(map[string]map[string]float64), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read rating file %s: %w", s.path, err)
	}
	db := make(map[string]map[string]float64)
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("parse rating file %s: %w", s.path, err)
	}
	return db, nil
}

func (s *FileStore) Load(_ context.Context, profileID string, teams []string) (map[string]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.read()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64)
	for _, team := range teams {
		if r, ok := db[profileID][team]; ok {
			out[team] = r
		}
	}
	return out, nil
}

func (s *FileStore) Save(_ context.Context, profileID string, ratings map[string]float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.read()
	if err != nil {
		return err
	}
	if db[profileID] == nil {
		db[profileID] = make(map[string]float64)
	}
	for team, r := range ratings {
		db[profileID][team] = r
	}
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ratings: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write rating file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace rating file %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
