// Package deadlines holds the assignment collection: persistence, seeding,
// the filtered view and the create/remove operations.
package deadlines

import (
	"encoding/json"
	"fmt"

	"github.com/chxlky/onelook/internal/models"
	"go.uber.org/zap"
)

// DefaultKey is the slot the collection is stored under.
const DefaultKey = "assignments_v1"

// KV is a key-value backend. Get returns nil, nil when the key is absent.
type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// Persister loads and saves the whole collection.
type Persister interface {
	Load() ([]models.Assignment, error)
	Save(items []models.Assignment) error
}

// Store keeps the collection as one JSON array under a fixed key.
type Store struct {
	kv  KV
	key string
}

func NewStore(kv KV, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{kv: kv, key: key}
}

func (s *Store) Key() string { return s.key }

// Load reads the collection. An absent or corrupt slot reads as empty with no error;
// only a failing backend read is returned, so callers never overwrite data they could not see.
func (s *Store) Load() ([]models.Assignment, error) {
	raw, err := s.kv.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("unable to read assignments from %q: %w", s.key, err)
	}
	if len(raw) == 0 {
		return []models.Assignment{}, nil
	}

	var items []models.Assignment
	if err := json.Unmarshal(raw, &items); err != nil {
		zap.L().Warn("Stored assignments are corrupt; starting empty", zap.String("key", s.key), zap.Error(err))
		return []models.Assignment{}, nil
	}
	if items == nil {
		return []models.Assignment{}, nil
	}
	return items, nil
}

// Save overwrites the slot with the full collection.
func (s *Store) Save(items []models.Assignment) error {
	if items == nil {
		items = []models.Assignment{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("unable to encode assignments: %w", err)
	}
	if err := s.kv.Put(s.key, data); err != nil {
		return fmt.Errorf("unable to write assignments to %q: %w", s.key, err)
	}
	return nil
}
