package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketInteractions = []byte("interactions")
	bucketSettings     = []byte("settings")
)

// Keys within buckets
const (
	keyLiked      = "liked"
	keySaved      = "saved"
	keyPending    = "pending"
	keyOnboarding = "onboarding_done"
	keyVisitorID  = "visitor_id"
)

// VisitorStore persists per-visitor state (liked/saved/pending id
// sets, onboarding flag, visitor identity) using BoltDB.
//
// Reads are defensive: a missing or malformed value is treated as the
// empty default, never surfaced as an error.
type VisitorStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewVisitorStore opens (or creates) the store under dataDir. An empty
// dataDir yields a memory-only store with no persistence.
func NewVisitorStore(dataDir string) (*VisitorStore, error) {
	if dataDir == "" {
		// Memory-only mode (no persistence)
		return &VisitorStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "prompts.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketInteractions, bucketSettings} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &VisitorStore{db: db, cache: make(map[string][]byte)}, nil
}

func (s *VisitorStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *VisitorStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *VisitorStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	// Update memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	// Write to BoltDB
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

// === Interaction sets ===

func (s *VisitorStore) LikedIDs() []string {
	var ids []string
	if !s.get(bucketInteractions, keyLiked, &ids) {
		return nil
	}
	return ids
}

func (s *VisitorStore) SaveLikedIDs(ids []string) error {
	return s.set(bucketInteractions, keyLiked, ids)
}

func (s *VisitorStore) SavedIDs() []string {
	var ids []string
	if !s.get(bucketInteractions, keySaved, &ids) {
		return nil
	}
	return ids
}

func (s *VisitorStore) SaveSavedIDs(ids []string) error {
	return s.set(bucketInteractions, keySaved, ids)
}

func (s *VisitorStore) PendingIDs() []string {
	var ids []string
	if !s.get(bucketInteractions, keyPending, &ids) {
		return nil
	}
	return ids
}

func (s *VisitorStore) SavePendingIDs(ids []string) error {
	return s.set(bucketInteractions, keyPending, ids)
}

// === Settings ===

func (s *VisitorStore) OnboardingDone() bool {
	var done bool
	if !s.get(bucketSettings, keyOnboarding, &done) {
		return false
	}
	return done
}

func (s *VisitorStore) SetOnboardingDone() error {
	return s.set(bucketSettings, keyOnboarding, true)
}

// VisitorID returns the persistent visitor identifier, generating and
// persisting a fresh v4 UUID on first call.
func (s *VisitorStore) VisitorID() (string, error) {
	var id string
	if s.get(bucketSettings, keyVisitorID, &id) && id != "" {
		return id, nil
	}

	id = uuid.NewString()
	if err := s.set(bucketSettings, keyVisitorID, id); err != nil {
		return "", fmt.Errorf("failed to persist visitor id: %w", err)
	}
	return id, nil
}
