// Package store holds the in-memory landmark state for one collection.
package store

import (
	"sync"
	"time"

	"github.com/cephaloview/ceph-backend-go/internal/models"
)

// LandmarkStore is the mutable landmark set of one LandmarksCollection.
// Landmark IDs are unique; mutators are idempotent so retransmitted or
// out-of-order protocol messages cannot corrupt state: Add overwrites on
// id collision, Update and Remove are no-ops for unknown ids.
//
// The server-side hub drives a store from a single goroutine; the mutex
// exists for client mirrors, where session callbacks run on the read
// pump while the application reads concurrently.
type LandmarkStore struct {
	mu         sync.RWMutex
	collection models.LandmarksCollection
	landmarks  map[string]models.Landmark
}

// New creates a store seeded from a collection snapshot
func New(collection models.LandmarksCollection) *LandmarkStore {
	s := &LandmarkStore{
		collection: collection,
		landmarks:  make(map[string]models.Landmark, len(collection.Landmarks)),
	}
	for _, lm := range collection.Landmarks {
		s.landmarks[lm.ID] = lm
	}
	return s
}

// Add inserts a landmark, overwriting any existing landmark with the same ID
func (s *LandmarkStore) Add(lm models.Landmark, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.landmarks[lm.ID] = lm
	s.touch(userID)
}

// Update replaces the landmark with the same ID. Unknown IDs are a no-op.
func (s *LandmarkStore) Update(lm models.Landmark, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.landmarks[lm.ID]; !ok {
		return
	}
	s.landmarks[lm.ID] = lm
	s.touch(userID)
}

// Remove deletes the landmark with the given ID. Unknown IDs are a no-op.
func (s *LandmarkStore) Remove(id string, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.landmarks[id]; !ok {
		return
	}
	delete(s.landmarks, id)
	s.touch(userID)
}

// Get returns the landmark with the given ID
func (s *LandmarkStore) Get(id string) (models.Landmark, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lm, ok := s.landmarks[id]
	return lm, ok
}

// All returns the current landmarks; order is not significant
func (s *LandmarkStore) All() []models.Landmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Landmark, 0, len(s.landmarks))
	for _, lm := range s.landmarks {
		out = append(out, lm)
	}
	return out
}

// Len returns the number of landmarks in the store
func (s *LandmarkStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.landmarks)
}

// Snapshot returns a copy of the owning collection with the current
// landmark set materialized, suitable for sending as a baseline.
func (s *LandmarkStore) Snapshot() models.LandmarksCollection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.collection
	c.Landmarks = make([]models.Landmark, 0, len(s.landmarks))
	for _, lm := range s.landmarks {
		c.Landmarks = append(c.Landmarks, lm)
	}
	return c
}

// touch refreshes collection modification metadata; callers hold the lock
func (s *LandmarkStore) touch(userID string) {
	s.collection.UpdatedAt = time.Now().UnixMilli()
	s.collection.LastModifiedBy = userID
}
