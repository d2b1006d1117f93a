package tracker

import (
	"log"
	"sync"

	"watchhub/pkg/models"
)

// Service owns the in-memory working collection. Every mutation goes
// through Update, which replaces the collection wholesale and persists
// the new overlay before returning (write-through, last write wins).
type Service struct {
	mu    sync.Mutex
	store Store
	items []models.WorkingItem
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Load merges the catalog with whatever overlay the store holds.
// Unreadable or malformed stored state is treated as an absent overlay:
// the catalog defaults are used and the problem is logged, never fatal.
func (s *Service) Load(catalog []models.CatalogItem) {
	var overlay map[string]Patch

	raw, ok, err := s.store.Get(StateKey)
	if err != nil {
		log.Printf("[tracker] read state failed, starting from defaults: %v", err)
	} else if ok {
		overlay, err = DecodeOverlay(raw)
		if err != nil {
			log.Printf("[tracker] stored state unparseable, starting from defaults: %v", err)
			overlay = nil
		}
	}

	merged := Merge(catalog, overlay)

	s.mu.Lock()
	s.items = merged
	s.mu.Unlock()
}

// Snapshot returns a copy of the working collection.
func (s *Service) Snapshot() []models.WorkingItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.WorkingItem, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns one item by id.
func (s *Service) Get(id string) (models.WorkingItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return models.WorkingItem{}, false
}

// Update applies a patch to the item with the given id and persists the
// resulting overlay. Returns the updated item, whether the id existed,
// and any persistence error.
func (s *Service) Update(id string, p Patch) (models.WorkingItem, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Apply(s.items, id, p)

	var updated models.WorkingItem
	found := false
	for _, it := range next {
		if it.ID == id {
			updated = it
			found = true
			break
		}
	}
	if !found {
		return models.WorkingItem{}, false, nil
	}

	if err := Persist(s.store, next); err != nil {
		return models.WorkingItem{}, true, err
	}

	s.items = next
	return updated, true, nil
}
