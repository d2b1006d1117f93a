// Package tracker reconciles the immutable catalog with the user's
// persisted progress overlay and owns every write to durable state.
package tracker

import (
	"encoding/json"
	"fmt"

	"watchhub/pkg/models"
)

// Patch is a partial change to one item's mutable fields. Nil fields are
// left untouched, both when applying an edit and when replaying a stored
// overlay record over the catalog defaults.
type Patch struct {
	Watched       *bool   `json:"watched,omitempty"`
	Rating        *int    `json:"rating,omitempty"`
	Comment       *string `json:"comment,omitempty"`
	ScheduledDate *string `json:"scheduled_date,omitempty"`
}

// Merge combines the catalog with the overlay into the working
// collection, preserving catalog order. Items without an overlay entry
// keep the catalog's seed values; overlay entries for ids not in the
// catalog are ignored (stale keys from removed items are tolerated).
func Merge(catalog []models.CatalogItem, overlay map[string]Patch) []models.WorkingItem {
	out := make([]models.WorkingItem, 0, len(catalog))
	for _, ci := range catalog {
		item := models.WorkingItem{
			ID:            ci.ID,
			Title:         ci.Title,
			Saga:          ci.Saga,
			Synopsis:      ci.Synopsis,
			ImageURL:      ci.ImageURL,
			ContentType:   ci.ContentType,
			Universe:      ci.Universe,
			Rating:        ci.Rating,
			Comment:       ci.Comment,
			ScheduledDate: ci.ScheduledDate,
			Watched:       ci.Watched,
		}
		if p, ok := overlay[ci.ID]; ok {
			applyPatch(&item, p)
		}
		out = append(out, item)
	}
	return out
}

// Apply returns a new collection with the patch applied to the item
// matching id. An unknown id is a defined no-op: the input collection is
// returned unchanged.
func Apply(items []models.WorkingItem, id string, p Patch) []models.WorkingItem {
	found := false
	for i := range items {
		if items[i].ID == id {
			found = true
			break
		}
	}
	if !found {
		return items
	}

	out := make([]models.WorkingItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID == id {
			applyPatch(&out[i], p)
			break
		}
	}
	return out
}

func applyPatch(item *models.WorkingItem, p Patch) {
	if p.Watched != nil {
		item.Watched = *p.Watched
	}
	if p.Rating != nil {
		item.Rating = clampRating(*p.Rating)
	}
	if p.Comment != nil {
		item.Comment = *p.Comment
	}
	if p.ScheduledDate != nil {
		item.ScheduledDate = *p.ScheduledDate
	}
}

func clampRating(r int) int {
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}

// Project extracts every item's mutable fields into a fresh overlay
// snapshot. Persisting this replaces the stored overlay wholesale, so a
// successful persist is the single source of truth going forward.
func Project(items []models.WorkingItem) map[string]models.ProgressRecord {
	out := make(map[string]models.ProgressRecord, len(items))
	for _, it := range items {
		out[it.ID] = models.ProgressRecord{
			Watched:       it.Watched,
			Rating:        it.Rating,
			Comment:       it.Comment,
			ScheduledDate: it.ScheduledDate,
		}
	}
	return out
}

// Persist writes the projection of items into the store under StateKey.
func Persist(store Store, items []models.WorkingItem) error {
	b, err := json.Marshal(Project(items))
	if err != nil {
		return fmt.Errorf("marshal overlay: %w", err)
	}
	if err := store.Set(StateKey, string(b)); err != nil {
		return fmt.Errorf("persist overlay: %w", err)
	}
	return nil
}

// DecodeOverlay parses a stored overlay snapshot. Records decode into
// patches so a snapshot with missing fields still applies field by field.
func DecodeOverlay(raw string) (map[string]Patch, error) {
	var overlay map[string]Patch
	if err := json.Unmarshal([]byte(raw), &overlay); err != nil {
		return nil, fmt.Errorf("decode overlay: %w", err)
	}
	return overlay, nil
}
