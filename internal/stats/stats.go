// Package stats computes aggregate statistics and filter views over the
// working collection. Every function is pure: collection in, value out,
// the input slice is never mutated.
package stats

import (
	"math"
	"strings"

	"watchhub/pkg/models"
)

// Wildcard matches any value in a Query field. The empty string is
// treated the same way.
const Wildcard = "all"

// Query is a conjunction of up to four filter predicates.
type Query struct {
	Search      string // case-insensitive substring of the title
	Saga        string
	Universe    string
	ContentType string
}

// Filter returns the items matching every predicate of q, in input order.
func Filter(items []models.WorkingItem, q Query) []models.WorkingItem {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]models.WorkingItem, 0, len(items))
	for _, it := range items {
		if search != "" && !strings.Contains(strings.ToLower(it.Title), search) {
			continue
		}
		if !matches(q.Saga, it.Saga) {
			continue
		}
		if !matches(q.Universe, it.Universe) {
			continue
		}
		if !matches(q.ContentType, it.ContentType) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matches(want, have string) bool {
	return want == "" || want == Wildcard || want == have
}

// Aggregate computes the summary statistics for the collection.
// Average rating only counts items with rating > 0; both ratios are 0
// when their denominator is empty.
func Aggregate(items []models.WorkingItem) models.Statistics {
	s := models.Statistics{Total: len(items)}

	ratingSum := 0
	ratedCount := 0
	for _, it := range items {
		if it.Watched {
			s.Watched++
		}
		if it.Rating > 0 {
			ratingSum += it.Rating
			ratedCount++
		}
	}
	s.Remaining = s.Total - s.Watched

	if ratedCount > 0 {
		s.AverageRating = round1(float64(ratingSum) / float64(ratedCount))
	}
	if s.Total > 0 {
		s.CompletionPercent = round1(float64(s.Watched) / float64(s.Total) * 100)
	}
	return s
}

// GroupBySaga counts items and watched items per saga, in first-seen
// catalog order. The order is deterministic so callers (and the
// favorite tie-break) can rely on it.
func GroupBySaga(items []models.WorkingItem) []models.SagaProgress {
	index := make(map[string]int)
	out := make([]models.SagaProgress, 0)

	for _, it := range items {
		i, ok := index[it.Saga]
		if !ok {
			i = len(out)
			index[it.Saga] = i
			out = append(out, models.SagaProgress{Saga: it.Saga})
		}
		out[i].Total++
		if it.Watched {
			out[i].Watched++
		}
	}
	return out
}

// FavoriteSaga returns the saga with the most watched items. Ties go to
// the saga seen first in the collection. The second return is false when
// nothing has been watched at all, which is distinct from a favorite
// that happens to have zero watched.
func FavoriteSaga(items []models.WorkingItem) (models.SagaProgress, bool) {
	var best models.SagaProgress
	found := false

	for _, sp := range GroupBySaga(items) {
		if sp.Watched > 0 && sp.Watched > best.Watched {
			best = sp
			found = true
		}
	}
	return best, found
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
