package frecency

import (
	"sort"
	"time"
)

// DefaultHalfLifeDays governs decay speed when no override is configured.
const DefaultHalfLifeDays = 7.0

// Store maps opaque string keys to frecency entries.
//
// Not safe for concurrent use: the store expects a single logical owner,
// and callers that share one across goroutines must wrap it in their own
// mutex. All in-memory operations are pure computation — only Save and
// Load touch the filesystem.
type Store struct {
	entries      map[string]Entry
	halfLifeDays float64
	revision     uint64
	path         string
}

// RankedItem is one row of a ranked snapshot: a key and its live score.
type RankedItem struct {
	Key   string  `json:"key"`
	Score float64 `json:"score"`
}

// WithPath creates an empty store that persists to the given path.
// Call Load to populate it from an existing file.
func WithPath(path string) *Store {
	return &Store{
		entries:      make(map[string]Entry),
		halfLifeDays: DefaultHalfLifeDays,
		path:         path,
	}
}

// Path returns the persistence path the store was created with.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of tracked keys.
func (s *Store) Len() int {
	return len(s.entries)
}

// Revision returns a counter that strictly increases on every mutation.
// Callers holding derived views (sorted lists, filtered sets) compare it
// against the value seen at derivation time and rebuild only on change.
// It is not persisted; reloading from disk restarts the sequence.
func (s *Store) Revision() uint64 {
	return s.revision
}

// HalfLifeDays returns the current decay parameter.
func (s *Store) HalfLifeDays() float64 {
	return s.halfLifeDays
}

// SetHalfLifeDays updates the decay parameter. Changing it changes every
// live score, so the revision bumps. Non-positive values are ignored.
func (s *Store) SetHalfLifeDays(days float64) {
	if days <= 0 {
		return
	}
	s.halfLifeDays = days
	s.revision++
}

// RecordUse records a use of key at the current wall-clock time.
func (s *Store) RecordUse(key string) {
	s.RecordUseAt(key, uint64(time.Now().Unix()))
}

// RecordUseAt records a use of key at an explicit Unix timestamp.
// New keys start from a zero entry; existing ones decay-then-increment.
func (s *Store) RecordUseAt(key string, now uint64) {
	e := s.entries[key]
	e.RecordUse(now, s.halfLifeDays)
	s.entries[key] = e
	s.revision++
}

// Remove deletes the entry for key. The revision bumps whether or not the
// key existed: the caller asked for an invalidation and gets one.
func (s *Store) Remove(key string) {
	delete(s.entries, key)
	s.revision++
}

// Clear empties the store.
func (s *Store) Clear() {
	s.entries = make(map[string]Entry)
	s.revision++
}

// Score returns the live score for key at the current time, 0 if absent.
func (s *Store) Score(key string) float64 {
	return s.ScoreAt(key, uint64(time.Now().Unix()))
}

// ScoreAt returns the live score for key at an explicit time, 0 if absent.
func (s *Store) ScoreAt(key string, now uint64) float64 {
	e, ok := s.entries[key]
	if !ok {
		return 0.0
	}
	return ScoreAt(e, now, s.halfLifeDays)
}

// RecentItems returns the n highest-ranked keys with their live scores,
// evaluated at the current wall-clock time.
func (s *Store) RecentItems(n int) []RankedItem {
	return s.RecentItemsAt(n, uint64(time.Now().Unix()))
}

// RecentItemsAt ranks every entry at a single shared instant and returns
// the top n. Ordering is fully deterministic: live score descending, then
// last_used descending, then key ascending — never map iteration order.
func (s *Store) RecentItemsAt(n int, now uint64) []RankedItem {
	type ranked struct {
		key      string
		score    float64
		lastUsed uint64
	}

	all := make([]ranked, 0, len(s.entries))
	for key, e := range s.entries {
		all = append(all, ranked{key, ScoreAt(e, now, s.halfLifeDays), e.LastUsed})
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score > all[j].score
		}
		if all[i].lastUsed != all[j].lastUsed {
			return all[i].lastUsed > all[j].lastUsed
		}
		return all[i].key < all[j].key
	})

	if n < 0 {
		n = 0
	}
	if n > len(all) {
		n = len(all)
	}
	items := make([]RankedItem, n)
	for i := 0; i < n; i++ {
		items[i] = RankedItem{Key: all[i].key, Score: all[i].score}
	}
	return items
}

// Entry returns a copy of the raw banked entry for key.
func (s *Store) Entry(key string) (Entry, bool) {
	e, ok := s.entries[key]
	return e, ok
}
