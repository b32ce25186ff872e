// Package frecency implements a decay-based usage ranking store.
//
// Each tracked key carries a banked score: the decayed-and-incremented
// value as of its last use. Decay is lazy — nothing sweeps entries in
// the background; the banked score is decayed forward to "now" whenever
// it is read or compared. A use decays the old score to the present and
// adds 1.0, so heavy use in the distant past fades at the same rate as
// any other stale entry and cannot crowd out recently used keys.
package frecency

import "math"

const secondsPerDay = 86400

// Entry is the per-key frecency record.
// Score is the banked value as of LastUsed, not a live value; decay it
// with ScoreAt before comparing or displaying.
type Entry struct {
	Count    uint64  `json:"count"`
	LastUsed uint64  `json:"last_used"`
	Score    float64 `json:"score"`
}

// ScoreAt returns the entry's live score at the given time.
// Elapsed time saturates at zero, so an entry banked "in the future"
// (injected test clocks) is returned undecayed rather than inflated.
func ScoreAt(e Entry, now uint64, halfLifeDays float64) float64 {
	if now <= e.LastUsed {
		return e.Score
	}
	elapsed := float64(now - e.LastUsed)
	halfLife := halfLifeDays * secondsPerDay
	return e.Score * math.Pow(0.5, elapsed/halfLife)
}

// RecordUse banks one use at the given time: the old score is decayed
// forward to now, incremented by 1.0, and the count and timestamp advance.
func (e *Entry) RecordUse(now uint64, halfLifeDays float64) {
	e.Score = ScoreAt(*e, now, halfLifeDays) + 1.0
	e.Count++
	e.LastUsed = now
}
