package frecency

import (
	"math"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return WithPath(filepath.Join(t.TempDir(), "frecency.json"))
}

func TestRecordUseAt(t *testing.T) {
	s := testStore(t)
	now := uint64(1700000000)

	s.RecordUseAt("/bin/deploy.sh", now)

	e, ok := s.Entry("/bin/deploy.sh")
	if !ok {
		t.Fatal("expected entry after RecordUseAt")
	}
	if e.Count != 1 || e.LastUsed != now || e.Score != 1.0 {
		t.Errorf("entry = %+v, want count 1, last_used %d, score 1.0", e, now)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestScoreAbsentKey(t *testing.T) {
	s := testStore(t)
	if got := s.ScoreAt("/never/used", 1700000000); got != 0.0 {
		t.Errorf("score for absent key = %v, want 0.0", got)
	}
}

func TestRecentItemsRanking(t *testing.T) {
	s := testStore(t)
	now := uint64(1700000000)

	// "hot" used three times recently, "warm" once recently,
	// "cold" many times a year ago.
	for _, ts := range []uint64{now - 3*day, now - 2*day, now - day} {
		s.RecordUseAt("hot", ts)
	}
	s.RecordUseAt("warm", now-day)
	for i := uint64(0); i < 50; i++ {
		s.RecordUseAt("cold", now-400*day+i)
	}

	items := s.RecentItemsAt(3, now)
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	if items[0].Key != "hot" || items[1].Key != "warm" || items[2].Key != "cold" {
		t.Errorf("order = %s, %s, %s; want hot, warm, cold", items[0].Key, items[1].Key, items[2].Key)
	}
	for i := 1; i < len(items); i++ {
		if items[i].Score > items[i-1].Score {
			t.Errorf("scores not descending: %v > %v", items[i].Score, items[i-1].Score)
		}
	}
}

func TestRecentItemsTieBreakRecency(t *testing.T) {
	s := testStore(t)
	now := uint64(1700000000)

	// Zero banked scores stay exactly equal under decay, leaving only
	// last_used to separate the two.
	s.entries["older"] = Entry{Count: 1, LastUsed: now, Score: 0.0}
	s.entries["newer"] = Entry{Count: 1, LastUsed: now + 50, Score: 0.0}

	items := s.RecentItemsAt(2, now+100)
	if items[0].Key != "newer" {
		t.Errorf("top = %s, want newer (more recent wins on score tie)", items[0].Key)
	}
	if items[1].Key != "older" {
		t.Errorf("second = %s, want older", items[1].Key)
	}
}

func TestRecentItemsTieBreakKey(t *testing.T) {
	s := testStore(t)
	now := uint64(1700000000)

	// Identical score and last_used: lexicographically smaller key first.
	s.entries["zzz"] = Entry{Count: 1, LastUsed: now, Score: 1.0}
	s.entries["aaa"] = Entry{Count: 1, LastUsed: now, Score: 1.0}
	s.entries["mmm"] = Entry{Count: 1, LastUsed: now, Score: 1.0}

	items := s.RecentItemsAt(3, now)
	want := []string{"aaa", "mmm", "zzz"}
	for i, w := range want {
		if items[i].Key != w {
			t.Errorf("items[%d] = %s, want %s", i, items[i].Key, w)
		}
	}
}

func TestRecentItemsDeterministic(t *testing.T) {
	s := testStore(t)
	now := uint64(1700000000)
	keys := []string{"echo", "delta", "alpha", "charlie", "bravo"}
	for _, k := range keys {
		s.entries[k] = Entry{Count: 1, LastUsed: now, Score: 1.0}
	}

	first := s.RecentItemsAt(5, now)
	for run := 0; run < 20; run++ {
		again := s.RecentItemsAt(5, now)
		for i := range first {
			if again[i] != first[i] {
				t.Fatalf("run %d: items[%d] = %+v, want %+v", run, i, again[i], first[i])
			}
		}
	}
}

func TestRecentItemsTruncation(t *testing.T) {
	s := testStore(t)
	now := uint64(1700000000)
	s.RecordUseAt("a", now)
	s.RecordUseAt("b", now)

	if got := len(s.RecentItemsAt(1, now)); got != 1 {
		t.Errorf("n=1 returned %d items", got)
	}
	if got := len(s.RecentItemsAt(10, now)); got != 2 {
		t.Errorf("n=10 returned %d items, want 2", got)
	}
	if got := len(s.RecentItemsAt(0, now)); got != 0 {
		t.Errorf("n=0 returned %d items", got)
	}
}

func TestRevisionMonotonic(t *testing.T) {
	s := testStore(t)

	rev := s.Revision()
	bump := func(op string, f func()) {
		t.Helper()
		f()
		if s.Revision() <= rev {
			t.Errorf("%s: revision %d did not increase past %d", op, s.Revision(), rev)
		}
		rev = s.Revision()
	}

	bump("RecordUseAt", func() { s.RecordUseAt("a", 1700000000) })
	bump("Remove existing", func() { s.Remove("a") })
	bump("Remove missing", func() { s.Remove("never-there") })
	bump("SetHalfLifeDays", func() { s.SetHalfLifeDays(14) })
	bump("Clear", func() { s.Clear() })

	// Pure reads leave the revision alone.
	s.RecordUseAt("b", 1700000000)
	rev = s.Revision()
	s.ScoreAt("b", 1700000001)
	s.RecentItemsAt(5, 1700000001)
	s.Len()
	s.HalfLifeDays()
	if s.Revision() != rev {
		t.Errorf("reads changed revision: %d != %d", s.Revision(), rev)
	}
}

func TestSetHalfLifeDays(t *testing.T) {
	s := testStore(t)
	now := uint64(1700000000)
	s.entries["k"] = Entry{Count: 1, LastUsed: now - 14*day, Score: 4.0}

	s.SetHalfLifeDays(14)
	if !almostEqual(s.ScoreAt("k", now), 2.0) {
		t.Errorf("score with 14d half-life = %v, want 2.0", s.ScoreAt("k", now))
	}

	// Non-positive values are ignored and do not bump the revision.
	rev := s.Revision()
	s.SetHalfLifeDays(0)
	s.SetHalfLifeDays(-3)
	if s.HalfLifeDays() != 14 {
		t.Errorf("half-life = %v, want 14 after invalid sets", s.HalfLifeDays())
	}
	if s.Revision() != rev {
		t.Errorf("invalid SetHalfLifeDays bumped revision")
	}
}

func TestClear(t *testing.T) {
	s := testStore(t)
	s.RecordUseAt("a", 1700000000)
	s.RecordUseAt("b", 1700000001)

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", s.Len())
	}
	if got := s.ScoreAt("a", 1700000002); got != 0.0 {
		t.Errorf("score after Clear = %v, want 0.0", got)
	}
}

func TestEndToEndScenario(t *testing.T) {
	s := testStore(t)
	t0 := uint64(1700000000)

	s.RecordUseAt("a", t0)
	s.RecordUseAt("a", t0+1)
	s.RecordUseAt("a", t0+2)

	e, ok := s.Entry("a")
	if !ok {
		t.Fatal("expected entry for a")
	}
	if e.Count != 3 {
		t.Errorf("count = %d, want 3", e.Count)
	}
	if e.LastUsed != t0+2 {
		t.Errorf("last_used = %d, want %d", e.LastUsed, t0+2)
	}

	// Repeated application of the update rule with one second of decay
	// between uses: ((1*d + 1)*d + 1) with d = 0.5^(1/(7*86400)).
	d := math.Pow(0.5, 1.0/(7*secondsPerDay))
	want := (1.0*d+1.0)*d + 1.0
	if !almostEqual(e.Score, want) {
		t.Errorf("score = %v, want %v", e.Score, want)
	}

	items := s.RecentItemsAt(1, t0+2)
	if len(items) != 1 || items[0].Key != "a" {
		t.Fatalf("RecentItems = %+v, want single item a", items)
	}
	if !almostEqual(items[0].Score, want) {
		t.Errorf("ranked score = %v, want %v", items[0].Score, want)
	}
}
