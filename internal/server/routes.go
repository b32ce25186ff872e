package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"
)

func (s *Server) handleRecordUse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key       string `json:"key"`
		Timestamp uint64 `json:"timestamp"` // optional; wall clock when zero
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.Key == "" {
		http.Error(w, `{"error":"key required"}`, http.StatusBadRequest)
		return
	}

	now := req.Timestamp
	if now == 0 {
		now = uint64(time.Now().Unix())
	}

	s.mu.Lock()
	s.store.RecordUseAt(req.Key, now)
	score := s.store.ScoreAt(req.Key, now)
	s.mu.Unlock()

	// Journal append is best-effort: a history failure never fails the use.
	if s.hist != nil {
		if err := s.hist.Append(req.Key, int64(now)); err != nil {
			log.Printf("history append %s: %v", req.Key, err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"key":    req.Key,
		"score":  score,
	})
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	n := 10
	if q := r.URL.Query().Get("n"); q != "" {
		if v, err := strconv.Atoi(q); err == nil && v > 0 {
			n = v
		}
	}

	s.mu.Lock()
	revision := s.store.Revision()
	items := s.store.RecentItems(n)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"revision": revision,
		"count":    len(items),
		"items":    items,
	})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, `{"error":"key parameter required"}`, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	score := s.store.Score(key)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"key":   key,
		"score": score,
	})
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.Key == "" {
		http.Error(w, `{"error":"key required"}`, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.store.Remove(req.Key)
	revision := s.store.Revision()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "removed",
		"key":      req.Key,
		"revision": revision,
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.store.Clear()
	revision := s.store.Revision()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "cleared",
		"revision": revision,
	})
}

func (s *Server) handleHistoryTop(w http.ResponseWriter, r *http.Request) {
	if s.hist == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"error": "history disabled"})
		return
	}

	days := 7
	if q := r.URL.Query().Get("days"); q != "" {
		if v, err := strconv.Atoi(q); err == nil && v > 0 {
			days = v
		}
	}
	limit := 10
	if q := r.URL.Query().Get("limit"); q != "" {
		if v, err := strconv.Atoi(q); err == nil && v > 0 {
			limit = v
		}
	}

	since := time.Now().Add(-time.Duration(days) * 24 * time.Hour).Unix()
	top, err := s.hist.TopSince(since, limit)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	type rowJSON struct {
		Key   string `json:"key"`
		Count int    `json:"count"`
	}
	out := make([]rowJSON, len(top))
	for i, kc := range top {
		out[i] = rowJSON{kc.Key, kc.Count}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"days":  days,
		"count": len(out),
		"top":   out,
	})
}

func (s *Server) handleHistoryRecent(w http.ResponseWriter, r *http.Request) {
	if s.hist == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"error": "history disabled"})
		return
	}

	limit := 20
	if q := r.URL.Query().Get("limit"); q != "" {
		if v, err := strconv.Atoi(q); err == nil && v > 0 {
			limit = v
		}
	}

	recent, err := s.hist.Recent(limit)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	type useJSON struct {
		Key    string `json:"key"`
		UsedAt int64  `json:"used_at"`
	}
	out := make([]useJSON, len(recent))
	for i, u := range recent {
		out[i] = useJSON{u.Key, u.UsedAt}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"count": len(out),
		"uses":  out,
	})
}
