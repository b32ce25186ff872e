package server

import (
	"log"
	"time"
)

// StartFlushTimer begins the debounced background save. Every interval it
// compares the store revision against the revision at the last successful
// save and writes only when something changed, so an idle server never
// rewrites the file and a burst of mutations costs one save per window.
func (s *Server) StartFlushTimer(interval time.Duration) {
	s.mu.Lock()
	s.flushedAt = s.store.Revision()
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := s.Flush(); err != nil {
					log.Printf("flush error: %v", err)
				}
			case <-s.stopCh:
				return
			}
		}
	}()
}

// Stop shuts down the background flush goroutine.
func (s *Server) Stop() {
	close(s.stopCh)
}

// Flush saves the store to disk if it changed since the last save.
// Called by the flush timer and once more on shutdown.
func (s *Server) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rev := s.store.Revision()
	if rev == s.flushedAt {
		return nil
	}
	if err := s.store.Save(); err != nil {
		return err
	}
	s.flushedAt = rev
	return nil
}
