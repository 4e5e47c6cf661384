// Package session holds the working-session accumulator. State lives in an
// explicit Session object with an explicit lifecycle (created at start,
// cleared on reset, discarded at end) instead of ambient globals.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/contacto-solutions/novedades-tracker/internal/entity"
)

// Session accumulates NoveltyRecords for one operator working session.
// Insertion order is preserved and is the only ordering guarantee: no
// sorting, no deduplication. Safe for concurrent readers while the single
// processing path appends.
type Session struct {
	mu        sync.RWMutex
	id        uuid.UUID
	records   []entity.NoveltyRecord
	startedAt time.Time
	lastBatch time.Time
}

func New() *Session {
	return &Session{
		id:        uuid.New(),
		startedAt: time.Now(),
	}
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// Append adds records in order.
func (s *Session) Append(records ...entity.NoveltyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
	s.lastBatch = time.Now()
}

// Records returns a copy of the accumulated records in insertion order.
func (s *Session) Records() []entity.NoveltyRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.NoveltyRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len reports the number of accumulated records.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// LastBatchAt reports when records were last appended; zero before the
// first batch.
func (s *Session) LastBatchAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastBatch
}

// Reset clears the in-memory collection and assigns a fresh session ID. It
// never touches durable state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.id = uuid.New()
	s.startedAt = time.Now()
	s.lastBatch = time.Time{}
}
