package matching

import "sync"

// Session tracks which (documentKey, contactID) pairs have already produced
// a finding within one scan, so a contact named in a document's title and
// again in its body yields a single record, and concurrent completions
// cannot both pass the not-yet-seen check. Sessions are cheap; build one
// per scan run and discard it.
type Session struct {
	mu   sync.Mutex
	seen map[sessionKey]struct{}
}

type sessionKey struct {
	documentKey string
	contactID   string
}

// NewSession returns an empty dedup session.
func NewSession() *Session {
	return &Session{seen: make(map[sessionKey]struct{})}
}

// Record atomically checks and marks the pair, returning true exactly once
// per (documentKey, contactID) for the session's lifetime. Callers should
// emit a match only on true; false means the pair was already reported and
// the new finding is discarded silently.
func (s *Session) Record(documentKey, contactID string) bool {
	key := sessionKey{documentKey, contactID}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

// Seen reports whether the pair was already recorded.
func (s *Session) Seen(documentKey, contactID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[sessionKey{documentKey, contactID}]
	return ok
}

// MarkSeen records the pair without reporting the previous state.
func (s *Session) MarkSeen(documentKey, contactID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[sessionKey{documentKey, contactID}] = struct{}{}
}

// Len returns the number of recorded pairs.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
