package history

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryStore is the non-persistent backend for local development and
// tests. Expiry is lazy: entries past their deadline are dropped on access.
type InMemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*memSession
	now      func() time.Time
}

type memSession struct {
	entries   []Entry
	expiresAt time.Time
}

func NewInMemoryStore(ttl time.Duration) *InMemoryStore {
	return &InMemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*memSession),
		now:      time.Now,
	}
}

// withClock substitutes the time source for expiry tests.
func (s *InMemoryStore) withClock(now func() time.Time) *InMemoryStore {
	s.now = now
	return s
}

func (s *InMemoryStore) Append(ctx context.Context, sessionKey, task, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.live(sessionKey)
	if sess == nil {
		sess = &memSession{}
		s.sessions[sessionKey] = sess
	}
	sess.entries = append(sess.entries,
		Entry{Role: "user", Content: task},
		Entry{Role: "assistant", Content: answer},
	)
	sess.expiresAt = s.now().Add(s.ttl)
	return nil
}

func (s *InMemoryStore) History(ctx context.Context, sessionKey string, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.live(sessionKey)
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	var answers []string
	for _, e := range sess.entries {
		if e.Role == "assistant" {
			answers = append(answers, e.Content)
		}
	}
	if limit > 0 && len(answers) > limit {
		answers = answers[len(answers)-limit:]
	}
	return answers, nil
}

func (s *InMemoryStore) Sessions(ctx context.Context) ([]SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []SessionInfo
	for key := range s.sessions {
		sess := s.live(key)
		if sess == nil || len(sess.entries) == 0 {
			continue
		}
		info := SessionInfo{SessionKey: key}
		if sess.entries[0].Role == "user" {
			info.Task = sess.entries[0].Content
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SessionKey < out[j].SessionKey })
	return out, nil
}

func (s *InMemoryStore) Delete(ctx context.Context, sessionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live(sessionKey) == nil {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionKey)
	return nil
}

func (s *InMemoryStore) Close() error { return nil }

// live returns the session if present and unexpired, evicting it otherwise.
// Caller holds the lock.
func (s *InMemoryStore) live(key string) *memSession {
	sess, ok := s.sessions[key]
	if !ok {
		return nil
	}
	if s.now().After(sess.expiresAt) {
		delete(s.sessions, key)
		return nil
	}
	return sess
}
