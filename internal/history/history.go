// Package history persists per-task conversation logs. Sessions are keyed by
// a digest of the task text, so re-running the same task byte-for-byte
// appends to the same session.
package history

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
)

const keyPrefix = "agent_history:"

// ErrSessionNotFound is returned when a session key has no entries.
var ErrSessionNotFound = errors.New("history: session not found")

// Entry is one persisted conversation record.
type Entry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SessionInfo identifies one known session for the index listing.
type SessionInfo struct {
	SessionKey string `json:"session_key"`
	Task       string `json:"task"`
}

// Store is an ordered, session-keyed, TTL-bound append log.
type Store interface {
	// Append pushes a user entry and an assistant entry back-to-back and
	// renews the session's expiry.
	Append(ctx context.Context, sessionKey, task, answer string) error
	// History returns up to limit of the most recent assistant entries.
	History(ctx context.Context, sessionKey string, limit int) ([]string, error)
	// Sessions lists every known session with its originating task.
	Sessions(ctx context.Context) ([]SessionInfo, error)
	// Delete removes a session. Returns ErrSessionNotFound if absent.
	Delete(ctx context.Context, sessionKey string) error
	Close() error
}

// SessionKey derives the stable session identifier for a task string.
func SessionKey(task string) string {
	sum := md5.Sum([]byte(task))
	return hex.EncodeToString(sum[:])
}

func redisKey(sessionKey string) string { return keyPrefix + sessionKey }
