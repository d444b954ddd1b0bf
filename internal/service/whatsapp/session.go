package whatsapp

import (
	"sync"
	"time"
)

const (
	sessionMessageMemory = 32
	sessionIdleTTL       = 24 * time.Hour
)

type session struct {
	recent   []string
	lastSeen time.Time
}

// SessionManager remembers the latest message IDs of each sender so that
// webhook redeliveries from Meta are answered only once.
type SessionManager struct {
	sessions map[string]*session
	mu       sync.Mutex
	now      func() time.Time
}

// NewSessionManager creates a new session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// MarkSeen records messageID for userID. It returns false when the message was
// already recorded.
func (sm *SessionManager) MarkSeen(userID, messageID string) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	now := sm.now()
	sm.evictIdle(now)

	s, ok := sm.sessions[userID]
	if !ok {
		s = &session{}
		sm.sessions[userID] = s
	}
	s.lastSeen = now

	if messageID == "" {
		return true
	}
	for _, id := range s.recent {
		if id == messageID {
			return false
		}
	}

	s.recent = append(s.recent, messageID)
	if len(s.recent) > sessionMessageMemory {
		s.recent = s.recent[len(s.recent)-sessionMessageMemory:]
	}
	return true
}

// Len returns the number of tracked senders.
func (sm *SessionManager) Len() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return len(sm.sessions)
}

func (sm *SessionManager) evictIdle(now time.Time) {
	for userID, s := range sm.sessions {
		if now.Sub(s.lastSeen) > sessionIdleTTL {
			delete(sm.sessions, userID)
		}
	}
}
