package engine

import (
	"sync"

	"github.com/akeef891/Finance-Clarity/internal/intent"
)

// session is the in-memory per-user conversation state. The busy mutex
// guards ctx. Turns TryLock it so a turn that finds it held is rejected,
// not queued; a history clear takes it blocking.
type session struct {
	busy sync.Mutex
	ctx  intent.Context
}

type sessionTable struct {
	mu sync.Mutex
	m  map[int64]*session
}

func newSessionTable() *sessionTable {
	return &sessionTable{m: make(map[int64]*session)}
}

func (t *sessionTable) get(userID int64) *session {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.m[userID]
	if !ok {
		s = &session{}
		t.m[userID] = s
	}
	return s
}
