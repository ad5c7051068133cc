package session

import (
	"fmt"
	"log"
	"time"

	"github.com/filepilot/filepilot/internal/audit"
)

// Session identifies one run of the tool and owns its audit trail. It
// satisfies the actions.Auditor interface.
type Session struct {
	ID          string
	StartTime   time.Time
	CommandsRun int
	store       *audit.Store
}

// New opens a session backed by the given audit store. The store may be
// nil when auditing is unavailable; the session then only counts commands.
func New(store *audit.Store) *Session {
	return &Session{
		ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		StartTime: time.Now(),
		store:     store,
	}
}

// Record writes one action outcome to the audit trail.
func (s *Session) Record(action, target string, success bool, detail string) {
	s.CommandsRun++
	if s.store == nil {
		return
	}
	if err := s.store.Record(s.ID, action, target, success, detail); err != nil {
		log.Printf("warning: audit write failed: %v", err)
	}
}

// Close flushes and closes the audit store.
func (s *Session) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
