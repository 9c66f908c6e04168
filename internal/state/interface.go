package state

import (
	"io"

	"github.com/effortwise/gearbox/internal/effort"
)

// EventJournal records controller events durably so reports survive
// process exit.
type EventJournal interface {
	AppendEvent(e effort.Event) error
	ListEvents(taskID string, limit int) ([]EventRecord, error)
}

// Migrator handles database schema migrations.
// Separating this allows clients to depend only on migration functionality.
type Migrator interface {
	// Migrate applies all pending schema migrations.
	Migrate() error
}

// EffortStore is the full persistence surface the CLI wires together:
// the controller's load/save port plus the event journal.
type EffortStore interface {
	io.Closer
	Migrator
	effort.Store
	EventJournal
}

// Compile-time verification that DB implements all interfaces.
var (
	_ EffortStore  = (*DB)(nil)
	_ Migrator     = (*DB)(nil)
	_ effort.Store = (*DB)(nil)
	_ EventJournal = (*DB)(nil)
)

// JournalSink adapts an EventJournal to the effort.EventSink contract.
// Journal write failures are swallowed: the journal is best-effort
// telemetry and must never affect controller correctness.
type JournalSink struct {
	Journal EventJournal
}

// Emit appends the event to the journal, ignoring failures.
func (s JournalSink) Emit(e effort.Event) {
	if s.Journal == nil {
		return
	}
	_ = s.Journal.AppendEvent(e)
}
