package binder

import (
	"context"
	"fmt"
	"sync"

	"binder-backend/internal/models"
)

type pendingDecision struct {
	StartupID string
	Direction models.Direction
}

// Outbox holds decisions whose write failed after the card was already
// dismissed. Optimistic removal is never rolled back; the outbox makes the
// loss recoverable by retrying on reconnect, and its length doubles as a
// non-blocking reconciliation indicator.
type Outbox struct {
	mu      sync.Mutex
	entries []pendingDecision
}

// NewOutbox creates an empty outbox.
func NewOutbox() *Outbox {
	return &Outbox{}
}

// Add appends an unconfirmed decision in commit order. A later decision for
// the same startup replaces the earlier one, mirroring the server's
// last-write-wins upsert.
func (o *Outbox) Add(startupID string, direction models.Direction) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i, entry := range o.entries {
		if entry.StartupID == startupID {
			o.entries = append(o.entries[:i], o.entries[i+1:]...)
			break
		}
	}
	o.entries = append(o.entries, pendingDecision{StartupID: startupID, Direction: direction})
}

// Pending returns the number of unconfirmed decisions.
func (o *Outbox) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.entries)
}

// Flush retries unconfirmed decisions in order. It stops at the first
// failure, keeping that decision and everything after it queued. Retrying a
// decision that did reach the server is harmless: the write is idempotent.
func (o *Outbox) Flush(ctx context.Context, recorder DecisionRecorder) error {
	for {
		o.mu.Lock()
		if len(o.entries) == 0 {
			o.mu.Unlock()
			return nil
		}
		entry := o.entries[0]
		o.mu.Unlock()

		if _, err := recorder.Record(ctx, entry.StartupID, entry.Direction); err != nil {
			return fmt.Errorf("failed to flush decision for startup %s: %w", entry.StartupID, err)
		}

		o.mu.Lock()
		if len(o.entries) > 0 && o.entries[0] == entry {
			o.entries = o.entries[1:]
		}
		o.mu.Unlock()
	}
}
