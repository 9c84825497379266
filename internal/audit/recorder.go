// Package audit appends immutable trail entries for every mutation.
// Recording is fire-and-forget: the primary write has already committed
// by the time an entry is enqueued, and nothing here can fail it.
package audit

import (
	"context"
	"log/slog"
	"sync"

	"clienthub/internal/models"
	"clienthub/internal/store"
)

const queueSize = 256

// Recorder consumes audit events on a background goroutine. Sink errors
// and overflow are logged and swallowed.
type Recorder struct {
	sink   store.AuditStore
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
	ch     chan models.AuditLog
	wg     sync.WaitGroup
}

func NewRecorder(sink store.AuditStore, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Recorder{
		sink:   sink,
		logger: logger,
		ch:     make(chan models.AuditLog, queueSize),
	}
	r.wg.Add(1)
	go r.consume()
	return r
}

func (r *Recorder) consume() {
	defer r.wg.Done()
	for e := range r.ch {
		entry := e
		if err := r.sink.AppendAudit(context.Background(), &entry); err != nil {
			r.logger.Warn("audit append failed",
				"action", e.Action, "entity", e.EntityType, "entity_id", e.EntityID, "error", err)
		}
	}
}

// Record enqueues one entry. Never blocks: if the queue is full or the
// recorder is already closed the entry is dropped with a warning.
func (r *Recorder) Record(action string, entityType models.EntityType, entityID, userName, details string) {
	e := models.AuditLog{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		UserName:   userName,
		Details:    details,
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		r.logger.Warn("audit recorder closed, entry dropped", "action", action)
		return
	}
	select {
	case r.ch <- e:
	default:
		r.logger.Warn("audit queue full, entry dropped",
			"action", action, "entity", entityType, "entity_id", entityID)
	}
}

// Close drains pending entries and stops the consumer.
func (r *Recorder) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.ch)
	}
	r.mu.Unlock()
	r.wg.Wait()
}
