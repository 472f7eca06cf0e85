package memory

import (
	"context"
	"sync"

	"github.com/shopflow/checkout/internal/checkout/ports"
)

var _ ports.AuditLog = (*AuditLog)(nil)

// AuditLog keeps inventory audit entries in memory, in arrival order.
type AuditLog struct {
	mu      sync.RWMutex
	entries []ports.AuditEntry
}

// NewAuditLog constructs an empty audit log.
func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

// Record appends one audit entry.
func (l *AuditLog) Record(_ context.Context, entry ports.AuditEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	return nil
}

// Entries returns a copy of all recorded entries.
func (l *AuditLog) Entries(_ context.Context) ([]ports.AuditEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entries := make([]ports.AuditEntry, len(l.entries))
	copy(entries, l.entries)
	return entries, nil
}
