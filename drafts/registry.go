package drafts

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultIdleTTL is how long an untouched buffer is kept.
const DefaultIdleTTL = 12 * time.Hour

// Registry keeps one Reconciler per admin user, in memory.
type Registry struct {
	store   Store
	idleTTL time.Duration
	now     func() time.Time

	mu      sync.Mutex
	buffers map[uuid.UUID]*Reconciler
}

func NewRegistry(store Store, idleTTL time.Duration) *Registry {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Registry{
		store:   store,
		idleTTL: idleTTL,
		now:     time.Now,
		buffers: make(map[uuid.UUID]*Reconciler),
	}
}

// For returns the admin's reconciler, creating it on first use.
func (reg *Registry) For(adminID uuid.UUID) *Reconciler {
	// Evict idle buffers on each lookup
	reg.Cleanup()

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if r, ok := reg.buffers[adminID]; ok {
		return r
	}
	r := NewReconciler(reg.store)
	r.now = reg.now
	r.lastActive = reg.now()
	reg.buffers[adminID] = r
	return r
}

// Get returns the admin's reconciler without creating one.
func (reg *Registry) Get(adminID uuid.UUID) (*Reconciler, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	r, ok := reg.buffers[adminID]
	return r, ok
}

// Forget drops any pending edit for a business from every admin's buffer.
func (reg *Registry) Forget(businessID uuid.UUID) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	for _, r := range reg.buffers {
		r.Drop(businessID)
	}
}

// Cleanup removes buffers idle for longer than the TTL and returns how many were removed.
// Unsaved edits in an evicted buffer are lost.
func (reg *Registry) Cleanup() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	cutoff := reg.now().Add(-reg.idleTTL)
	removed := 0
	for adminID, r := range reg.buffers {
		if !r.idleSince(cutoff) {
			continue
		}
		if n := r.Len(); n > 0 {
			logrus.WithFields(logrus.Fields{
				"admin_id": adminID,
				"pending":  n,
			}).Warn("Discarding idle pending edits")
		}
		delete(reg.buffers, adminID)
		removed++
	}
	return removed
}
