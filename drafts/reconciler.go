// Package drafts buffers the admin's uncommitted per-business edits and replays them
// against the store on save.
package drafts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"guia-piracicaba-backend/dtos"
	"guia-piracicaba-backend/models"
	"guia-piracicaba-backend/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrSaveInProgress = errors.New("a save is already in progress")
	ErrSaveFailed     = errors.New("some pending edits could not be saved")
	ErrUnknownField   = errors.New("unknown field")
	ErrInvalidValue   = errors.New("invalid value")
)

// Store is the slice of persistence the reconciler replays edits against.
type Store interface {
	GetBusiness(ctx context.Context, id uuid.UUID) (*models.Business, error)
	UpdateBusiness(ctx context.Context, b *models.Business, omit ...string) error
}

type entry struct {
	patch Patch
	rev   uint64
}

// Reconciler holds pending edits keyed by business id, in first-edit order.
// It is safe for concurrent use; only one SaveAll runs at a time.
type Reconciler struct {
	store Store
	now   func() time.Time

	mu         sync.Mutex
	pending    map[uuid.UUID]*entry
	order      []uuid.UUID
	rev        uint64
	saving     bool
	lastActive time.Time
}

func NewReconciler(store Store) *Reconciler {
	r := &Reconciler{
		store:   store,
		now:     time.Now,
		pending: make(map[uuid.UUID]*entry),
	}
	r.lastActive = r.now()
	return r
}

// RecordEdit merges a single field edit into the pending patch for id.
func (r *Reconciler) RecordEdit(id uuid.UUID, field Field, value interface{}) error {
	p, err := patchFor(field, value)
	if err != nil {
		return err
	}
	return r.Record(id, p)
}

// Record merges p into the pending patch for id. An empty patch is a no-op.
func (r *Reconciler) Record(id uuid.UUID, p Patch) error {
	if err := p.validate(); err != nil {
		return err
	}
	if p.Empty() {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.rev++
	e, ok := r.pending[id]
	if !ok {
		e = &entry{}
		r.pending[id] = e
		r.order = append(r.order, id)
	}
	e.patch.merge(p)
	e.rev = r.rev
	r.lastActive = r.now()
	return nil
}

// EffectiveValue returns the pending override for b's field, or the stored value.
func (r *Reconciler) EffectiveValue(b models.Business, field Field) (interface{}, error) {
	eff := r.Effective(b)
	switch field {
	case FieldViews:
		return eff.Views, nil
	case FieldIsActive:
		return eff.Active(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

// Effective returns b with its pending patch applied.
func (r *Reconciler) Effective(b models.Business) models.Business {
	r.mu.Lock()
	e, ok := r.pending[b.ID]
	var p Patch
	if ok {
		p = e.patch.clone()
	}
	r.mu.Unlock()

	if ok {
		p.Apply(&b)
	}
	return b
}

// EffectiveAll overlays pending edits on a whole collection.
func (r *Reconciler) EffectiveAll(businesses []models.Business) []models.Business {
	out := make([]models.Business, len(businesses))
	for i := range businesses {
		out[i] = r.Effective(businesses[i])
	}
	return out
}

// Pending lists the buffered edits in first-edit order.
func (r *Reconciler) Pending() []dtos.DraftEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]dtos.DraftEntry, 0, len(r.order))
	for _, id := range r.order {
		p := r.pending[id].patch.clone()
		out = append(out, dtos.DraftEntry{BusinessID: id, Views: p.Views, IsActive: p.IsActive})
	}
	return out
}

func (r *Reconciler) IsDirty(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.pending[id]
	return ok
}

func (r *Reconciler) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// Discard drops every pending edit.
func (r *Reconciler) Discard() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = make(map[uuid.UUID]*entry)
	r.order = nil
	r.lastActive = r.now()
}

// Drop removes the pending edit for a single business, e.g. after it was deleted.
func (r *Reconciler) Drop(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remove(id)
}

// remove must be called with mu held.
func (r *Reconciler) remove(id uuid.UUID) {
	if _, ok := r.pending[id]; !ok {
		return
	}
	delete(r.pending, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// SaveAll replays every pending edit sequentially in first-edit order: fetch the
// stored record, apply the patch, update. A failed entry does not stop the pass.
// Entries that committed are removed unless they were edited again during the save;
// failed entries stay pending. ErrSaveFailed is returned when any entry failed.
func (r *Reconciler) SaveAll(ctx context.Context) (dtos.SaveReport, error) {
	r.mu.Lock()
	if r.saving {
		r.mu.Unlock()
		return dtos.SaveReport{}, ErrSaveInProgress
	}
	r.saving = true
	ids := append([]uuid.UUID(nil), r.order...)
	snapshot := make(map[uuid.UUID]entry, len(ids))
	for _, id := range ids {
		e := r.pending[id]
		snapshot[id] = entry{patch: e.patch.clone(), rev: e.rev}
	}
	r.lastActive = r.now()
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.saving = false
		r.lastActive = r.now()
		r.mu.Unlock()
	}()

	report := dtos.SaveReport{
		Total:     len(ids),
		FailedIDs: []uuid.UUID{},
		StartedAt: r.now(),
	}
	committed := make(map[uuid.UUID]uint64, len(ids))

	for _, id := range ids {
		snap := snapshot[id]
		if err := r.commit(ctx, id, snap.patch); err != nil {
			logrus.WithError(err).WithField("business_id", id).Warn("Failed to save pending edit")
			report.Failed++
			report.FailedIDs = append(report.FailedIDs, id)
			continue
		}
		report.Saved++
		committed[id] = snap.rev
	}

	r.mu.Lock()
	for id, rev := range committed {
		if e, ok := r.pending[id]; ok && e.rev == rev {
			r.remove(id)
		}
	}
	report.Remaining = len(r.order)
	r.mu.Unlock()

	completed := r.now()
	report.CompletedAt = &completed

	logrus.WithFields(logrus.Fields{
		"total":  report.Total,
		"saved":  report.Saved,
		"failed": report.Failed,
	}).Info("Pending edits saved")

	if report.Failed > 0 {
		return report, fmt.Errorf("%w: %d of %d failed", ErrSaveFailed, report.Failed, report.Total)
	}
	return report, nil
}

func (r *Reconciler) commit(ctx context.Context, id uuid.UUID, p Patch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := r.store.GetBusiness(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch business: %w", err)
	}
	p.Apply(b)
	var omit []string
	if p.Views == nil {
		omit = append(omit, store.ColumnViews)
	}
	if err := r.store.UpdateBusiness(ctx, b, omit...); err != nil {
		return fmt.Errorf("update business: %w", err)
	}
	return nil
}

// idleSince reports whether the buffer has been untouched since cutoff and no save is running.
func (r *Reconciler) idleSince(cutoff time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.saving && r.lastActive.Before(cutoff)
}
