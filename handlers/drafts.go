package handlers

import (
	"errors"
	"net/http"

	"guia-piracicaba-backend/drafts"
	"guia-piracicaba-backend/dtos"
	"guia-piracicaba-backend/middleware"
	"guia-piracicaba-backend/store"
	"guia-piracicaba-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DraftHandler exposes the admin's pending edit buffer.
type DraftHandler struct {
	Store  store.Store
	Drafts *drafts.Registry
}

func (h *DraftHandler) reconciler(c *gin.Context) (*drafts.Reconciler, bool) {
	adminID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return nil, false
	}
	return h.Drafts.For(adminID), true
}

func (h *DraftHandler) ListDrafts(c *gin.Context) {
	adminID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	pending := []dtos.DraftEntry{}
	if r, exists := h.Drafts.Get(adminID); exists {
		pending = r.Pending()
	}
	c.JSON(http.StatusOK, gin.H{"pending": pending, "count": len(pending)})
}

// RecordDraft merges {views, is_active} into the pending edit for a business.
func (h *DraftHandler) RecordDraft(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req dtos.DraftEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}
	patch := drafts.Patch{Views: req.Views, IsActive: req.IsActive}
	if patch.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No editable fields provided"})
		return
	}

	h.record(c, id, func(r *drafts.Reconciler) error { return r.Record(id, patch) })
}

// RecordFieldDraft records a single field edit: PUT .../drafts/:id/fields/:field {"value": ...}.
func (h *DraftHandler) RecordFieldDraft(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	// false and 0 are valid values, so presence is checked by hand instead of binding:"required".
	var req struct {
		Value interface{} `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Value == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value is required"})
		return
	}

	field := drafts.Field(c.Param("field"))
	h.record(c, id, func(r *drafts.Reconciler) error { return r.RecordEdit(id, field, req.Value) })
}

func (h *DraftHandler) record(c *gin.Context, id uuid.UUID, apply func(*drafts.Reconciler) error) {
	r, ok := h.reconciler(c)
	if !ok {
		return
	}

	b, err := h.Store.GetBusiness(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Business not found", "Failed to fetch business")
		return
	}

	if err := apply(r); err != nil {
		if errors.Is(err, drafts.ErrUnknownField) || errors.Is(err, drafts.ErrInvalidValue) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record edit"})
		return
	}

	eff := r.Effective(*b)
	c.JSON(http.StatusOK, gin.H{
		"business_id": b.ID,
		"views":       eff.Views,
		"is_active":   eff.Active(),
		"pending":     r.Len(),
	})
}

// DiscardDrafts drops every pending edit of the caller.
func (h *DraftHandler) DiscardDrafts(c *gin.Context) {
	r, ok := h.reconciler(c)
	if !ok {
		return
	}
	r.Discard()
	c.JSON(http.StatusOK, gin.H{"message": "Pending edits discarded"})
}

// SaveDrafts commits the caller's pending edits.
func (h *DraftHandler) SaveDrafts(c *gin.Context) {
	r, ok := h.reconciler(c)
	if !ok {
		return
	}

	report, err := r.SaveAll(c.Request.Context())
	switch {
	case errors.Is(err, drafts.ErrSaveInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "A save is already in progress"})
	case errors.Is(err, drafts.ErrSaveFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Some edits could not be saved", "report": report})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save edits"})
	default:
		c.JSON(http.StatusOK, report)
	}
}
