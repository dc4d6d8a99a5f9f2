package dtos

import (
	"time"

	"github.com/google/uuid"
)

// SaveReport summarizes one pass of committing pending edits.
type SaveReport struct {
	Total       int         `json:"total"`
	Saved       int         `json:"saved"`
	Failed      int         `json:"failed"`
	FailedIDs   []uuid.UUID `json:"failed_ids"`
	Remaining   int         `json:"remaining"` // entries still pending after the pass
	StartedAt   time.Time   `json:"started_at"`
	CompletedAt *time.Time  `json:"completed_at"`
}

// DraftEditRequest is a partial edit recorded into the admin's pending buffer.
type DraftEditRequest struct {
	Views    *int  `json:"views" binding:"omitempty,gte=0,lte=2147483647"`
	IsActive *bool `json:"is_active"`
}

// DraftEntry is one pending edit as listed to the admin.
type DraftEntry struct {
	BusinessID uuid.UUID `json:"business_id"`
	Views      *int      `json:"views,omitempty"`
	IsActive   *bool     `json:"is_active,omitempty"`
}
