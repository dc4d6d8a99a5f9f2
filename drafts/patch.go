package drafts

import (
	"fmt"
	"math"

	"guia-piracicaba-backend/models"
)

// Field names an editable column of the admin table.
type Field string

const (
	FieldViews    Field = "views"
	FieldIsActive Field = "is_active"
)

// MaxViews bounds the views counter an edit may set. It matches the INTEGER column.
const MaxViews = math.MaxInt32

// Patch is a partial override of a business. Nil fields are not overridden.
type Patch struct {
	Views    *int
	IsActive *bool
}

// Empty reports whether p overrides nothing.
func (p Patch) Empty() bool {
	return p.Views == nil && p.IsActive == nil
}

// Apply writes the overridden fields onto b.
func (p Patch) Apply(b *models.Business) {
	if p.Views != nil {
		b.Views = *p.Views
	}
	if p.IsActive != nil {
		active := *p.IsActive
		b.IsActive = &active
	}
}

// merge overlays o on p, last write wins per field.
func (p *Patch) merge(o Patch) {
	if o.Views != nil {
		v := *o.Views
		p.Views = &v
	}
	if o.IsActive != nil {
		a := *o.IsActive
		p.IsActive = &a
	}
}

func (p Patch) clone() Patch {
	var c Patch
	c.merge(p)
	return c
}

func (p Patch) validate() error {
	if p.Views != nil && *p.Views < 0 {
		return fmt.Errorf("%w: views must be non-negative", ErrInvalidValue)
	}
	if p.Views != nil && *p.Views > MaxViews {
		return fmt.Errorf("%w: views must be at most %d", ErrInvalidValue, MaxViews)
	}
	return nil
}

// patchFor converts a single field edit into a Patch. JSON numbers arrive as float64
// and must be whole.
func patchFor(field Field, value interface{}) (Patch, error) {
	switch field {
	case FieldViews:
		var n int
		switch v := value.(type) {
		case int:
			n = v
		case int64:
			if v < 0 || v > MaxViews {
				return Patch{}, fmt.Errorf("%w: views must be between 0 and %d", ErrInvalidValue, MaxViews)
			}
			n = int(v)
		case float64:
			if v != math.Trunc(v) || math.IsInf(v, 0) {
				return Patch{}, fmt.Errorf("%w: views must be a whole number", ErrInvalidValue)
			}
			// Range check before converting; int(v) is implementation-defined out of range.
			if v < 0 || v > MaxViews {
				return Patch{}, fmt.Errorf("%w: views must be between 0 and %d", ErrInvalidValue, MaxViews)
			}
			n = int(v)
		default:
			return Patch{}, fmt.Errorf("%w: views must be a number, got %T", ErrInvalidValue, value)
		}
		p := Patch{Views: &n}
		return p, p.validate()
	case FieldIsActive:
		active, ok := value.(bool)
		if !ok {
			return Patch{}, fmt.Errorf("%w: is_active must be a boolean, got %T", ErrInvalidValue, value)
		}
		return Patch{IsActive: &active}, nil
	default:
		return Patch{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}
