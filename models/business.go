package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Business struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Code           string         `gorm:"index" json:"code"`
	Name           string         `gorm:"not null" json:"name"`
	Username       string         `gorm:"index" json:"username"`
	Category       string         `gorm:"index;not null" json:"category"`
	Segment        string         `json:"segment"`
	Street         string         `json:"street"`
	Number         string         `json:"number"`
	Neighborhood   string         `gorm:"index" json:"neighborhood"`
	PostalCode     string         `json:"postal_code"`
	Address        string         `json:"address"`
	Latitude       *float64       `json:"latitude,omitempty"`
	Longitude      *float64       `json:"longitude,omitempty"`
	Phone          string         `json:"phone"`
	Description    string         `json:"description"`
	ImageURL       string         `json:"image_url"`
	LogoURL        string         `json:"logo_url"`
	Rating         *float64       `json:"rating,omitempty"`
	ReviewCount    *int           `json:"review_count,omitempty"`
	IsActive       *bool          `gorm:"default:true" json:"is_active"`
	OffersDelivery bool           `gorm:"default:false" json:"offers_delivery"`
	OffersPickup   bool           `gorm:"default:false" json:"offers_pickup"`
	Is24h          bool           `gorm:"column:is_24h;default:false" json:"is_24h"`
	IsOfficial     bool           `gorm:"default:false" json:"is_official"`
	IsSponsor      bool           `gorm:"default:false" json:"is_sponsor"`
	Schedule       WeekSchedule   `gorm:"type:jsonb;serializer:json" json:"schedule"`
	BusinessHours  string         `json:"business_hours"`
	Views          int            `gorm:"default:0" json:"views"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps BusinessHours derived from Schedule on every write.
func (b *Business) BeforeSave(tx *gorm.DB) error {
	b.BusinessHours = SummarizeSchedule(b.Schedule)
	if b.Address == "" {
		b.Address = b.ComposeAddress()
	}
	return nil
}

// SetSchedule replaces the weekly schedule and regenerates the cached summary.
func (b *Business) SetSchedule(s WeekSchedule) {
	b.Schedule = s
	b.BusinessHours = SummarizeSchedule(s)
}

// Active treats an unset flag as active.
func (b *Business) Active() bool {
	return b.IsActive == nil || *b.IsActive
}

// HasLocation is true only when both coordinates are present.
func (b *Business) HasLocation() bool {
	return b.Latitude != nil && b.Longitude != nil
}

// IsOpenAt reports whether the business is open at now. 24h businesses are always open.
func (b *Business) IsOpenAt(now time.Time) bool {
	if b.Is24h {
		return true
	}
	return IsOpen(b.Schedule, now)
}

func (b *Business) ComposeAddress() string {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(b.Street))
	if n := strings.TrimSpace(b.Number); n != "" {
		if sb.Len() > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(n)
	}
	if nb := strings.TrimSpace(b.Neighborhood); nb != "" {
		if sb.Len() > 0 {
			sb.WriteString(" - ")
		}
		sb.WriteString(nb)
	}
	return sb.String()
}

// FormatCode renders the display sequence, e.g. 7 -> "007".
func FormatCode(seq int64) string {
	return fmt.Sprintf("%03d", seq)
}
