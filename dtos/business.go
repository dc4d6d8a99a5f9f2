package dtos

import (
	"strings"

	"guia-piracicaba-backend/models"
	"guia-piracicaba-backend/utils"
)

// CreateBusinessRequest is the admin payload for a new listing.
type CreateBusinessRequest struct {
	Name           string              `json:"name" binding:"required,max=120"`
	Username       string              `json:"username"`
	Category       string              `json:"category" binding:"required,category"`
	Segment        string              `json:"segment"`
	Street         string              `json:"street"`
	Number         string              `json:"number"`
	Neighborhood   string              `json:"neighborhood"`
	PostalCode     string              `json:"postal_code"`
	Address        string              `json:"address"`
	Latitude       *float64            `json:"latitude" binding:"omitempty,latitude"`
	Longitude      *float64            `json:"longitude" binding:"omitempty,longitude"`
	Phone          string              `json:"phone"`
	Description    string              `json:"description" binding:"max=2000"`
	ImageURL       string              `json:"image_url"`
	LogoURL        string              `json:"logo_url"`
	Rating         *float64            `json:"rating" binding:"omitempty,gte=0,lte=5"`
	ReviewCount    *int                `json:"review_count" binding:"omitempty,gte=0"`
	IsActive       *bool               `json:"is_active"`
	OffersDelivery bool                `json:"offers_delivery"`
	OffersPickup   bool                `json:"offers_pickup"`
	Is24h          bool                `json:"is_24h"`
	IsOfficial     bool                `json:"is_official"`
	IsSponsor      bool                `json:"is_sponsor"`
	Schedule       models.WeekSchedule `json:"schedule" binding:"omitempty,weekschedule"`
}

// ToModel builds a Business. A missing schedule becomes the default week.
func (r *CreateBusinessRequest) ToModel() *models.Business {
	b := &models.Business{
		Name:           strings.TrimSpace(r.Name),
		Username:       r.Username,
		Category:       r.Category,
		Segment:        r.Segment,
		Street:         r.Street,
		Number:         r.Number,
		Neighborhood:   strings.TrimSpace(r.Neighborhood),
		PostalCode:     r.PostalCode,
		Address:        r.Address,
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		Phone:          utils.DigitsOnly(r.Phone),
		Description:    r.Description,
		ImageURL:       r.ImageURL,
		LogoURL:        r.LogoURL,
		Rating:         r.Rating,
		ReviewCount:    r.ReviewCount,
		IsActive:       r.IsActive,
		OffersDelivery: r.OffersDelivery,
		OffersPickup:   r.OffersPickup,
		Is24h:          r.Is24h,
		IsOfficial:     r.IsOfficial,
		IsSponsor:      r.IsSponsor,
	}
	if r.Schedule == nil {
		b.SetSchedule(models.DefaultSchedule())
	} else {
		b.SetSchedule(r.Schedule)
	}
	return b
}

// UpdateBusinessRequest is a partial update; nil fields are left unchanged.
type UpdateBusinessRequest struct {
	Name           *string             `json:"name" binding:"omitempty,min=1,max=120"`
	Username       *string             `json:"username"`
	Category       *string             `json:"category" binding:"omitempty,category"`
	Segment        *string             `json:"segment"`
	Street         *string             `json:"street"`
	Number         *string             `json:"number"`
	Neighborhood   *string             `json:"neighborhood"`
	PostalCode     *string             `json:"postal_code"`
	Address        *string             `json:"address"`
	Latitude       *float64            `json:"latitude" binding:"omitempty,latitude"`
	Longitude      *float64            `json:"longitude" binding:"omitempty,longitude"`
	Phone          *string             `json:"phone"`
	Description    *string             `json:"description" binding:"omitempty,max=2000"`
	ImageURL       *string             `json:"image_url"`
	LogoURL        *string             `json:"logo_url"`
	Rating         *float64            `json:"rating" binding:"omitempty,gte=0,lte=5"`
	ReviewCount    *int                `json:"review_count" binding:"omitempty,gte=0"`
	IsActive       *bool               `json:"is_active"`
	OffersDelivery *bool               `json:"offers_delivery"`
	OffersPickup   *bool               `json:"offers_pickup"`
	Is24h          *bool               `json:"is_24h"`
	IsOfficial     *bool               `json:"is_official"`
	IsSponsor      *bool               `json:"is_sponsor"`
	Views          *int                `json:"views" binding:"omitempty,gte=0,lte=2147483647"`
	Schedule       models.WeekSchedule `json:"schedule" binding:"omitempty,weekschedule"`
}

// Apply merges the set fields into b. A changed address part recomposes Address
// unless Address itself is set.
func (r *UpdateBusinessRequest) Apply(b *models.Business) {
	if r.Name != nil {
		b.Name = strings.TrimSpace(*r.Name)
	}
	if r.Username != nil {
		b.Username = *r.Username
	}
	if r.Category != nil {
		b.Category = *r.Category
	}
	if r.Segment != nil {
		b.Segment = *r.Segment
	}

	addressChanged := false
	if r.Street != nil {
		b.Street = *r.Street
		addressChanged = true
	}
	if r.Number != nil {
		b.Number = *r.Number
		addressChanged = true
	}
	if r.Neighborhood != nil {
		b.Neighborhood = strings.TrimSpace(*r.Neighborhood)
		addressChanged = true
	}
	if r.Address != nil {
		b.Address = *r.Address
	} else if addressChanged {
		b.Address = b.ComposeAddress()
	}

	if r.PostalCode != nil {
		b.PostalCode = *r.PostalCode
	}
	if r.Latitude != nil {
		b.Latitude = r.Latitude
	}
	if r.Longitude != nil {
		b.Longitude = r.Longitude
	}
	if r.Phone != nil {
		b.Phone = utils.DigitsOnly(*r.Phone)
	}
	if r.Description != nil {
		b.Description = *r.Description
	}
	if r.ImageURL != nil {
		b.ImageURL = *r.ImageURL
	}
	if r.LogoURL != nil {
		b.LogoURL = *r.LogoURL
	}
	if r.Rating != nil {
		b.Rating = r.Rating
	}
	if r.ReviewCount != nil {
		b.ReviewCount = r.ReviewCount
	}
	if r.IsActive != nil {
		b.IsActive = r.IsActive
	}
	if r.OffersDelivery != nil {
		b.OffersDelivery = *r.OffersDelivery
	}
	if r.OffersPickup != nil {
		b.OffersPickup = *r.OffersPickup
	}
	if r.Is24h != nil {
		b.Is24h = *r.Is24h
	}
	if r.IsOfficial != nil {
		b.IsOfficial = *r.IsOfficial
	}
	if r.IsSponsor != nil {
		b.IsSponsor = *r.IsSponsor
	}
	if r.Views != nil {
		b.Views = *r.Views
	}
	if r.Schedule != nil {
		b.SetSchedule(r.Schedule)
	}
}

// MerchantUpdateRequest is what a merchant may change on their own listing.
// Flags that affect placement (official, sponsor, active) and counters stay admin-only.
type MerchantUpdateRequest struct {
	Segment        *string  `json:"segment"`
	Street         *string  `json:"street"`
	Number         *string  `json:"number"`
	Neighborhood   *string  `json:"neighborhood"`
	PostalCode     *string  `json:"postal_code"`
	Latitude       *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude      *float64 `json:"longitude" binding:"omitempty,longitude"`
	Phone          *string  `json:"phone"`
	Description    *string  `json:"description" binding:"omitempty,max=2000"`
	ImageURL       *string  `json:"image_url"`
	LogoURL        *string  `json:"logo_url"`
	OffersDelivery *bool    `json:"offers_delivery"`
	OffersPickup   *bool    `json:"offers_pickup"`
	Is24h          *bool    `json:"is_24h"`
}

// AsUpdate lifts the merchant fields into a general update.
func (r *MerchantUpdateRequest) AsUpdate() *UpdateBusinessRequest {
	return &UpdateBusinessRequest{
		Segment:        r.Segment,
		Street:         r.Street,
		Number:         r.Number,
		Neighborhood:   r.Neighborhood,
		PostalCode:     r.PostalCode,
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		Phone:          r.Phone,
		Description:    r.Description,
		ImageURL:       r.ImageURL,
		LogoURL:        r.LogoURL,
		OffersDelivery: r.OffersDelivery,
		OffersPickup:   r.OffersPickup,
		Is24h:          r.Is24h,
	}
}

// ScheduleRequest replaces the whole weekly schedule.
type ScheduleRequest struct {
	Schedule models.WeekSchedule `json:"schedule" binding:"required,weekschedule"`
}
