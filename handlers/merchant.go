package handlers

import (
	"net/http"

	"guia-piracicaba-backend/dtos"
	"guia-piracicaba-backend/middleware"
	"guia-piracicaba-backend/models"
	"guia-piracicaba-backend/store"
	"guia-piracicaba-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MerchantHandler lets a merchant manage their own listing.
type MerchantHandler struct {
	Store store.Store
}

func (h *MerchantHandler) myBusiness(c *gin.Context) (*models.Business, bool) {
	businessID, ok := middleware.CurrentBusinessID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "No business associated with this account"})
		return nil, false
	}

	b, err := h.Store.GetBusiness(c.Request.Context(), businessID)
	if err != nil {
		respondStoreError(c, err, "Business not found", "Failed to fetch business")
		return nil, false
	}
	return b, true
}

func (h *MerchantHandler) GetMyBusiness(c *gin.Context) {
	b, ok := h.myBusiness(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *MerchantHandler) UpdateMyBusiness(c *gin.Context) {
	var req dtos.MerchantUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	b, ok := h.myBusiness(c)
	if !ok {
		return
	}

	req.AsUpdate().Apply(b)
	if err := h.Store.UpdateBusiness(c.Request.Context(), b, store.ColumnViews); err != nil {
		respondStoreError(c, err, "Business not found", "Failed to update business")
		return
	}

	c.JSON(http.StatusOK, b)
}

// UpdateMySchedule replaces the weekly schedule; business_hours is regenerated with it.
func (h *MerchantHandler) UpdateMySchedule(c *gin.Context) {
	var req dtos.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	b, ok := h.myBusiness(c)
	if !ok {
		return
	}

	b.SetSchedule(req.Schedule)
	if err := h.Store.UpdateBusiness(c.Request.Context(), b, store.ColumnViews); err != nil {
		respondStoreError(c, err, "Business not found", "Failed to update schedule")
		return
	}

	logrus.WithField("business_id", b.ID).Info("Schedule updated")
	c.JSON(http.StatusOK, gin.H{
		"schedule":       b.Schedule,
		"business_hours": b.BusinessHours,
	})
}
