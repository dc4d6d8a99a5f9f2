package handlers

import (
	"net/http"
	"strings"

	"guia-piracicaba-backend/discovery"
	"guia-piracicaba-backend/models"
	"guia-piracicaba-backend/store"

	"github.com/gin-gonic/gin"
)

// BusinessHandler serves the public directory.
type BusinessHandler struct {
	Store store.Store
	Now   Clock
}

// ListBusinesses applies the discovery filters to the full collection.
func (h *BusinessHandler) ListBusinesses(c *gin.Context) {
	provider, err := positionFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	q := discovery.Query{
		SearchText:     c.Query("search"),
		Category:       strings.TrimSpace(c.Query("category")),
		Neighborhood:   strings.TrimSpace(c.Query("neighborhood")),
		Open24hOnly:    queryBool(c, "open24h"),
		DeliveryOnly:   queryBool(c, "delivery"),
		PickupOnly:     queryBool(c, "pickup"),
		OpenNowOnly:    queryBool(c, "open_now"),
		SortByDistance: c.Query("sort") == "distance",
	}

	businesses, err := h.Store.ListBusinesses(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "Business not found", "Failed to fetch businesses")
		return
	}

	c.JSON(http.StatusOK, discovery.Run(businesses, q, provider, h.Now.now()))
}

func (h *BusinessHandler) GetBusiness(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	provider, err := positionFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.Store.GetBusiness(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Business not found", "Failed to fetch business")
		return
	}
	if !b.Active() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		return
	}

	now := h.Now.now()
	listing := []discovery.Listing{{Business: *b, OpenNow: b.IsOpenAt(now)}}
	if pos, known := provider.Position(); known {
		discovery.Annotate(listing, pos)
	}
	c.JSON(http.StatusOK, listing[0])
}

// RecordView bumps the view counter of a business.
func (h *BusinessHandler) RecordView(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.Store.IncrementViews(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "Business not found", "Failed to record view")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "View recorded"})
}

func (h *BusinessHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": models.Categories,
		"special":    []string{models.CategoryOfficial, models.CategorySponsor},
	})
}

func (h *BusinessHandler) ListNeighborhoods(c *gin.Context) {
	neighborhoods, err := h.Store.ListNeighborhoods(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "Neighborhood not found", "Failed to fetch neighborhoods")
		return
	}
	c.JSON(http.StatusOK, neighborhoods)
}
