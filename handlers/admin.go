package handlers

import (
	"errors"
	"net/http"
	"strings"

	"guia-piracicaba-backend/drafts"
	"guia-piracicaba-backend/dtos"
	"guia-piracicaba-backend/middleware"
	"guia-piracicaba-backend/models"
	"guia-piracicaba-backend/store"
	"guia-piracicaba-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AdminHandler is the back-office CRUD. Listings show the caller's pending edits.
type AdminHandler struct {
	Store  store.Store
	Drafts *drafts.Registry
}

type adminBusiness struct {
	models.Business
	HasPendingEdits bool `json:"has_pending_edits"`
}

// pending returns the caller's draft buffer if one exists. Reads never create one.
func (h *AdminHandler) pending(c *gin.Context) (*drafts.Reconciler, bool) {
	adminID, ok := middleware.CurrentUserID(c)
	if !ok || h.Drafts == nil {
		return nil, false
	}
	return h.Drafts.Get(adminID)
}

func (h *AdminHandler) overlay(c *gin.Context, businesses []models.Business) []adminBusiness {
	out := make([]adminBusiness, len(businesses))
	r, ok := h.pending(c)
	if !ok {
		for i := range businesses {
			out[i] = adminBusiness{Business: businesses[i]}
		}
		return out
	}

	for i, b := range r.EffectiveAll(businesses) {
		out[i] = adminBusiness{Business: b, HasPendingEdits: r.IsDirty(b.ID)}
	}
	return out
}

// ========== Businesses ==========

func (h *AdminHandler) ListBusinesses(c *gin.Context) {
	businesses, err := h.Store.ListBusinesses(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "Business not found", "Failed to fetch businesses")
		return
	}
	c.JSON(http.StatusOK, h.overlay(c, businesses))
}

func (h *AdminHandler) GetBusiness(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	b, err := h.Store.GetBusiness(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Business not found", "Failed to fetch business")
		return
	}
	c.JSON(http.StatusOK, h.overlay(c, []models.Business{*b})[0])
}

func (h *AdminHandler) CreateBusiness(c *gin.Context) {
	var req dtos.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	b := req.ToModel()
	if err := h.Store.CreateBusiness(c.Request.Context(), b); err != nil {
		respondStoreError(c, err, "Business not found", "Failed to create business")
		return
	}

	logrus.WithFields(logrus.Fields{"business_id": b.ID, "code": b.Code}).Info("Business created")
	c.JSON(http.StatusCreated, b)
}

func (h *AdminHandler) UpdateBusiness(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req dtos.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	ctx := c.Request.Context()
	b, err := h.Store.GetBusiness(ctx, id)
	if err != nil {
		respondStoreError(c, err, "Business not found", "Failed to fetch business")
		return
	}

	req.Apply(b)
	var omit []string
	if req.Views == nil {
		omit = append(omit, store.ColumnViews)
	}
	if err := h.Store.UpdateBusiness(ctx, b, omit...); err != nil {
		respondStoreError(c, err, "Business not found", "Failed to update business")
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *AdminHandler) DeleteBusiness(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.Store.DeleteBusiness(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "Business not found", "Failed to delete business")
		return
	}
	if h.Drafts != nil {
		h.Drafts.Forget(id)
	}

	logrus.WithField("business_id", id).Info("Business deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Business deleted"})
}

// ========== Customers & Merchants ==========

func (h *AdminHandler) ListCustomers(c *gin.Context) {
	customers, err := h.Store.ListCustomers(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "Customer not found", "Failed to fetch customers")
		return
	}
	c.JSON(http.StatusOK, customers)
}

// CreateMerchant creates a merchant login bound to an existing business.
func (h *AdminHandler) CreateMerchant(c *gin.Context) {
	var req dtos.CreateMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Store.GetBusiness(ctx, req.BusinessID); err != nil {
		respondStoreError(c, err, "Business not found", "Failed to fetch business")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := h.Store.FindUserByEmail(ctx, email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		respondStoreError(c, err, "User not found", "Failed to create merchant")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	businessID := req.BusinessID
	user := models.User{
		Email:      email,
		Password:   string(hashedPassword),
		Name:       strings.TrimSpace(req.Name),
		Role:       models.RoleMerchant,
		BusinessID: &businessID,
	}
	if err := h.Store.CreateUser(ctx, &user); err != nil {
		respondStoreError(c, err, "User not found", "Failed to create merchant")
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "business_id": businessID}).Info("Merchant created")
	c.JSON(http.StatusCreated, user)
}
