package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"guia-piracicaba-backend/dtos"
	"guia-piracicaba-backend/models"
	"guia-piracicaba-backend/store"
	"guia-piracicaba-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CustomerHandler captures leads and gates the WhatsApp contact behind them.
type CustomerHandler struct {
	Store store.Store
}

// CreateCustomer registers a lead. A phone that is already known returns the existing record.
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req dtos.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	phone := utils.DigitsOnly(req.Phone)
	if len(phone) < 10 || len(phone) > 13 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone must have 10 to 13 digits"})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	ctx := c.Request.Context()
	existing, err := h.Store.FindCustomerByPhone(ctx, phone)
	if err == nil {
		c.JSON(http.StatusOK, existing)
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		respondStoreError(c, err, "Customer not found", "Failed to register customer")
		return
	}

	customer := models.Customer{
		Name:         name,
		Phone:        phone,
		Neighborhood: strings.TrimSpace(req.Neighborhood),
	}
	if err := h.Store.CreateCustomer(ctx, &customer); err != nil {
		// Lost a race on the unique phone index.
		if existing, findErr := h.Store.FindCustomerByPhone(ctx, phone); findErr == nil {
			c.JSON(http.StatusOK, existing)
			return
		}
		respondStoreError(c, err, "Customer not found", "Failed to register customer")
		return
	}

	logrus.WithField("customer_id", customer.ID).Info("Customer registered")
	c.JSON(http.StatusCreated, customer)
}

// Contact returns the business's WhatsApp link for a registered customer.
func (h *CustomerHandler) Contact(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req dtos.ContactRequest
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
	if !b.Active() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		return
	}

	if _, err := h.Store.GetCustomer(ctx, req.CustomerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Customer registration required"})
			return
		}
		respondStoreError(c, err, "Customer not found", "Failed to fetch customer")
		return
	}

	if utils.DigitsOnly(b.Phone) == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Business has no contact phone"})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		message = fmt.Sprintf("Olá! Encontrei %s no Guia de Piracicaba.", b.Name)
	}

	c.JSON(http.StatusOK, gin.H{"whatsapp_url": utils.WhatsAppLink(b.Phone, message)})
}
