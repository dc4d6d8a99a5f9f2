package dtos

import "github.com/google/uuid"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token      string     `json:"token"`
	Role       string     `json:"role"`
	Name       string     `json:"name"`
	BusinessID *uuid.UUID `json:"business_id,omitempty"`
}

// CreateMerchantRequest creates a merchant account bound to one business.
type CreateMerchantRequest struct {
	Email      string    `json:"email" binding:"required,email"`
	Password   string    `json:"password" binding:"required,min=8"`
	Name       string    `json:"name" binding:"required"`
	BusinessID uuid.UUID `json:"business_id" binding:"required"`
}

// CustomerRequest is the public lead form.
type CustomerRequest struct {
	Name         string `json:"name" binding:"required,max=120"`
	Phone        string `json:"phone" binding:"required,min=10,max=20"`
	Neighborhood string `json:"neighborhood"`
}

// ContactRequest asks for a WhatsApp link on behalf of a registered customer.
type ContactRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
	Message    string    `json:"message" binding:"max=500"`
}
