package handlers

import (
	"errors"
	"net/http"
	"strings"

	"guia-piracicaba-backend/dtos"
	"guia-piracicaba-backend/store"
	"guia-piracicaba-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	Store store.Store
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := h.Store.FindUserByEmail(c.Request.Context(), email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logrus.WithError(err).Error("Failed to look up user")
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// Check if user is blocked
	if user.IsBlocked {
		c.JSON(http.StatusForbidden, gin.H{"error": "Your account has been blocked. Please contact support."})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, user.BusinessID)
	if err != nil {
		logrus.WithError(err).Error("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("User logged in")
	c.JSON(http.StatusOK, dtos.LoginResponse{
		Token:      token,
		Role:       user.Role,
		Name:       user.Name,
		BusinessID: user.BusinessID,
	})
}
