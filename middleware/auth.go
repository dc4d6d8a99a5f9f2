package middleware

import (
	"net/http"
	"strings"

	"guia-piracicaba-backend/models"
	"guia-piracicaba-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Context keys set by AuthMiddleware.
const (
	KeyUserID     = "user_id"
	KeyUserRole   = "user_role"
	KeyBusinessID = "business_id"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			logrus.WithError(err).WithField("path", c.FullPath()).Debug("Rejected token")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyUserRole, claims.Role)
		if claims.BusinessID != nil {
			c.Set(KeyBusinessID, *claims.BusinessID)
		}
		c.Next()
	}
}

func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(KeyUserRole)
		if !exists || role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// MerchantMiddleware requires a merchant token bound to a business.
func MerchantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(KeyUserRole)
		if !exists || role != models.RoleMerchant {
			c.JSON(http.StatusForbidden, gin.H{"error": "Merchant access required"})
			c.Abort()
			return
		}

		if _, exists := c.Get(KeyBusinessID); !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "No business associated with this account"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(KeyUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// CurrentBusinessID returns the merchant's business id.
func CurrentBusinessID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(KeyBusinessID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
