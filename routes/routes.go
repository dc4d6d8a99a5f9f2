package routes

import (
	"guia-piracicaba-backend/drafts"
	"guia-piracicaba-backend/handlers"
	"guia-piracicaba-backend/middleware"
	"guia-piracicaba-backend/store"

	"github.com/gin-gonic/gin"
)

// Deps are the collaborators the handlers are built from.
type Deps struct {
	Store   store.Store
	Drafts  *drafts.Registry
	Now     handlers.Clock
	Limiter *middleware.RateLimiter // applied to login and lead capture; nil disables
}

func SetupRoutes(r *gin.Engine, deps Deps) {
	// Initialize handlers
	businessHandler := &handlers.BusinessHandler{Store: deps.Store, Now: deps.Now}
	customerHandler := &handlers.CustomerHandler{Store: deps.Store}
	authHandler := &handlers.AuthHandler{Store: deps.Store}
	merchantHandler := &handlers.MerchantHandler{Store: deps.Store}
	adminHandler := &handlers.AdminHandler{Store: deps.Store, Drafts: deps.Drafts}
	draftHandler := &handlers.DraftHandler{Store: deps.Store, Drafts: deps.Drafts}

	limited := []gin.HandlerFunc{}
	if deps.Limiter != nil {
		limited = append(limited, deps.Limiter.Middleware())
	}

	// Public routes
	api := r.Group("/api")
	{
		api.POST("/auth/login", append(limited, authHandler.Login)...)

		api.GET("/categories", businessHandler.ListCategories)
		api.GET("/neighborhoods", businessHandler.ListNeighborhoods)

		api.GET("/businesses", businessHandler.ListBusinesses)
		api.GET("/businesses/:id", businessHandler.GetBusiness)
		api.POST("/businesses/:id/views", businessHandler.RecordView)
		api.POST("/businesses/:id/contact", customerHandler.Contact)

		api.POST("/customers", append(limited, customerHandler.CreateCustomer)...)
	}

	// Merchant routes (require a merchant bound to a business)
	merchant := api.Group("/merchant")
	merchant.Use(middleware.AuthMiddleware())
	merchant.Use(middleware.MerchantMiddleware())
	{
		merchant.GET("/business", merchantHandler.GetMyBusiness)
		merchant.PUT("/business", merchantHandler.UpdateMyBusiness)
		merchant.PUT("/business/schedule", merchantHandler.UpdateMySchedule)
	}

	// Admin routes (require admin role)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		// Business management
		admin.GET("/businesses", adminHandler.ListBusinesses)
		admin.POST("/businesses", adminHandler.CreateBusiness)
		admin.GET("/businesses/:id", adminHandler.GetBusiness)
		admin.PUT("/businesses/:id", adminHandler.UpdateBusiness)
		admin.DELETE("/businesses/:id", adminHandler.DeleteBusiness)

		admin.GET("/customers", adminHandler.ListCustomers)
		admin.POST("/merchants", adminHandler.CreateMerchant)

		// Pending edits
		admin.GET("/drafts", draftHandler.ListDrafts)
		admin.DELETE("/drafts", draftHandler.DiscardDrafts)
		admin.POST("/drafts/save", draftHandler.SaveDrafts)
		admin.PATCH("/drafts/:id", draftHandler.RecordDraft)
		admin.PUT("/drafts/:id/fields/:field", draftHandler.RecordFieldDraft)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
