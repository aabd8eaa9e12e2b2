package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"a1care/handlers"
	"a1care/middleware"
	"a1care/utils"
)

// RegisterCatalogRoutes registers catalog browsing and administration.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/catalog")
	{
		// Public browsing.
		api.GET("/categories", hb.Catalog.ListCategoriesHandler)
		api.GET("/categories/:categoryId/subcategories", hb.Catalog.ListSubCategoriesHandler)
		api.GET("/subcategories/:subCategoryId/items", hb.Catalog.ListItemsHandler)

		// Catalog administration requires staff or admin.
		admin := api.Group("")
		admin.Use(middleware.JWTAuthMiddleware(), middleware.RequireRoles("staff"))
		admin.POST("/categories", hb.Catalog.CreateCategoryHandler)
		admin.POST("/subcategories", hb.Catalog.CreateSubCategoryHandler)
		admin.POST("/items", hb.Catalog.CreateItemHandler)
		admin.DELETE("/:level/:id", hb.Catalog.DeactivateNodeHandler)
	}
}

// RegisterProviderRoutes registers provider profile endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.GET("", hb.Provider.ListProvidersHandler)
		api.GET("/:id", hb.Provider.GetProviderHandler)
		api.GET("/:id/slots", hb.Slots.ListAvailableSlotsHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.POST("", middleware.RequireRoles("staff"), hb.Provider.CreateProviderHandler)
		protected.PUT("/:id/consultation-fee", middleware.RequireRoles("provider", "staff"), hb.Provider.SetConsultationFeeHandler)
		protected.POST("/slots", middleware.RequireRoles("provider"), hb.Slots.GenerateSlotsHandler)
		protected.GET("/:id/bookings", middleware.RequireRoles("provider", "staff"), hb.Booking.ListProviderBookingsHandler)
		protected.GET("/:id/schedule", middleware.RequireRoles("provider", "staff"), hb.Slots.ListDayScheduleHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.Booking.CreateBookingHandler)
		api.GET("", hb.Booking.ListMyBookingsHandler)
		api.GET("/:id", hb.Booking.GetBookingHandler)
		api.POST("/:id/actions/:action", hb.Booking.TransitionBookingHandler)
		api.PUT("/:id/payment-status", middleware.RequireRoles("staff"), hb.Booking.SetPaymentStatusHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware())

	RegisterCatalogRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHealthRoute(r)
}
