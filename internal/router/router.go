// internal/router/router.go
package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/mzansithrift/thriftstore-backend/internal/config"
	"github.com/mzansithrift/thriftstore-backend/internal/handlers"
	"github.com/mzansithrift/thriftstore-backend/internal/middleware"
	"github.com/mzansithrift/thriftstore-backend/internal/services"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	sessionService := services.NewSessionService(db, cfg.Session)
	activityService := services.NewActivityService(db)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	authService := services.NewAuthService(db, sessionService, activityService)
	catalogService := services.NewCatalogService(db)
	mediaService := services.NewMediaService(db, storageService)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, cfg, activityService)
	paymentService := services.NewPaymentService(db, cfg, activityService)
	dashboardService := services.NewDashboardService(db)
	contactService := services.NewContactService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.Session)
	productHandler := handlers.NewProductHandler(catalogService, mediaService)
	mediaHandler := handlers.NewMediaHandler(mediaService, storageService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	sellerHandler := handlers.NewSellerHandler(dashboardService)
	miscHandler := handlers.NewMiscHandler(contactService)

	auth := middleware.NewAuthMiddleware(sessionService, cfg.Session)

	// Per-IP budgets from config. Auth and upload buckets refill one
	// token per minute; general refills continuously at its burst rate.
	generalLimit := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.GeneralPerSecond), cfg.RateLimit.GeneralPerSecond).Handler()
	authLimit := middleware.NewIPRateLimiter(rate.Every(time.Minute), cfg.RateLimit.AuthPerMinute).Handler()
	uploadLimit := middleware.NewIPRateLimiter(rate.Every(time.Minute), cfg.RateLimit.UploadPerMinute).Handler()

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(nil))
	r.Use(generalLimit)
	r.Use(maxBodySize(cfg.Upload.MaxBodySize))

	// Uploaded media served straight off disk in local-storage mode.
	if cfg.AWS.AccessKeyID == "" {
		r.Static(cfg.Upload.BaseURL, cfg.Upload.Dir)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		dbStatus := "up"
		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "down"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": dbStatus,
			"version":  "1.0.0",
		})
	})

	api := r.Group("/api")
	{
		// Authentication
		authRoutes := api.Group("")
		authRoutes.Use(authLimit)
		{
			authRoutes.POST("/register", authHandler.RegisterBuyer)
			authRoutes.POST("/login", authHandler.LoginBuyer)
			authRoutes.POST("/seller/register", authHandler.RegisterSeller)
			authRoutes.POST("/seller/login", authHandler.LoginSeller)
		}
		api.POST("/logout", auth.Required(), authHandler.Logout)
		api.GET("/user", auth.Required(), authHandler.CurrentUser)

		// Public catalog
		api.GET("/products", productHandler.ListProducts)
		api.GET("/products-with-media", productHandler.ListProductsWithMedia)
		api.GET("/products/:id", productHandler.GetProduct)
		api.GET("/categories", productHandler.ListCategories)
		api.POST("/contact", miscHandler.Contact)

		// Buyer routes
		buyer := api.Group("")
		buyer.Use(auth.Required(), auth.BuyerRequired())
		{
			buyer.GET("/cart", cartHandler.GetCart)
			buyer.POST("/cart", cartHandler.AddToCart)
			buyer.DELETE("/cart", cartHandler.ClearCart)
			buyer.PUT("/cart/:product_id", cartHandler.UpdateCartItem)
			buyer.DELETE("/cart/:product_id", cartHandler.RemoveFromCart)

			buyer.POST("/orders", orderHandler.CreateOrder)
			buyer.POST("/orders/:id/cancel", orderHandler.CancelOrder)

			buyer.POST("/payments/process", paymentHandler.ProcessPayment)
		}

		// Order history serves whichever kind of account is signed in:
		// buyers see their orders, sellers see their sold items.
		api.GET("/orders", auth.Required(), orderHandler.ListOrders)

		// Seller routes
		seller := api.Group("/seller")
		seller.Use(auth.Required(), auth.SellerRequired())
		{
			seller.GET("/dashboard", sellerHandler.Dashboard)
			seller.GET("/orders", orderHandler.ListSellerOrders)

			seller.GET("/products", productHandler.SellerProducts)
			seller.POST("/products", productHandler.CreateProduct)
			seller.PUT("/products/:id", productHandler.UpdateProduct)
			seller.DELETE("/products/:id", productHandler.DeleteProduct)
		}

		// Product media management
		media := api.Group("/products/:id/media")
		media.Use(auth.Required(), auth.SellerRequired())
		{
			media.GET("", mediaHandler.ListMedia)
			media.POST("", uploadLimit, mediaHandler.UploadMedia)
			media.PUT("/:media_id", mediaHandler.UpdateMedia)
			media.DELETE("/:media_id", mediaHandler.DeleteMedia)
		}

		api.POST("/products-with-media", auth.Required(), auth.SellerRequired(),
			uploadLimit, productHandler.CreateProductWithMedia)

		api.POST("/upload-media", auth.Required(), auth.SellerRequired(),
			uploadLimit, mediaHandler.UploadStandalone)
	}

	return r, nil
}

// maxBodySize caps request bodies; oversized uploads fail with 413
// instead of filling the disk.
func maxBodySize(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
