// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/pkg/storage"
)

// SetupRoutes wires all route groups onto the API router group.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, log *logrus.Logger) {
	store := storage.NewLocal(cfg)

	SetupAuthRoutes(rg, db, cfg)
	SetupCatalogRoutes(rg, db, cfg, log, store)
	SetupOrderRoutes(rg, db, cfg)
	SetupNewsletterRoutes(rg, db, cfg)
	SetupBlogRoutes(rg, db, cfg, store)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/me", authHandler.Me)
		}
	}
}

// SetupCatalogRoutes sets up product and category routes
func SetupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, log *logrus.Logger, store storage.Storage) {
	productHandler := handlers.NewProductHandler(db, cfg, log)
	categoryHandler := handlers.NewCategoryHandler(db, cfg, log)
	uploadHandler := handlers.NewUploadHandler(db, cfg, log, store)

	catalog := rg.Group("/catalog")
	{
		// Public read endpoints
		catalog.GET("/products", productHandler.GetProducts)
		catalog.GET("/products/:id", productHandler.GetProduct)
		catalog.GET("/categories", categoryHandler.GetCategories)
		catalog.GET("/categories/:slug/products", productHandler.GetProductsByCategory)

		// Admin write endpoints
		admin := catalog.Group("")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
		{
			admin.POST("/products", productHandler.CreateProduct)
			admin.PATCH("/products/:id", productHandler.UpdateProduct)
			admin.DELETE("/products/:id", productHandler.DeleteProduct)

			admin.POST("/products/:id/images", uploadHandler.UploadProductImages)
			admin.DELETE("/products/:id/images/:imageId", uploadHandler.DeleteProductImage)

			admin.GET("/admin/products", productHandler.GetAllProducts)
			admin.GET("/admin/categories", categoryHandler.GetAllCategories)
			admin.POST("/categories", categoryHandler.CreateCategory)
			admin.PATCH("/categories/:id", categoryHandler.UpdateCategory)
			admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)
		}
	}
}

// SetupOrderRoutes sets up cart, checkout and order routes
func SetupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(db, cfg)
	orderHandler := handlers.NewOrderHandler(db, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("/cart", cartHandler.GetCart)
		orders.POST("/cart/items", cartHandler.AddItem)
		orders.DELETE("/cart/items/:id", cartHandler.RemoveItem)

		orders.POST("/checkout", orderHandler.Checkout)
		orders.GET("/mine", orderHandler.GetMyOrders)

		admin := orders.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.GET("", orderHandler.GetOrders)
			admin.GET("/stats", orderHandler.GetStats)
			admin.GET("/:id", orderHandler.GetOrder)
			admin.PATCH("/:id", orderHandler.UpdateOrder)
		}
	}
}

// SetupNewsletterRoutes sets up newsletter routes
func SetupNewsletterRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	newsletterHandler := handlers.NewNewsletterHandler(db)

	newsletter := rg.Group("/newsletter")
	{
		newsletter.POST("/subscribe", newsletterHandler.Subscribe)
		newsletter.POST("/unsubscribe", newsletterHandler.Unsubscribe)

		admin := newsletter.Group("")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
		{
			admin.GET("/subscribers", newsletterHandler.ListSubscribers)
		}
	}
}

// SetupBlogRoutes sets up blog routes
func SetupBlogRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, store storage.Storage) {
	blogHandler := handlers.NewBlogHandler(db, cfg, store)

	blogs := rg.Group("/blogs")
	{
		blogs.GET("", blogHandler.ListBlogs)
		blogs.GET("/:slug", blogHandler.GetBlog)
		blogs.GET("/:slug/pdf", blogHandler.DownloadBlogPDF)

		admin := blogs.Group("")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
		{
			admin.GET("/admin/all", blogHandler.ListAllBlogs)
			admin.GET("/id/:id", blogHandler.GetBlogByID)
			admin.POST("", blogHandler.CreateBlog)
			admin.PATCH("/id/:id", blogHandler.UpdateBlog)
			admin.DELETE("/id/:id", blogHandler.DeleteBlog)
			admin.POST("/id/:id/images", blogHandler.UploadBlogImage)
			admin.POST("/id/:id/pdf", blogHandler.UploadBlogPDF)
		}
	}
}
