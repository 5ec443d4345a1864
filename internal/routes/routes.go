package routes

import (
	"rughaven_back_end/internal/handlers/admin"
	"rughaven_back_end/internal/handlers/payment"
	"rughaven_back_end/internal/handlers/product"
	"rughaven_back_end/internal/handlers/user"
	"rughaven_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Auth
	auth := api.Group("/auth")
	{
		auth.POST("/register", middleware.RegisterRateLimit(), user.Register)
		auth.POST("/login", middleware.LoginRateLimit(), user.Login)
		auth.POST("/admin/login", middleware.LoginRateLimit(), user.AdminLogin)
		auth.GET("/me", middleware.AuthRequired(), user.Me)
		auth.PUT("/me", middleware.AuthRequired(), user.UpdateMe)
	}

	// Catalog (public)
	api.GET("/products", product.GetAllProducts)
	api.GET("/products/search", middleware.SearchRateLimit(), product.SearchProducts)
	api.GET("/products/suggest", middleware.SearchRateLimit(), product.SuggestProducts)
	api.GET("/products/:id", product.GetProductByID)

	// Gallery and room visualizer assets (public)
	api.GET("/gallery", admin.ListGalleryImages)

	// Policy pages and support contact (public)
	api.GET("/pages/:slug", admin.GetPage)
	api.GET("/config/support", admin.SupportConfig)

	// Cart
	cart := api.Group("/cart", middleware.AuthRequired())
	{
		cart.GET("", user.GetCart)
		cart.POST("/add", user.AddToCart)
		cart.DELETE("/clear", user.ClearCart)
		cart.DELETE("/:productId", user.RemoveFromCart)
	}

	// Payment
	pay := api.Group("/payment", middleware.AuthRequired())
	{
		pay.POST("/orders", payment.CreatePaymentOrder)
		pay.POST("/verify", payment.VerifyPayment)
	}

	// Orders
	orders := api.Group("/orders", middleware.AuthRequired())
	{
		orders.POST("", user.Checkout)
		orders.GET("", user.GetMyOrders)
		orders.GET("/:id", user.GetOrderByID)
		orders.GET("/:id/track", user.TrackOrder)
	}

	// Real-time order tracking
	r.GET("/ws/orders/:id", middleware.AuthRequired(), user.OrderWebSocket)

	// Admin panel
	adminGroup := api.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin)
	{
		adminGroup.POST("/products", product.CreateProduct)
		adminGroup.PUT("/products/:id", product.UpdateProduct)
		adminGroup.DELETE("/products/:id", product.DeleteProduct)

		adminGroup.GET("/orders", admin.ListOrders)
		adminGroup.PUT("/orders/:id/status", admin.UpdateOrderStatus)

		adminGroup.POST("/gallery", admin.UploadGalleryImage)
		adminGroup.DELETE("/gallery/:id", admin.DeleteGalleryImage)

		adminGroup.PUT("/pages/:slug", admin.UpsertPage)
	}
}
