package routes

import (
	"github.com/darshan-mishra17/GoPrakritik-sub000/config"
	"github.com/darshan-mishra17/GoPrakritik-sub000/handlers"
	"github.com/darshan-mishra17/GoPrakritik-sub000/metrics"
	customMiddleware "github.com/darshan-mishra17/GoPrakritik-sub000/middleware"
	"github.com/labstack/echo/v4"
)

func SetupRoutes(e *echo.Echo) {
	// Public routes
	e.POST("/register", handlers.Register)
	e.POST("/login", handlers.Login)
	e.POST("/auth/google", handlers.GoogleLogin)

	// Catalog reads are public
	e.GET("/products", handlers.GetProducts)
	e.GET("/products/spices/filter", handlers.FilterSpices)
	e.GET("/products/attars/filter", handlers.FilterAttars)
	e.GET("/products/:id", handlers.GetProduct)

	// Catalog writes are admin only
	catalog := e.Group("/products")
	catalog.Use(customMiddleware.AuthMiddleware, customMiddleware.AdminMiddleware)
	catalog.POST("", handlers.CreateProduct)
	catalog.POST("/spices", handlers.CreateSpice)
	catalog.POST("/attars", handlers.CreateAttar)
	catalog.PUT("/:id", handlers.UpdateProduct)
	catalog.DELETE("/:id", handlers.DeleteProduct)

	// User routes
	users := e.Group("/users")
	users.Use(customMiddleware.AuthMiddleware)
	users.GET("", handlers.GetUsers, customMiddleware.AdminMiddleware)
	users.GET("/:id", handlers.GetUser)
	users.PUT("/:id", handlers.UpdateUser)
	users.DELETE("/:id", handlers.DeleteUser)
	users.POST("/:userId/addresses", handlers.AddAddress)
	users.PUT("/:userId/addresses/:addressId", handlers.UpdateAddress)
	users.DELETE("/:userId/addresses/:addressId", handlers.DeleteAddress)
	users.GET("/:userId/orders", handlers.GetOrderHistory)
	users.GET("/:userId/orders/:orderId", handlers.GetOrderHistoryEntry)
	users.GET("/:id/cart", handlers.GetCart)
	users.PUT("/:id/cart", handlers.UpsertCartItem)
	users.DELETE("/:id/cart", handlers.RemoveCartItem)

	// Order routes
	orders := e.Group("/orders")
	orders.Use(customMiddleware.AuthMiddleware)
	orders.POST("/place", handlers.PlaceOrder)
	orders.GET("/:id/status", handlers.GetOrderStatus)

	// Development-only shipping provider stand-ins. They mirror the
	// provider's real paths so SHIPROCKET_BASE_URL can point at
	// <self>/mock/shiprocket and the live client lines up unchanged.
	if config.ShippingMockMode() {
		mock := e.Group("/mock/shiprocket")
		mock.POST("/v1/external/auth/login", handlers.MockShiprocketLogin)
		mock.POST("/v1/external/orders/create/adhoc", handlers.MockShiprocketCreateOrder)
		mock.POST("/v1/external/courier/generate/label", handlers.MockShiprocketGenerateLabel)
	}

	e.GET("/metrics", metrics.Handler())
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
}
