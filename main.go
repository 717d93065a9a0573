package main

import (
	"log"

	"github.com/darshan-mishra17/GoPrakritik-sub000/config"
	"github.com/darshan-mishra17/GoPrakritik-sub000/database"
	"github.com/darshan-mishra17/GoPrakritik-sub000/handlers"
	"github.com/darshan-mishra17/GoPrakritik-sub000/metrics"
	"github.com/darshan-mishra17/GoPrakritik-sub000/routes"
	"github.com/darshan-mishra17/GoPrakritik-sub000/shipping"
	"github.com/darshan-mishra17/GoPrakritik-sub000/utils"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	// Initialize Echo
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(metrics.Middleware())

	// Connect to MongoDB
	if err := database.ConnectDB(); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Select the shipping gateway variant once, at startup
	if config.ShippingMockMode() {
		log.Println("Shipping gateway: mock variant")
		handlers.ShippingClient = shipping.NewMock()
	} else {
		handlers.ShippingClient = shipping.NewShiprocket()
	}
	handlers.Mailer = utils.NewEmailService()

	// Setup routes
	routes.SetupRoutes(e)

	// Start the server
	port := config.GetEnv("PORT", "3000")
	e.Logger.Fatal(e.Start(":" + port))
}
