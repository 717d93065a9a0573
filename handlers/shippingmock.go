package handlers

import (
	"net/http"

	"github.com/darshan-mishra17/GoPrakritik-sub000/shipping"
	"github.com/labstack/echo/v4"
)

// Fixed-response stand-ins for the shipping provider's endpoints, mounted
// only in mock mode. They let the live client be pointed at this process
// during development.

func MockShiprocketLogin(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"token": "mock-shiprocket-token",
	})
}

func MockShiprocketCreateOrder(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"order_id":    shipping.MockOrderID,
		"shipment_id": shipping.MockShipmentID,
		"status":      "NEW",
	})
}

func MockShiprocketGenerateLabel(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"label_created": 1,
		"label_url":     "https://shiprocket.co/labels/mocked-tracking-id.pdf",
	})
}
