package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/darshan-mishra17/GoPrakritik-sub000/database"
	"github.com/darshan-mishra17/GoPrakritik-sub000/metrics"
	"github.com/darshan-mishra17/GoPrakritik-sub000/models"
	"github.com/darshan-mishra17/GoPrakritik-sub000/shipping"
	"github.com/darshan-mishra17/GoPrakritik-sub000/utils"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShippingClient and Mailer are wired up in main before the server starts.
var (
	ShippingClient shipping.Client
	Mailer         *utils.EmailService
)

const (
	defaultCountry        = "India"
	defaultPickupLocation = "Primary"
)

type PlaceOrderItem struct {
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Units        int     `json:"units"`
	SellingPrice float64 `json:"selling_price"`
}

// PlaceOrderRequest is the denormalized checkout payload. Totals are taken
// as supplied; there is no cross-validation against the line items.
type PlaceOrderRequest struct {
	Name            string           `json:"name"`
	Address         string           `json:"address"`
	City            string           `json:"city"`
	Pincode         string           `json:"pincode"`
	State           string           `json:"state"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone"`
	Items           []PlaceOrderItem `json:"items"`
	PaymentMethod   string           `json:"payment_method"`
	ShippingCharges float64          `json:"shipping_charges"`
	SubTotal        float64          `json:"sub_total"`
	Length          float64          `json:"length"`
	Breadth         float64          `json:"breadth"`
	Height          float64          `json:"height"`
	Weight          float64          `json:"weight"`
	PickupLocation  string           `json:"pickup_location,omitempty"`
}

// orderFromPayload copies the checkout payload into a new order document
// with Pending/Processing defaults. Line items snapshot name and price so
// later catalog edits cannot alter this order.
func orderFromPayload(userID primitive.ObjectID, req PlaceOrderRequest, orderedAt time.Time) models.Order {
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		orderItem := models.OrderItem{
			ProductName: item.Name,
			Price:       item.SellingPrice,
			Quantity:    item.Units,
			ProductType: models.TypeBase,
		}
		// SKUs carry the catalog id when the client has one.
		if productID, err := primitive.ObjectIDFromHex(item.SKU); err == nil {
			orderItem.ProductID = productID
		}
		items = append(items, orderItem)
	}

	paymentMethod := models.PaymentMethod(req.PaymentMethod)
	if paymentMethod != models.PaymentOnline {
		paymentMethod = models.PaymentCOD
	}

	return models.Order{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Items:  items,
		DeliveryAddress: models.Address{
			FullName: req.Name,
			Phone:    req.Phone,
			Pincode:  req.Pincode,
			House:    req.Address,
			City:     req.City,
			State:    req.State,
			Type:     models.AddressHome,
		},
		TotalAmount:    req.SubTotal + req.ShippingCharges,
		PaymentStatus:  models.PaymentPending,
		DeliveryStatus: models.DeliveryProcessing,
		PaymentMethod:  paymentMethod,
		OrderedAt:      orderedAt,
	}
}

// buildShipmentRequest maps order fields onto the provider's field names.
// The order date is stamped with the current time, the country is fixed and
// the pickup location falls back to the configured default label.
func buildShipmentRequest(orderID string, req PlaceOrderRequest, now time.Time) shipping.CreateShipmentRequest {
	pickup := req.PickupLocation
	if pickup == "" {
		pickup = defaultPickupLocation
	}

	items := make([]shipping.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, shipping.OrderItem{
			Name:         item.Name,
			SKU:          item.SKU,
			Units:        item.Units,
			SellingPrice: item.SellingPrice,
		})
	}

	return shipping.CreateShipmentRequest{
		OrderID:             orderID,
		OrderDate:           now.Format("2006-01-02 15:04"),
		PickupLocation:      pickup,
		BillingCustomerName: req.Name,
		BillingAddress:      req.Address,
		BillingCity:         req.City,
		BillingPincode:      req.Pincode,
		BillingState:        req.State,
		BillingCountry:      defaultCountry,
		BillingEmail:        req.Email,
		BillingPhone:        req.Phone,
		ShippingIsBilling:   true,
		OrderItems:          items,
		PaymentMethod:       req.PaymentMethod,
		ShippingCharges:     req.ShippingCharges,
		SubTotal:            req.SubTotal,
		Length:              req.Length,
		Breadth:             req.Breadth,
		Height:              req.Height,
		Weight:              req.Weight,
	}
}

// PlaceOrder persists an order and runs the shipping workflow: create the
// shipment, fetch its label, attach the provider identifiers to the order.
// The steps are strictly sequential with no compensation; if the provider
// fails after the insert, the order stays persisted without identifiers and
// the client sees a 500.
func PlaceOrder(c echo.Context) error {
	userID, ok := c.Get("userID").(primitive.ObjectID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "User not authenticated"})
	}

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request format"})
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Order has no items"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	order := orderFromPayload(userID, req, time.Now())

	orders := database.DB.Collection("orders")
	if _, err := orders.InsertOne(ctx, order); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to create order"})
	}
	metrics.OrdersPlaced.Inc()

	shipmentReq := buildShipmentRequest(order.ID.Hex(), req, time.Now())

	created, err := ShippingClient.CreateShipment(ctx, shipmentReq)
	if err != nil {
		metrics.ShippingCalls.WithLabelValues("create", "error").Inc()
		log.Printf("order %s persisted without shipping identifiers: %v", order.ID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to create shipment"})
	}
	metrics.ShippingCalls.WithLabelValues("create", "ok").Inc()

	label, err := ShippingClient.GenerateLabel(ctx, created.ShipmentID)
	if err != nil {
		metrics.ShippingCalls.WithLabelValues("label", "error").Inc()
		log.Printf("order %s persisted without shipping identifiers: %v", order.ID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to generate shipping label"})
	}
	metrics.ShippingCalls.WithLabelValues("label", "ok").Inc()

	order.ShipmentID = created.ShipmentID
	order.ShiprocketOrderID = created.OrderID
	order.TrackingURL = label.LabelURL

	_, err = orders.UpdateOne(ctx,
		bson.M{"_id": order.ID},
		bson.M{"$set": bson.M{
			"shipmentId":        order.ShipmentID,
			"shiprocketOrderId": order.ShiprocketOrderID,
			"trackingUrl":       order.TrackingURL,
		}},
	)
	if err != nil {
		log.Printf("order %s: failed to attach shipping identifiers: %v", order.ID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update order"})
	}

	// Best-effort extras after the workflow proper: the embedded history
	// snapshot and the confirmation mail never fail the placement.
	if _, err := database.DB.Collection("users").UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"orderHistory": order.Snapshot()}},
	); err != nil {
		log.Printf("order %s: failed to append order history snapshot: %v", order.ID.Hex(), err)
	}
	if Mailer != nil && req.Email != "" {
		if err := Mailer.SendOrderConfirmation(req.Email, order); err != nil {
			log.Printf("order %s: confirmation email failed: %v", order.ID.Hex(), err)
		}
	}

	return c.JSON(http.StatusCreated, order)
}

// GetOrderStatus returns the live delivery status of an order.
func GetOrderStatus(c echo.Context) error {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid order ID"})
	}

	var order models.Order
	err = database.DB.Collection("orders").FindOne(c.Request().Context(), bson.M{"_id": orderID}).Decode(&order)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Order not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"deliveryStatus": order.DeliveryStatus,
		"paymentStatus":  order.PaymentStatus,
		"trackingUrl":    order.TrackingURL,
	})
}
