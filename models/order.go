package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentFailed  PaymentStatus = "Failed"
)

type DeliveryStatus string

const (
	DeliveryProcessing DeliveryStatus = "Processing"
	DeliveryShipped    DeliveryStatus = "Shipped"
	DeliveryDelivered  DeliveryStatus = "Delivered"
	DeliveryCancelled  DeliveryStatus = "Cancelled"
)

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "COD"
	PaymentOnline PaymentMethod = "Online"
)

// OrderItem snapshots name and price at purchase time so later catalog edits
// cannot alter historical orders.
type OrderItem struct {
	ProductID   primitive.ObjectID `bson:"productId" json:"productId"`
	ProductName string             `bson:"productName" json:"productName"`
	Unit        string             `bson:"unit" json:"unit"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	ProductType ProductType        `bson:"productType" json:"productType"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Items           []OrderItem        `bson:"items" json:"items"`
	DeliveryAddress Address            `bson:"deliveryAddress" json:"deliveryAddress"`
	TotalAmount     float64            `bson:"totalAmount" json:"totalAmount"`
	PaymentStatus   PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	DeliveryStatus  DeliveryStatus     `bson:"deliveryStatus" json:"deliveryStatus"`
	PaymentMethod   PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	OrderedAt       time.Time          `bson:"orderedAt" json:"orderedAt"`
	DeliveredAt     *time.Time         `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`

	// Provider identifiers, attached by the shipping workflow after creation.
	ShipmentID        int64  `bson:"shipmentId,omitempty" json:"shipmentId,omitempty"`
	ShiprocketOrderID int64  `bson:"shiprocketOrderId,omitempty" json:"shiprocketOrderId,omitempty"`
	TrackingURL       string `bson:"trackingUrl,omitempty" json:"trackingUrl,omitempty"`
}

// OrderSnapshot is the denormalized copy embedded in the owning user's
// orderHistory. It is written once at placement and never resynchronized;
// the orders collection stays the source of truth.
type OrderSnapshot struct {
	OrderID        primitive.ObjectID `bson:"orderId" json:"orderId"`
	Items          []OrderItem        `bson:"items" json:"items"`
	TotalAmount    float64            `bson:"totalAmount" json:"totalAmount"`
	PaymentStatus  PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	DeliveryStatus DeliveryStatus     `bson:"deliveryStatus" json:"deliveryStatus"`
	PaymentMethod  PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	OrderedAt      time.Time          `bson:"orderedAt" json:"orderedAt"`
}

// Snapshot copies the fields of o that the embedded history keeps.
func (o Order) Snapshot() OrderSnapshot {
	items := make([]OrderItem, len(o.Items))
	copy(items, o.Items)
	return OrderSnapshot{
		OrderID:        o.ID,
		Items:          items,
		TotalAmount:    o.TotalAmount,
		PaymentStatus:  o.PaymentStatus,
		DeliveryStatus: o.DeliveryStatus,
		PaymentMethod:  o.PaymentMethod,
		OrderedAt:      o.OrderedAt,
	}
}
