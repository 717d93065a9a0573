package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AddressType string

const (
	AddressHome AddressType = "Home"
	AddressWork AddressType = "Work"
)

// Address is embedded in its owning user; the ObjectID only has meaning
// inside that user's addresses array.
type Address struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName string             `bson:"fullName" json:"fullName"`
	Phone    string             `bson:"phone" json:"phone"`
	Pincode  string             `bson:"pincode" json:"pincode"`
	House    string             `bson:"house" json:"house"`
	Area     string             `bson:"area" json:"area"`
	Landmark string             `bson:"landmark,omitempty" json:"landmark,omitempty"`
	City     string             `bson:"city" json:"city"`
	State    string             `bson:"state" json:"state"`
	Type     AddressType        `bson:"type" json:"type"`
}

// CartItem refers to a product variant by the variant's index. Entries are
// unique by (ProductID, SelectedVariant); re-adding a pair overwrites the
// quantity instead of duplicating the line.
type CartItem struct {
	ProductID       primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity        int                `bson:"quantity" json:"quantity"`
	SelectedVariant int                `bson:"selectedVariant" json:"selectedVariant"`
}

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone" json:"phone"`
	Password     string             `bson:"password,omitempty" json:"-"`
	Addresses    []Address          `bson:"addresses" json:"addresses"`
	OrderHistory []OrderSnapshot    `bson:"orderHistory" json:"orderHistory"`
	Cart         []CartItem         `bson:"cart" json:"cart"`
	IsAdmin      bool               `bson:"isAdmin" json:"isAdmin"`
	GoogleID     string             `bson:"googleId,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
