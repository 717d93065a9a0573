package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductCategory string

const (
	CategorySpice  ProductCategory = "spice"
	CategoryAttar  ProductCategory = "attar"
	CategoryOil    ProductCategory = "oil"
	CategoryHoney  ProductCategory = "honey"
	CategoryHerbal ProductCategory = "herbal"
)

// ProductType discriminates the catalog union. Every document carries the
// common Product fields; spice and attar documents additionally carry their
// typed details payload.
type ProductType string

const (
	TypeBase  ProductType = "base"
	TypeSpice ProductType = "spice"
	TypeAttar ProductType = "attar"
)

type AttarIntensity string

const (
	IntensityMild     AttarIntensity = "mild"
	IntensityModerate AttarIntensity = "moderate"
	IntensityStrong   AttarIntensity = "strong"
)

// Variant is a priced unit option, identified by its position in the list.
type Variant struct {
	Unit  string  `bson:"unit" json:"unit"`
	Price float64 `bson:"price" json:"price"`
}

type Benefit struct {
	Description string `bson:"description" json:"description"`
}

// VariantBenefits lists the benefits claimed for one named spice variant.
type VariantBenefits struct {
	VariantName string    `bson:"variantName" json:"variantName"`
	Benefits    []Benefit `bson:"benefits" json:"benefits"`
}

type SpiceDetails struct {
	VariantBenefits []VariantBenefits `bson:"variantBenefits" json:"variantBenefits"`
}

type AttarDetails struct {
	FragranceNotes []string       `bson:"fragranceNotes" json:"fragranceNotes"`
	Intensity      AttarIntensity `bson:"intensity" json:"intensity"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Category    ProductCategory    `bson:"category" json:"category"`
	Description string             `bson:"description" json:"description"`
	Variants    []Variant          `bson:"variants" json:"variants"`
	Benefits    []Benefit          `bson:"benefits" json:"benefits"`
	Processing  string             `bson:"processing,omitempty" json:"processing,omitempty"`
	Usage       string             `bson:"usage,omitempty" json:"usage,omitempty"`
	Featured    bool               `bson:"featured" json:"featured"`
	Type        ProductType        `bson:"type" json:"type"`
	Spice       *SpiceDetails      `bson:"spice,omitempty" json:"spice,omitempty"`
	Attar       *AttarDetails      `bson:"attar,omitempty" json:"attar,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
