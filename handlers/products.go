package handlers

import (
	"context"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/darshan-mishra17/GoPrakritik-sub000/database"
	"github.com/darshan-mishra17/GoPrakritik-sub000/models"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultPageSize = 12

// validateProduct collects the names of required fields that are missing.
func validateProduct(p models.Product) []string {
	var missing []string
	if p.Name == "" {
		missing = append(missing, "name")
	}
	if p.Category == "" {
		missing = append(missing, "category")
	}
	if p.Description == "" {
		missing = append(missing, "description")
	}
	switch p.Type {
	case models.TypeSpice:
		if p.Spice == nil {
			missing = append(missing, "spice")
		}
	case models.TypeAttar:
		if p.Attar == nil {
			missing = append(missing, "attar")
		}
	}
	return missing
}

func validationError(c echo.Context, missing []string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"success": false,
		"message": "Missing required fields: " + strings.Join(missing, ", "),
	})
}

// ciSubstring builds a case-insensitive substring regex for a user-supplied
// term. The term is quoted so filter input cannot inject regex syntax.
func ciSubstring(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

type listParams struct {
	Categories []string
	Featured   *bool
	Name       string
	MinPrice   *float64
	MaxPrice   *float64
	Sort       string
	Page       int64
	Limit      int64
}

func parseListParams(c echo.Context) listParams {
	p := listParams{Sort: c.QueryParam("sort"), Page: 1, Limit: defaultPageSize}

	if raw := c.QueryParam("category"); raw != "" {
		for _, cat := range strings.Split(raw, ",") {
			if cat = strings.TrimSpace(cat); cat != "" {
				p.Categories = append(p.Categories, cat)
			}
		}
	}
	if raw := c.QueryParam("featured"); raw != "" {
		if featured, err := strconv.ParseBool(raw); err == nil {
			p.Featured = &featured
		}
	}
	p.Name = c.QueryParam("name")
	if raw := c.QueryParam("minPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			p.MinPrice = &v
		}
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			p.MaxPrice = &v
		}
	}
	if raw := c.QueryParam("page"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 {
			p.Page = v
		}
	}
	if raw := c.QueryParam("limit"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 {
			p.Limit = v
		}
	}
	return p
}

// buildProductFilter translates list parameters into a Mongo filter. Price
// bounds are inclusive and match products with at least one variant priced
// inside the window.
func buildProductFilter(p listParams) bson.M {
	filter := bson.M{}
	if len(p.Categories) > 0 {
		filter["category"] = bson.M{"$in": p.Categories}
	}
	if p.Featured != nil {
		filter["featured"] = *p.Featured
	}
	if p.Name != "" {
		filter["name"] = ciSubstring(p.Name)
	}
	if p.MinPrice != nil || p.MaxPrice != nil {
		price := bson.M{}
		if p.MinPrice != nil {
			price["$gte"] = *p.MinPrice
		}
		if p.MaxPrice != nil {
			price["$lte"] = *p.MaxPrice
		}
		filter["variants"] = bson.M{"$elemMatch": bson.M{"price": price}}
	}
	return filter
}

// sortOrder maps the four supported sort keys onto Mongo sort documents.
// Price sorts use the first variant, the display price.
func sortOrder(sort string) bson.D {
	switch sort {
	case "price_asc":
		return bson.D{{Key: "variants.0.price", Value: 1}}
	case "price_desc":
		return bson.D{{Key: "variants.0.price", Value: -1}}
	case "oldest":
		return bson.D{{Key: "createdAt", Value: 1}}
	default: // newest
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

func pageCount(total, limit int64) int64 {
	if limit <= 0 {
		return 0
	}
	return int64(math.Ceil(float64(total) / float64(limit)))
}

// GetProducts lists the catalog with filtering, sorting and pagination.
func GetProducts(c echo.Context) error {
	params := parseListParams(c)
	filter := buildProductFilter(params)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := database.DB.Collection("products")
	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to count products"})
	}

	opts := options.Find().
		SetSort(sortOrder(params.Sort)).
		SetSkip((params.Page - 1) * params.Limit).
		SetLimit(params.Limit)

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch products"})
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to decode products"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"products": products,
		"total":    total,
		"page":     params.Page,
		"pages":    pageCount(total, params.Limit),
	})
}

func GetProduct(c echo.Context) error {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid product ID"})
	}

	var product models.Product
	err = database.DB.Collection("products").FindOne(c.Request().Context(), bson.M{"_id": productID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch product"})
	}

	return c.JSON(http.StatusOK, product)
}

func createProduct(c echo.Context, productType models.ProductType) error {
	var product models.Product
	if err := c.Bind(&product); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request format"})
	}

	product.Type = productType
	if missing := validateProduct(product); len(missing) > 0 {
		return validationError(c, missing)
	}

	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := database.DB.Collection("products").InsertOne(ctx, product); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to create product"})
	}

	return c.JSON(http.StatusCreated, product)
}

func CreateProduct(c echo.Context) error {
	return createProduct(c, models.TypeBase)
}

// CreateSpice creates a spice product carrying per-variant benefit lists.
func CreateSpice(c echo.Context) error {
	return createProduct(c, models.TypeSpice)
}

// CreateAttar creates a fragrance product carrying notes and intensity.
func CreateAttar(c echo.Context) error {
	return createProduct(c, models.TypeAttar)
}

// UpdateProduct applies a partial field replace, re-validating the merged
// document before writing.
func UpdateProduct(c echo.Context) error {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid product ID"})
	}

	update := map[string]interface{}{}
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request format"})
	}
	delete(update, "_id")
	delete(update, "id")
	delete(update, "createdAt")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := database.DB.Collection("products")

	var existing models.Product
	if err := collection.FindOne(ctx, bson.M{"_id": productID}).Decode(&existing); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Product not found"})
	}

	if missing := validateMergedProduct(existing, update); len(missing) > 0 {
		return validationError(c, missing)
	}

	update["updatedAt"] = time.Now()
	if _, err := collection.UpdateOne(ctx, bson.M{"_id": productID}, bson.M{"$set": update}); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update product"})
	}

	var updated models.Product
	if err := collection.FindOne(ctx, bson.M{"_id": productID}).Decode(&updated); err != nil {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Product updated"})
	}
	return c.JSON(http.StatusOK, updated)
}

// validateMergedProduct checks the required fields as they would read after
// the partial update is applied.
func validateMergedProduct(existing models.Product, update map[string]interface{}) []string {
	merged := existing
	if v, ok := update["name"].(string); ok {
		merged.Name = v
	}
	if v, ok := update["category"].(string); ok {
		merged.Category = models.ProductCategory(v)
	}
	if v, ok := update["description"].(string); ok {
		merged.Description = v
	}
	return validateProduct(merged)
}

func DeleteProduct(c echo.Context) error {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid product ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection("products").DeleteOne(ctx, bson.M{"_id": productID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to delete product"})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Product not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Product deleted"})
}

// buildSpiceFilter matches spices whose variant names or nested benefit
// descriptions contain the term.
func buildSpiceFilter(term string) bson.M {
	filter := bson.M{"type": models.TypeSpice}
	if term != "" {
		re := ciSubstring(term)
		filter["$or"] = []bson.M{
			{"spice.variantBenefits.variantName": re},
			{"spice.variantBenefits.benefits.description": re},
		}
	}
	return filter
}

// buildAttarFilter matches fragrance notes by substring and intensity exactly.
func buildAttarFilter(notes, intensity string) bson.M {
	filter := bson.M{"type": models.TypeAttar}
	if notes != "" {
		filter["attar.fragranceNotes"] = ciSubstring(notes)
	}
	if intensity != "" {
		filter["attar.intensity"] = intensity
	}
	return filter
}

func findProducts(c echo.Context, filter bson.M) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.DB.Collection("products").Find(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch products"})
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to decode products"})
	}

	return c.JSON(http.StatusOK, echo.Map{"products": products})
}

func FilterSpices(c echo.Context) error {
	return findProducts(c, buildSpiceFilter(c.QueryParam("q")))
}

func FilterAttars(c echo.Context) error {
	return findProducts(c, buildAttarFilter(c.QueryParam("notes"), c.QueryParam("intensity")))
}
