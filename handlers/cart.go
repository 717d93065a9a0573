package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/darshan-mishra17/GoPrakritik-sub000/database"
	"github.com/darshan-mishra17/GoPrakritik-sub000/models"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// upsertCartLine applies the cart's overwrite semantics: an existing
// (productId, variant) pair gets its quantity replaced, anything else is
// appended.
func upsertCartLine(cart []models.CartItem, item models.CartItem) []models.CartItem {
	for i, existing := range cart {
		if existing.ProductID == item.ProductID && existing.SelectedVariant == item.SelectedVariant {
			cart[i].Quantity = item.Quantity
			return cart
		}
	}
	return append(cart, item)
}

// removeCartLine filters out the matching pair. The second return value
// reports whether anything was removed.
func removeCartLine(cart []models.CartItem, productID primitive.ObjectID, variant int) ([]models.CartItem, bool) {
	filtered := make([]models.CartItem, 0, len(cart))
	for _, item := range cart {
		if item.ProductID == productID && item.SelectedVariant == variant {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered, len(filtered) != len(cart)
}

type cartLineRequest struct {
	ProductID       string `json:"productId"`
	Quantity        int    `json:"quantity"`
	SelectedVariant int    `json:"selectedVariant"`
}

type resolvedCartItem struct {
	Product         models.Product `json:"product"`
	Quantity        int            `json:"quantity"`
	SelectedVariant int            `json:"selectedVariant"`
}

// GetCart returns the user's cart with product references resolved to
// catalog documents for display.
func GetCart(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid user ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err = database.DB.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
	}

	products := database.DB.Collection("products")
	resolved := []resolvedCartItem{}
	for _, item := range user.Cart {
		var product models.Product
		if err := products.FindOne(ctx, bson.M{"_id": item.ProductID}).Decode(&product); err != nil {
			// A product may have been deleted from the catalog since it was
			// carted; skip the dangling reference.
			continue
		}
		resolved = append(resolved, resolvedCartItem{
			Product:         product,
			Quantity:        item.Quantity,
			SelectedVariant: item.SelectedVariant,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"items": resolved})
}

// UpsertCartItem adds a line or overwrites the quantity of an existing
// (product, variant) pair.
func UpsertCartItem(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid user ID"})
	}

	var req cartLineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request format"})
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid product ID"})
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}
	if req.SelectedVariant < 0 {
		req.SelectedVariant = 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// The carted product must exist.
	count, err := database.DB.Collection("products").CountDocuments(ctx, bson.M{"_id": productID})
	if err != nil || count == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Product not found"})
	}

	var user models.User
	err = database.DB.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
	}

	cart := upsertCartLine(user.Cart, models.CartItem{
		ProductID:       productID,
		Quantity:        req.Quantity,
		SelectedVariant: req.SelectedVariant,
	})

	_, err = database.DB.Collection("users").UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"cart": cart, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update cart"})
	}

	return c.JSON(http.StatusOK, echo.Map{"cart": cart})
}

// RemoveCartItem deletes the line matching (productId, selectedVariant).
// A missing pair is NotFound and the cart stays untouched.
func RemoveCartItem(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid user ID"})
	}

	var req cartLineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request format"})
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid product ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err = database.DB.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
	}

	cart, removed := removeCartLine(user.Cart, productID, req.SelectedVariant)
	if !removed {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Item not found in cart"})
	}

	_, err = database.DB.Collection("users").UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"cart": cart, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update cart"})
	}

	return c.JSON(http.StatusOK, echo.Map{"cart": cart})
}
