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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetUsers lists every user, admin only. Password hashes never leave the database.
func GetUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.DB.Collection("users").Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"password": 0}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch users"})
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to decode users"})
	}

	return c.JSON(http.StatusOK, users)
}

func GetUser(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid user ID"})
	}

	var user models.User
	err = database.DB.Collection("users").FindOne(
		c.Request().Context(),
		bson.M{"_id": userID},
		options.FindOne().SetProjection(bson.M{"password": 0}),
	).Decode(&user)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
	}

	return c.JSON(http.StatusOK, user)
}

// stripProtectedFields removes the fields a profile update may never touch.
// Password changes and admin promotion have no self-service path.
func stripProtectedFields(update map[string]interface{}) map[string]interface{} {
	delete(update, "_id")
	delete(update, "id")
	delete(update, "password")
	delete(update, "isAdmin")
	delete(update, "orderHistory")
	delete(update, "googleId")
	return update
}

func UpdateUser(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid user ID"})
	}

	update := map[string]interface{}{}
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request format"})
	}

	update = stripProtectedFields(update)
	if len(update) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Nothing to update"})
	}
	update["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection("users").UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": update},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update user"})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
	}

	var user models.User
	err = database.DB.Collection("users").FindOne(ctx,
		bson.M{"_id": userID},
		options.FindOne().SetProjection(bson.M{"password": 0}),
	).Decode(&user)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "User updated"})
	}

	return c.JSON(http.StatusOK, user)
}

func DeleteUser(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid user ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection("users").DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to delete user"})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "User deleted"})
}

// AddAddress appends an address to the user's embedded list.
func AddAddress(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid user ID"})
	}

	var address models.Address
	if err := c.Bind(&address); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid address data"})
	}

	if address.ID.IsZero() {
		address.ID = primitive.NewObjectID()
	}
	if address.Type == "" {
		address.Type = models.AddressHome
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection("users").UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$push": bson.M{"addresses": address},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to add address"})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
	}

	return c.JSON(http.StatusCreated, address)
}

// UpdateAddress replaces the embedded address matched by its id.
func UpdateAddress(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid user ID"})
	}
	addressID, err := primitive.ObjectIDFromHex(c.Param("addressId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid address ID"})
	}

	var address models.Address
	if err := c.Bind(&address); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid address data"})
	}
	address.ID = addressID

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// The address id is part of the match so a missing address surfaces as
	// MatchedCount == 0 rather than a write that only touches updatedAt.
	result, err := database.DB.Collection("users").UpdateOne(ctx,
		bson.M{"_id": userID, "addresses._id": addressID},
		bson.M{"$set": bson.M{
			"addresses.$": address,
			"updatedAt":   time.Now(),
		}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update address"})
	}
	if result.MatchedCount == 0 {
		return addressNotFound(c, ctx, userID)
	}

	return c.JSON(http.StatusOK, address)
}

// addressNotFound picks the 404 message: the user may be gone entirely, or
// present without the requested embedded address.
func addressNotFound(c echo.Context, ctx context.Context, userID primitive.ObjectID) error {
	count, err := database.DB.Collection("users").CountDocuments(ctx, bson.M{"_id": userID})
	if err == nil && count == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
	}
	return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Address not found"})
}

// DeleteAddress pulls the embedded address by id.
func DeleteAddress(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid user ID"})
	}
	addressID, err := primitive.ObjectIDFromHex(c.Param("addressId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid address ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection("users").UpdateOne(ctx,
		bson.M{"_id": userID, "addresses._id": addressID},
		bson.M{
			"$pull": bson.M{"addresses": bson.M{"_id": addressID}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to delete address"})
	}
	if result.MatchedCount == 0 {
		return addressNotFound(c, ctx, userID)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Address deleted"})
}

// GetOrderHistory returns the user's embedded order snapshots. These are
// point-in-time copies; the orders collection is the source of truth.
func GetOrderHistory(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid user ID"})
	}

	var user models.User
	err = database.DB.Collection("users").FindOne(
		c.Request().Context(),
		bson.M{"_id": userID},
		options.FindOne().SetProjection(bson.M{"orderHistory": 1}),
	).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch order history"})
	}

	if user.OrderHistory == nil {
		user.OrderHistory = []models.OrderSnapshot{}
	}
	return c.JSON(http.StatusOK, user.OrderHistory)
}

// GetOrderHistoryEntry returns one snapshot from the embedded history.
func GetOrderHistoryEntry(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid user ID"})
	}
	orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid order ID"})
	}

	var user models.User
	err = database.DB.Collection("users").FindOne(
		c.Request().Context(),
		bson.M{"_id": userID},
		options.FindOne().SetProjection(bson.M{"orderHistory": 1}),
	).Decode(&user)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
	}

	for _, snapshot := range user.OrderHistory {
		if snapshot.OrderID == orderID {
			return c.JSON(http.StatusOK, snapshot)
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Order not found in history"})
}
