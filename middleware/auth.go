package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/darshan-mishra17/GoPrakritik-sub000/database"
	"github.com/darshan-mishra17/GoPrakritik-sub000/models"
	"github.com/darshan-mishra17/GoPrakritik-sub000/utils"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthMiddleware verifies the session token and attaches the resolved user
// identity to the request context. The token comes from the Authorization
// header or, failing that, the token cookie.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Missing authentication token"})
		}

		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, utils.ErrTokenExpired) {
				message = "Token expired"
			}
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": message})
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid token"})
		}

		// The token may outlive its user; re-resolve on every request.
		var user models.User
		err = database.DB.Collection("users").FindOne(
			c.Request().Context(),
			bson.M{"_id": userID},
		).Decode(&user)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "User no longer exists"})
		}

		c.Set("userID", user.ID)
		c.Set("isAdmin", user.IsAdmin)
		return next(c)
	}
}

// AdminMiddleware gates admin-only routes. It must run after AuthMiddleware.
func AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		isAdmin, ok := c.Get("isAdmin").(bool)
		if !ok || !isAdmin {
			return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "Admin access required"})
		}
		return next(c)
	}
}

func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie("token")
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}
