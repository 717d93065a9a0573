package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/darshan-mishra17/GoPrakritik-sub000/config"
	"github.com/darshan-mishra17/GoPrakritik-sub000/database"
	"github.com/darshan-mishra17/GoPrakritik-sub000/models"
	"github.com/darshan-mishra17/GoPrakritik-sub000/utils"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// Register creates a user account and issues a session token.
func Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request format"})
	}

	if missing := missingRegisterFields(req); len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Missing required fields: " + strings.Join(missing, ", "),
		})
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Email and phone are each unique across users.
	collection := database.DB.Collection("users")
	existing := collection.FindOne(ctx, bson.M{
		"$or": []bson.M{
			{"email": req.Email},
			{"phone": req.Phone},
		},
	})
	if existing.Err() == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Email or phone already registered"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to process password"})
	}

	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Password:     string(hashedPassword),
		Addresses:    []models.Address{},
		OrderHistory: []models.OrderSnapshot{},
		Cart:         []models.CartItem{},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if _, err := collection.InsertOne(ctx, user); err != nil {
		// The unique indexes catch the race where two registrations pass the
		// duplicate check concurrently.
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Email or phone already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to create user"})
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.IsAdmin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to generate token"})
	}

	user.Password = ""
	return c.JSON(http.StatusCreated, echo.Map{"token": token, "user": user})
}

func missingRegisterFields(req RegisterRequest) []string {
	var missing []string
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if req.Password == "" {
		missing = append(missing, "password")
	}
	if req.Phone == "" {
		missing = append(missing, "phone")
	}
	return missing
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password produce the same response.
func Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request format"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.DB.Collection("users").FindOne(ctx, bson.M{
		"email": strings.ToLower(strings.TrimSpace(req.Email)),
	}).Decode(&user)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid email or password"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid email or password"})
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.IsAdmin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to generate token"})
	}

	user.Password = ""
	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": user})
}

// GoogleLogin exchanges a verified Google ID token for a session token.
// First-seen identities get a user record auto-provisioned; an existing
// account matched by email gets the Google identity backfilled.
func GoogleLogin(c echo.Context) error {
	var req struct {
		Credential string `json:"credential"`
	}
	if err := c.Bind(&req); err != nil || req.Credential == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Missing credential"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	payload, err := idtoken.Validate(ctx, req.Credential, config.GetEnv("GOOGLE_CLIENT_ID", ""))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid Google credential"})
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Google credential has no email"})
	}
	email = strings.ToLower(email)

	collection := database.DB.Collection("users")

	var user models.User
	err = collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		// Auto-provision. Google identities carry no phone number, and phone
		// is unique, so synthesize a placeholder.
		user = models.User{
			ID:           primitive.NewObjectID(),
			Name:         name,
			Email:        email,
			Phone:        "google-" + uuid.NewString(),
			GoogleID:     payload.Subject,
			Addresses:    []models.Address{},
			OrderHistory: []models.OrderSnapshot{},
			Cart:         []models.CartItem{},
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if _, err := collection.InsertOne(ctx, user); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to create user"})
		}
	} else if user.GoogleID == "" {
		_, err = collection.UpdateOne(ctx,
			bson.M{"_id": user.ID},
			bson.M{"$set": bson.M{"googleId": payload.Subject, "updatedAt": time.Now()}},
		)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to link Google account"})
		}
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.IsAdmin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to generate token"})
	}

	user.Password = ""
	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": user})
}
