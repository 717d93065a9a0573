package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/darshan-mishra17/GoPrakritik-sub000/database"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"golang.org/x/crypto/bcrypt"
)

func postJSON(path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("existing email or phone", func(mt *mtest.T) {
		mt.Setenv("JWT_SECRET", "test-secret")
		database.DB = mt.DB

		// The duplicate lookup finds an existing user.
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "goprakritik.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "asha@example.com"},
			{Key: "phone", Value: "9876543210"},
		}))

		c, rec := postJSON("/register",
			`{"name":"Asha","email":"asha@example.com","password":"secret123","phone":"9876543210"}`)
		require.NoError(t, Register(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
	})
}

func TestRegisterInsertFailures(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	// The duplicate check passes, then the insert itself fails.
	mt.Run("concurrent duplicate hits the unique index", func(mt *mtest.T) {
		mt.Setenv("JWT_SECRET", "test-secret")
		database.DB = mt.DB
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "goprakritik.users", mtest.FirstBatch))
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		c, rec := postJSON("/register",
			`{"name":"Asha","email":"asha@example.com","password":"secret123","phone":"9876543210"}`)
		require.NoError(t, Register(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "already registered")
	})

	mt.Run("non-duplicate insert failure is a server error", func(mt *mtest.T) {
		mt.Setenv("JWT_SECRET", "test-secret")
		database.DB = mt.DB
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "goprakritik.users", mtest.FirstBatch))
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    8,
			Message: "UnknownError",
		}))

		c, rec := postJSON("/register",
			`{"name":"Asha","email":"asha@example.com","password":"secret123","phone":"9876543210"}`)
		require.NoError(t, Register(c))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to create user")
	})
}

func TestRegisterMissingFields(t *testing.T) {
	c, rec := postJSON("/register", `{"email":"asha@example.com"}`)
	require.NoError(t, Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name")
	assert.Contains(t, rec.Body.String(), "password")
	assert.Contains(t, rec.Body.String(), "phone")
	assert.NotContains(t, rec.Body.String(), `"email"`)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	userDoc := bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "name", Value: "Asha"},
		{Key: "email", Value: "asha@example.com"},
		{Key: "password", Value: string(hash)},
		{Key: "isAdmin", Value: false},
	}

	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("correct credentials", func(mt *mtest.T) {
		mt.Setenv("JWT_SECRET", "test-secret")
		database.DB = mt.DB
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "goprakritik.users", mtest.FirstBatch, userDoc))

		c, rec := postJSON("/login", `{"email":"asha@example.com","password":"secret123"}`)
		require.NoError(t, Login(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body["token"])
	})

	mt.Run("wrong password", func(mt *mtest.T) {
		mt.Setenv("JWT_SECRET", "test-secret")
		database.DB = mt.DB
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "goprakritik.users", mtest.FirstBatch, userDoc))

		c, rec := postJSON("/login", `{"email":"asha@example.com","password":"wrong"}`)
		require.NoError(t, Login(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid email or password")
	})

	mt.Run("unknown email", func(mt *mtest.T) {
		mt.Setenv("JWT_SECRET", "test-secret")
		database.DB = mt.DB
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "goprakritik.users", mtest.FirstBatch))

		c, rec := postJSON("/login", `{"email":"nobody@example.com","password":"secret123"}`)
		require.NoError(t, Login(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		// Same message as a wrong password: no hint about which was wrong.
		assert.Contains(t, rec.Body.String(), "Invalid email or password")
	})
}
