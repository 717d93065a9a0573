package handlers

import (
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
)

func TestStripProtectedFields(t *testing.T) {
	update := map[string]interface{}{
		"name":     "New Name",
		"phone":    "9876543210",
		"password": "sneaky",
		"isAdmin":  true,
		"_id":      "000000000000000000000000",
		"googleId": "12345",
	}

	stripped := stripProtectedFields(update)

	assert.Equal(t, "New Name", stripped["name"])
	assert.Equal(t, "9876543210", stripped["phone"])
	assert.NotContains(t, stripped, "password")
	assert.NotContains(t, stripped, "isAdmin")
	assert.NotContains(t, stripped, "_id")
	assert.NotContains(t, stripped, "googleId")
}

func TestStripProtectedFieldsEmptyPayload(t *testing.T) {
	stripped := stripProtectedFields(map[string]interface{}{
		"password": "x",
		"isAdmin":  true,
	})
	assert.Empty(t, stripped)
}

func addressContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("userId", "addressId")
	c.SetParamValues(primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex())
	return c, rec
}

// matchedNothing is an update reply where neither the user-and-address
// filter nor the write touched anything.
func matchedNothing() bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: 0},
		bson.E{Key: "nModified", Value: 0},
	)
}

func countReply(count int64) []bson.D {
	if count == 0 {
		return []bson.D{mtest.CreateCursorResponse(0, "goprakritik.users", mtest.FirstBatch)}
	}
	return []bson.D{mtest.CreateCursorResponse(0, "goprakritik.users", mtest.FirstBatch,
		bson.D{{Key: "n", Value: count}})}
}

func TestUpdateAddressMissingAddressIsNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("user exists, address id does not", func(mt *mtest.T) {
		database.DB = mt.DB
		mt.AddMockResponses(matchedNothing())
		mt.AddMockResponses(countReply(1)...)

		c, rec := addressContext(http.MethodPut, `{"fullName":"Asha Verma","city":"Jaipur"}`)
		require.NoError(t, UpdateAddress(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Address not found")
	})

	mt.Run("user missing entirely", func(mt *mtest.T) {
		database.DB = mt.DB
		mt.AddMockResponses(matchedNothing())
		mt.AddMockResponses(countReply(0)...)

		c, rec := addressContext(http.MethodPut, `{"fullName":"Asha Verma"}`)
		require.NoError(t, UpdateAddress(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "User not found")
	})
}

func TestDeleteAddressMissingAddressIsNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("user exists, address id does not", func(mt *mtest.T) {
		database.DB = mt.DB
		mt.AddMockResponses(matchedNothing())
		mt.AddMockResponses(countReply(1)...)

		c, rec := addressContext(http.MethodDelete, "")
		require.NoError(t, DeleteAddress(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Address not found")
	})

	mt.Run("existing address is deleted", func(mt *mtest.T) {
		database.DB = mt.DB
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		c, rec := addressContext(http.MethodDelete, "")
		require.NoError(t, DeleteAddress(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Address deleted")
	})
}
