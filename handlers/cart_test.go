package handlers

import (
	"testing"

	"github.com/darshan-mishra17/GoPrakritik-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUpsertCartLineOverwritesQuantity(t *testing.T) {
	productID := primitive.NewObjectID()

	cart := upsertCartLine(nil, models.CartItem{ProductID: productID, Quantity: 2, SelectedVariant: 0})
	cart = upsertCartLine(cart, models.CartItem{ProductID: productID, Quantity: 5, SelectedVariant: 0})

	require.Len(t, cart, 1)
	assert.Equal(t, productID, cart[0].ProductID)
	assert.Equal(t, 0, cart[0].SelectedVariant)
	assert.Equal(t, 5, cart[0].Quantity, "re-adding the same pair must overwrite, not accumulate")
}

func TestUpsertCartLineDistinctVariantsCoexist(t *testing.T) {
	productID := primitive.NewObjectID()

	cart := upsertCartLine(nil, models.CartItem{ProductID: productID, Quantity: 1, SelectedVariant: 0})
	cart = upsertCartLine(cart, models.CartItem{ProductID: productID, Quantity: 3, SelectedVariant: 1})

	require.Len(t, cart, 2)
	assert.Equal(t, 1, cart[0].Quantity)
	assert.Equal(t, 3, cart[1].Quantity)
}

func TestUpsertCartLineAppendsNewProduct(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	cart := upsertCartLine(nil, models.CartItem{ProductID: first, Quantity: 1})
	cart = upsertCartLine(cart, models.CartItem{ProductID: second, Quantity: 2})

	require.Len(t, cart, 2)
}

func TestRemoveCartLine(t *testing.T) {
	productID := primitive.NewObjectID()
	other := primitive.NewObjectID()
	cart := []models.CartItem{
		{ProductID: productID, Quantity: 2, SelectedVariant: 0},
		{ProductID: other, Quantity: 1, SelectedVariant: 1},
	}

	filtered, removed := removeCartLine(cart, productID, 0)
	require.True(t, removed)
	require.Len(t, filtered, 1)
	assert.Equal(t, other, filtered[0].ProductID)
}

func TestRemoveCartLineMissingPairLeavesCartUnchanged(t *testing.T) {
	productID := primitive.NewObjectID()
	cart := []models.CartItem{{ProductID: productID, Quantity: 2, SelectedVariant: 0}}

	// Same product, different variant index: no match.
	filtered, removed := removeCartLine(cart, productID, 1)
	assert.False(t, removed)
	assert.Equal(t, cart, filtered)

	filtered, removed = removeCartLine(cart, primitive.NewObjectID(), 0)
	assert.False(t, removed)
	assert.Equal(t, cart, filtered)
}
