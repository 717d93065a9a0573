package routes

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/darshan-mishra17/GoPrakritik-sub000/shipping"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The mock provider endpoints mirror the provider's real paths, so the live
// client pointed at <self>/mock/shiprocket must complete the whole
// login → create → label sequence against them.
func TestLiveClientAgainstMockProviderRoutes(t *testing.T) {
	t.Setenv("SHIPROCKET_MODE", "mock")

	e := echo.New()
	SetupRoutes(e)

	srv := httptest.NewServer(e)
	defer srv.Close()

	t.Setenv("SHIPROCKET_BASE_URL", srv.URL+"/mock/shiprocket")
	t.Setenv("SHIPROCKET_EMAIL", "dev@example.com")
	t.Setenv("SHIPROCKET_PASSWORD", "dev")

	client := shipping.NewShiprocket()
	ctx := context.Background()

	created, err := client.CreateShipment(ctx, shipping.CreateShipmentRequest{OrderID: "o-1"})
	require.NoError(t, err)
	assert.Equal(t, shipping.MockOrderID, created.OrderID)
	assert.Equal(t, shipping.MockShipmentID, created.ShipmentID)

	label, err := client.GenerateLabel(ctx, created.ShipmentID)
	require.NoError(t, err)
	assert.Contains(t, label.LabelURL, "mocked-tracking-id")
}
