package shipping

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockCannedIdentifiers(t *testing.T) {
	m := NewMock()

	created, err := m.CreateShipment(context.Background(), CreateShipmentRequest{OrderID: "o-1"})
	require.NoError(t, err)
	assert.EqualValues(t, 888888, created.ShipmentID)
	assert.EqualValues(t, 999999, created.OrderID)

	label, err := m.GenerateLabel(context.Background(), created.ShipmentID)
	require.NoError(t, err)
	assert.Equal(t, 1, label.LabelCreated)
	assert.Contains(t, label.LabelURL, "mocked-tracking-id")
}
