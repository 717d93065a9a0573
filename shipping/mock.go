package shipping

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Canned identifiers returned by the mock provider.
const (
	MockShipmentID = int64(888888)
	MockOrderID    = int64(999999)
)

// Mock is the development stand-in for the live provider. It never leaves
// the process and always succeeds. Selecting it is a configuration-time
// decision (SHIPROCKET_MODE=mock), not a runtime fallback.
type Mock struct{}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) CreateShipment(ctx context.Context, req CreateShipmentRequest) (*CreateShipmentResponse, error) {
	return &CreateShipmentResponse{
		OrderID:    MockOrderID,
		ShipmentID: MockShipmentID,
		Status:     "NEW",
	}, nil
}

func (m *Mock) GenerateLabel(ctx context.Context, shipmentID int64) (*LabelResponse, error) {
	return &LabelResponse{
		LabelCreated: 1,
		LabelURL:     fmt.Sprintf("https://shiprocket.co/labels/mocked-tracking-id-%s.pdf", uuid.NewString()),
	}, nil
}
