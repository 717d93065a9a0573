package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/darshan-mishra17/GoPrakritik-sub000/config"
)

var (
	ErrAuthentication = errors.New("shiprocket authentication failed")
	ErrCreateShipment = errors.New("shiprocket shipment creation failed")
	ErrGenerateLabel  = errors.New("shiprocket label generation failed")
)

// OrderItem is a line item in the provider's expected shape.
type OrderItem struct {
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Units        int     `json:"units"`
	SellingPrice float64 `json:"selling_price"`
}

// CreateShipmentRequest maps an order onto the provider's adhoc order fields.
type CreateShipmentRequest struct {
	OrderID             string      `json:"order_id"`
	OrderDate           string      `json:"order_date"`
	PickupLocation      string      `json:"pickup_location"`
	BillingCustomerName string      `json:"billing_customer_name"`
	BillingLastName     string      `json:"billing_last_name"`
	BillingAddress      string      `json:"billing_address"`
	BillingCity         string      `json:"billing_city"`
	BillingPincode      string      `json:"billing_pincode"`
	BillingState        string      `json:"billing_state"`
	BillingCountry      string      `json:"billing_country"`
	BillingEmail        string      `json:"billing_email"`
	BillingPhone        string      `json:"billing_phone"`
	ShippingIsBilling   bool        `json:"shipping_is_billing"`
	OrderItems          []OrderItem `json:"order_items"`
	PaymentMethod       string      `json:"payment_method"`
	ShippingCharges     float64     `json:"shipping_charges"`
	SubTotal            float64     `json:"sub_total"`
	Length              float64     `json:"length"`
	Breadth             float64     `json:"breadth"`
	Height              float64     `json:"height"`
	Weight              float64     `json:"weight"`
}

// CreateShipmentResponse carries the provider identifiers the workflow
// attaches to the local order.
type CreateShipmentResponse struct {
	OrderID    int64  `json:"order_id"`
	ShipmentID int64  `json:"shipment_id"`
	Status     string `json:"status"`
}

type LabelResponse struct {
	LabelCreated int    `json:"label_created"`
	LabelURL     string `json:"label_url"`
}

// Client is the shipping gateway. The live implementation talks to
// Shiprocket; the mock variant returns canned responses for development.
type Client interface {
	CreateShipment(ctx context.Context, req CreateShipmentRequest) (*CreateShipmentResponse, error)
	GenerateLabel(ctx context.Context, shipmentID int64) (*LabelResponse, error)
}

// Shiprocket wraps the provider's auth, order-creation and label endpoints.
// The auth token is cached for the process lifetime; the provider login is
// idempotent, so a duplicate first login would be wasteful but harmless.
type Shiprocket struct {
	baseURL  string
	email    string
	password string
	client   *http.Client

	mu    sync.Mutex
	token string
}

func NewShiprocket() *Shiprocket {
	return &Shiprocket{
		baseURL:  config.GetEnv("SHIPROCKET_BASE_URL", "https://apiv2.shiprocket.in"),
		email:    config.GetEnv("SHIPROCKET_EMAIL", ""),
		password: config.GetEnv("SHIPROCKET_PASSWORD", ""),
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// authenticate returns the cached token, logging in first if there is none.
func (s *Shiprocket) authenticate(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" {
		return s.token, nil
	}

	body, err := json.Marshal(map[string]string{
		"email":    s.email,
		"password": s.password,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	respBody, err := s.post(ctx, "/v1/external/auth/login", "", body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(respBody, &loginResp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	if loginResp.Token == "" {
		return "", fmt.Errorf("%w: empty token in response", ErrAuthentication)
	}

	s.token = loginResp.Token
	return s.token, nil
}

func (s *Shiprocket) CreateShipment(ctx context.Context, req CreateShipmentRequest) (*CreateShipmentResponse, error) {
	token, err := s.authenticate(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateShipment, err)
	}

	respBody, err := s.post(ctx, "/v1/external/orders/create/adhoc", token, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateShipment, err)
	}

	var created CreateShipmentResponse
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateShipment, err)
	}
	return &created, nil
}

func (s *Shiprocket) GenerateLabel(ctx context.Context, shipmentID int64) (*LabelResponse, error) {
	token, err := s.authenticate(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(map[string][]int64{
		"shipment_id": {shipmentID},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerateLabel, err)
	}

	respBody, err := s.post(ctx, "/v1/external/courier/generate/label", token, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerateLabel, err)
	}

	var label LabelResponse
	if err := json.Unmarshal(respBody, &label); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerateLabel, err)
	}
	return &label, nil
}

func (s *Shiprocket) post(ctx context.Context, path, token string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach shiprocket: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("shiprocket API error (%d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}
