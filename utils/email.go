package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/darshan-mishra17/GoPrakritik-sub000/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService sends transactional mail through SendGrid. It is optional:
// without SENDGRID_API_KEY every send is a no-op.
type EmailService struct {
	client *sendgrid.Client
	sender string
}

func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		log.Println("SENDGRID_API_KEY not set, order emails disabled")
		return &EmailService{}
	}
	return &EmailService{
		client: sendgrid.NewSendClient(apiKey),
		sender: os.Getenv("EMAIL_SENDER"),
	}
}

func (es *EmailService) send(toEmail, subject, htmlContent string) error {
	if es.client == nil {
		return nil
	}
	from := mail.NewEmail("GoPrakritik", es.sender)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, htmlContent, htmlContent)
	resp, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// SendOrderConfirmation mails a summary of a freshly placed order. Errors are
// returned for logging only; order placement never fails on mail.
func (es *EmailService) SendOrderConfirmation(toEmail string, order models.Order) error {
	subject := "Your GoPrakritik order has been placed"
	htmlContent := fmt.Sprintf(
		"<strong>Thank you for your order!</strong><br><br>Order ID: %s<br>Total Amount: ₹%.2f<br>Payment Method: %s<br><br>We will notify you once it ships.",
		order.ID.Hex(),
		order.TotalAmount,
		order.PaymentMethod,
	)
	return es.send(toEmail, subject, htmlContent)
}
