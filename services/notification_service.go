package services

import (
	"fmt"

	"storefront/config"
	"storefront/models"

	"gopkg.in/gomail.v2"
)

// NoopMailer stands in when SMTP is not configured: checkout still works,
// notifications are dropped with a log line.
type NoopMailer struct{}

func (NoopMailer) SendOrderConfirmation(to, name, orderID, itemSummary, total string) error {
	logger.Info().Str("order_id", orderID).Str("to", to).Msg("SMTP not configured, dropping order confirmation")
	return nil
}

func (NoopMailer) SendOrderAlert(orderID, itemSummary, total string, form models.CheckoutForm) error {
	logger.Info().Str("order_id", orderID).Msg("SMTP not configured, dropping admin alert")
	return nil
}

// NotificationService delivers checkout mails over SMTP. It satisfies the
// Mailer interface used by the checkout coordinator.
type NotificationService struct {
	dialer     *gomail.Dialer
	from       string
	adminEmail string
}

func NewNotificationService() (*NotificationService, error) {
	cfg := config.AppConfig

	if cfg.SMTPHost == "" || cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}
	if cfg.AdminEmail == "" {
		return nil, fmt.Errorf("ADMIN_EMAIL not configured")
	}

	return &NotificationService{
		dialer:     gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:       cfg.SMTPFrom,
		adminEmail: cfg.AdminEmail,
	}, nil
}

func (s *NotificationService) SendOrderConfirmation(to, name, orderID, itemSummary, total string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Order Confirmation")

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .order-box { background-color: #f0f7ff; padding: 20px; margin: 20px 0; border-radius: 8px; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <h2 style="color: #333;">Order Confirmation</h2>
        <p>Hello %s,</p>
        <p>Thank you for your order!</p>

        <div class="order-box">
            <p><strong>Order ID:</strong> %s</p>
            <p><strong>Items:</strong> %s</p>
            <p><strong>Total:</strong> %s</p>
        </div>

        <p>Your order has been received and paid. We'll notify you when it ships.</p>

        <div class="footer">
            <p>This is an automated email. Please do not reply.</p>
        </div>
    </div>
</body>
</html>
	`, name, orderID, itemSummary, total)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send order confirmation: %w", err)
	}
	return nil
}

func (s *NotificationService) SendOrderAlert(orderID, itemSummary, total string, form models.CheckoutForm) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.adminEmail)
	m.SetHeader("Subject", fmt.Sprintf("New Order: %s", orderID))

	shippingAddress := fmt.Sprintf("%s, %s, %s %s, %s",
		form.Address, form.City, form.State, form.Zipcode, form.Country)

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .order-box { background-color: #fff7ed; padding: 20px; margin: 20px 0; border-radius: 8px; }
    </style>
</head>
<body>
    <div class="container">
        <h2 style="color: #333;">New Order %s</h2>

        <div class="order-box">
            <p><strong>Items:</strong> %s</p>
            <p><strong>Total:</strong> %s</p>
        </div>

        <p><strong>Customer:</strong> %s %s</p>
        <p><strong>Email:</strong> %s</p>
        <p><strong>Phone:</strong> %s</p>
        <p><strong>Shipping address:</strong> %s</p>
    </div>
</body>
</html>
	`, orderID, itemSummary, total,
		form.FirstName, form.LastName, form.Email, form.PhoneNumber, shippingAddress)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send admin alert: %w", err)
	}
	return nil
}
