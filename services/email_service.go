package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/F-Parkar/price-tracker/config"
)

// EmailService sends plain-text price change alerts over SMTP.
type EmailService struct {
	host     string
	port     string
	user     string
	password string
}

// NewEmailService creates an email service from the SMTP settings in cfg.
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
	}
}

// SendPriceAlert notifies the user that a product's price changed. When
// credentials are not configured the alert is logged and skipped so a
// price check never fails because of mail setup.
func (s *EmailService) SendPriceAlert(toEmail, productName string, oldPrice, newPrice float64, productURL string) error {
	if s.user == "" || s.password == "" {
		log.Printf("Email not configured. Would send: %s price changed from R%.2f to R%.2f", productName, oldPrice, newPrice)
		return nil
	}

	priceDiff := newPrice - oldPrice
	percentChange := 0.0
	if oldPrice > 0 {
		percentChange = priceDiff / oldPrice * 100
	}

	subject := fmt.Sprintf("Price Alert: %s", productName)

	var body strings.Builder
	body.WriteString("Hello!\n\n")
	body.WriteString(fmt.Sprintf("The price for %s has changed:\n\n", productName))
	body.WriteString(fmt.Sprintf("Previous Price: R%.2f\n", oldPrice))
	body.WriteString(fmt.Sprintf("New Price: R%.2f\n", newPrice))
	body.WriteString(fmt.Sprintf("Change: R%.2f (%+.1f%%)\n\n", priceDiff, percentChange))
	if priceDiff < 0 {
		body.WriteString("Price dropped! This might be a great time to buy.\n")
	} else {
		body.WriteString("Price increased.\n")
	}
	if productURL != "" {
		body.WriteString(fmt.Sprintf("\nView Product:\n%s\n", productURL))
	}
	body.WriteString("\nHappy shopping!\n- Your Price Tracker\n")

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.user, toEmail, subject, body.String())

	auth := smtp.PlainAuth("", s.user, s.password, s.host)
	addr := s.host + ":" + s.port

	if err := smtp.SendMail(addr, auth, s.user, []string{toEmail}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	log.Printf("Price alert sent to %s for %s", toEmail, productName)
	return nil
}
