package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"wheelshare-backend/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendBookingConfirmation(ctx context.Context, email, name, vehicleName, startDate, endDate string, amountCents int64) error {
	subject := fmt.Sprintf("Booking confirmed: %s", vehicleName)
	body := fmt.Sprintf("Hello %s,\n\nYour booking of %s from %s to %s is confirmed.\nAmount paid: %.2f\n\nEnjoy the ride,\nThe WheelShare Team",
		name, vehicleName, startDate, endDate, float64(amountCents)/100)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendBookingCancellation(ctx context.Context, email, name, vehicleName string) error {
	subject := fmt.Sprintf("Booking cancelled: %s", vehicleName)
	body := fmt.Sprintf("Hello %s,\n\nYour booking of %s has been cancelled. Your refund is being processed and will be confirmed separately.\n\nThe WheelShare Team",
		name, vehicleName)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendRefundProcessed(ctx context.Context, email, name string, amountCents int64) error {
	subject := "Your refund has been processed"
	body := fmt.Sprintf("Hello %s,\n\nYour refund of %.2f has been processed. Depending on your bank it may take a few business days to appear.\n\nThe WheelShare Team",
		name, float64(amountCents)/100)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendBookingCompletion(ctx context.Context, email, name, vehicleName string) error {
	subject := fmt.Sprintf("Rental completed: %s", vehicleName)
	body := fmt.Sprintf("Hello %s,\n\nYour rental of %s is now complete. Thanks for riding with us.\n\nThe WheelShare Team",
		name, vehicleName)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendReviewReminder(ctx context.Context, email, name, vehicleName string) error {
	subject := fmt.Sprintf("How was the %s?", vehicleName)
	body := fmt.Sprintf("Hello %s,\n\nYour rental of %s just wrapped up. Leave a review to help other renters choose.\n\nThe WheelShare Team",
		name, vehicleName)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendInquiryReply(ctx context.Context, email, name, subject, reply string) error {
	body := fmt.Sprintf("Hello %s,\n\nAbout your inquiry \"%s\":\n\n%s\n\nThe WheelShare Team", name, subject, reply)
	return s.send(email, name, "Re: "+subject, body)
}

// notifyAsync fires an email off the request path. Delivery failures
// are logged and dropped so they never fail the calling operation.
func notifyAsync(name string, fn func(ctx context.Context) error) {
	go func() {
		ctx := context.Background()
		if err := fn(ctx); err != nil {
			logger.Error("email delivery failed", "email", name, "error", err)
		}
	}()
}
