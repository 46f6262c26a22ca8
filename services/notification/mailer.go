package notification

import (
	"context"
	"fmt"
	"time"

	"docassist/config"
	"docassist/models"

	mg "github.com/mailgun/mailgun-go/v4"
)

// MailgunService implements NotificationService via Mailgun.
type MailgunService struct {
	Domain string
	APIKey string
	Sender string
}

// NewMailgunService builds the mailer from the loaded configuration.
func NewMailgunService() *MailgunService {
	return &MailgunService{
		Domain: config.AppConfig.MailgunDomain,
		APIKey: config.AppConfig.MailgunAPIKey,
		Sender: config.AppConfig.MailgunSender,
	}
}

func (m *MailgunService) send(ctx context.Context, to, subject, body string) error {
	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(m.Sender, subject, body, to)
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, _, err := client.Send(c, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// SendAppointmentConfirmation emails the booking summary after payment.
func (m *MailgunService) SendAppointmentConfirmation(ctx context.Context, md models.BookingMetadata) error {
	return m.send(ctx, md.UserEmail, "Appointment Confirmed - HealthCare+", confirmationBody(md))
}

// SendAppointmentReminder emails the day-before reminder.
func (m *MailgunService) SendAppointmentReminder(ctx context.Context, p models.ReminderPayload) error {
	return m.send(ctx, p.UserEmail, "Appointment Reminder - HealthCare+", reminderBody(p))
}

// SendPasswordReset emails the reset link.
func (m *MailgunService) SendPasswordReset(ctx context.Context, email, name, token string) error {
	return m.send(ctx, email, "Password Reset - HealthCare+", resetBody(name, token))
}
