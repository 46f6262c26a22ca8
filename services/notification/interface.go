package notification

import (
	"context"

	"docassist/models"
)

// NotificationService sends transactional email. Delivery failures are
// surfaced to the caller and never retried here.
type NotificationService interface {
	SendAppointmentConfirmation(ctx context.Context, md models.BookingMetadata) error
	SendAppointmentReminder(ctx context.Context, p models.ReminderPayload) error
	SendPasswordReset(ctx context.Context, email, name, token string) error
}
