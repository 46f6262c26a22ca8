package booking

import (
	"context"
	"time"

	appointmentRepo "docassist/database/repository/appointment"
	doctorRepo "docassist/database/repository/doctor"
	"docassist/models"
	"docassist/services/notification"
)

// CheckoutSession is the provider-neutral view of a payment checkout
// session. Metadata round-trips the booking intent.
type CheckoutSession struct {
	ID       string
	URL      string
	Paid     bool
	Metadata map[string]string
}

// CheckoutGateway abstracts the external payment provider.
type CheckoutGateway interface {
	// CreateSession opens a checkout session priced from the doctor's fee
	// and carrying the booking intent as metadata.
	CreateSession(ctx context.Context, doctor *models.Doctor, md models.BookingMetadata) (*CheckoutSession, error)
	// GetSession retrieves a session by id for the verify poll.
	GetSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
	// ParseWebhook validates a webhook delivery and returns the completed
	// session, or (nil, nil) for event types this system ignores.
	ParseWebhook(payload []byte, signature string) (*CheckoutSession, error)
}

// ReminderScheduler enqueues the day-before reminder for a confirmed
// appointment.
type ReminderScheduler interface {
	Schedule(p models.ReminderPayload, fireAt time.Time) error
}

// Booker is the subset of the booking service the assistant delegates to.
type Booker interface {
	Initiate(ctx context.Context, caller *models.User, req models.AppointmentRequest) (*CheckoutSession, *models.Doctor, error)
}

// BookingService governs the appointment lifecycle.
type BookingService interface {
	Booker
	ConfirmSession(ctx context.Context, session *CheckoutSession) (*models.Appointment, error)
	VerifyPayment(ctx context.Context, sessionID string) (*VerifyResult, error)
	Cancel(apptID, callerID string, isAdmin bool) (*models.Appointment, error)
	ListByUser(userID string) ([]models.Appointment, error)
	ListAll() ([]models.Appointment, error)
}

// VerifyResult is the response of the unauthenticated verify poll.
type VerifyResult struct {
	PaymentStatus     string `json:"payment_status"`
	AppointmentPaid   bool   `json:"appointment_paid"`
	AppointmentStatus string `json:"appointment_status"`
	Message           string `json:"message,omitempty"`
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	ApptRepo   appointmentRepo.AppointmentRepository
	DoctorRepo doctorRepo.DoctorRepository
	Gateway    CheckoutGateway
	Notifier   notification.NotificationService
	Reminders  ReminderScheduler
}
