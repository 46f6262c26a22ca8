package models

import "time"

// Appointment lifecycle states.
const (
	StatusBooked    = "booked"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// ActiveStatuses are the states that block a second booking for the same
// (user, doctor) pair and a doctor deletion.
var ActiveStatuses = []string{StatusBooked, StatusConfirmed}

// Appointment links a user and a doctor. A row only exists after the
// checkout session it references has been paid; before that the booking
// intent lives exclusively in the session's metadata.
type Appointment struct {
	ID                string    `bson:"id" json:"id"`
	UserID            string    `bson:"user_id" json:"user_id"`
	DoctorID          string    `bson:"doctor_id" json:"doctor_id"`
	Date              string    `bson:"date" json:"date"` // YYYY-MM-DD
	Time              string    `bson:"time" json:"time"`
	Reason            string    `bson:"reason,omitempty" json:"reason,omitempty"`
	Status            string    `bson:"status" json:"status"`
	Paid              bool      `bson:"paid" json:"paid"`
	CheckoutSessionID string    `bson:"checkout_session_id,omitempty" json:"checkout_session_id,omitempty"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at" json:"updated_at"`
}

// IsActive reports whether the appointment still occupies its
// (user, doctor) booking slot.
func (a *Appointment) IsActive() bool {
	return a.Status == StatusBooked || a.Status == StatusConfirmed
}

// AppointmentRequest is the payload for POST /appointments.
type AppointmentRequest struct {
	DoctorID string `json:"doctor_id" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Reason   string `json:"reason"`
}

// BookingMetadata is the booking intent stored on the checkout session and
// read back when the session completes.
type BookingMetadata struct {
	UserID          string `json:"user_id"`
	UserName        string `json:"user_name"`
	UserEmail       string `json:"user_email"`
	DoctorID        string `json:"doctor_id"`
	DoctorName      string `json:"doctor_name"`
	DoctorSpecialty string `json:"doctor_specialty"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Reason          string `json:"reason"`
}

// ToMap flattens the metadata for the payment provider, which only accepts
// string key/value pairs.
func (m BookingMetadata) ToMap() map[string]string {
	return map[string]string{
		"user_id":          m.UserID,
		"user_name":        m.UserName,
		"user_email":       m.UserEmail,
		"doctor_id":        m.DoctorID,
		"doctor_name":      m.DoctorName,
		"doctor_specialty": m.DoctorSpecialty,
		"date":             m.Date,
		"time":             m.Time,
		"reason":           m.Reason,
	}
}

// BookingMetadataFromMap is the inverse of ToMap.
func BookingMetadataFromMap(md map[string]string) BookingMetadata {
	return BookingMetadata{
		UserID:          md["user_id"],
		UserName:        md["user_name"],
		UserEmail:       md["user_email"],
		DoctorID:        md["doctor_id"],
		DoctorName:      md["doctor_name"],
		DoctorSpecialty: md["doctor_specialty"],
		Date:            md["date"],
		Time:            md["time"],
		Reason:          md["reason"],
	}
}

// ReminderPayload is the asynq task body for appointment reminder emails.
type ReminderPayload struct {
	AppointmentID string `json:"appointment_id"`
	UserEmail     string `json:"user_email"`
	UserName      string `json:"user_name"`
	DoctorName    string `json:"doctor_name"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}
