package appointmentRepo

import "docassist/models"

// AppointmentRepository defines persistence operations for appointments.
//
// Uniqueness of an active (user, doctor) pair and of a checkout session id
// is enforced by partial unique indexes, so concurrent writers fail at
// insert time rather than relying on a pre-read.
type AppointmentRepository interface {
	ConfirmBySession(sessionID string, appt *models.Appointment) (*models.Appointment, error)
	Update(appt *models.Appointment) error
	GetByID(id string) (*models.Appointment, error)
	GetBySessionID(sessionID string) (*models.Appointment, error)
	GetActiveByUserAndDoctor(userID, doctorID string) (*models.Appointment, error)
	ListByUser(userID string) ([]models.Appointment, error)
	ListAll() ([]models.Appointment, error)
	CountByUser(userID string) (int64, error)
	CountActiveByDoctor(doctorID string) (int64, error)
}
