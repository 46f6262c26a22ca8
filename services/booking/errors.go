package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrDoctorNotFound signals an unknown doctor id in a booking request.
	ErrDoctorNotFound = errors.New("doctor not found")
	// ErrAppointmentNotFound signals an unknown appointment id.
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrNotCancellable signals a cancel on an appointment that already
	// left the booked/confirmed states.
	ErrNotCancellable = errors.New("appointment can no longer be cancelled")
	// ErrNotAuthorized signals a caller acting on someone else's appointment.
	ErrNotAuthorized = errors.New("not authorized to cancel this appointment")
)

// InvalidDateError rejects past or malformed booking dates.
type InvalidDateError struct {
	Message string
}

func (e *InvalidDateError) Error() string {
	return e.Message
}

func newInvalidDate(format string, args ...interface{}) error {
	return &InvalidDateError{Message: fmt.Sprintf(format, args...)}
}

// DuplicateBookingError rejects a second active appointment with the same
// doctor.
type DuplicateBookingError struct {
	DoctorName string
}

func (e *DuplicateBookingError) Error() string {
	return fmt.Sprintf("you already have an appointment with Dr. %s; cancel it before booking a new one", e.DoctorName)
}
