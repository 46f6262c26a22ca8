package booking

import (
	"context"
	"fmt"
	"time"

	"docassist/models"
	"docassist/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Initiate validates the booking request and opens a checkout session
// carrying the full booking intent as metadata. No appointment row is
// written; an abandoned checkout leaves no trace in the store.
func (s *DefaultBookingService) Initiate(ctx context.Context, caller *models.User, req models.AppointmentRequest) (*CheckoutSession, *models.Doctor, error) {
	day, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
	if err != nil {
		return nil, nil, newInvalidDate("invalid date %q: expected YYYY-MM-DD", req.Date)
	}
	today := truncateToDay(time.Now())
	if day.Before(today) {
		return nil, nil, newInvalidDate("invalid date: please select a date from today (%s) onwards", today.Format(dateLayout))
	}

	doc, err := s.DoctorRepo.GetByID(req.DoctorID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch doctor: %w", err)
	}
	if doc == nil {
		return nil, nil, ErrDoctorNotFound
	}

	// Friendly pre-check; the partial unique index is the actual guard.
	existing, err := s.ApptRepo.GetActiveByUserAndDoctor(caller.ID, doc.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check existing appointments: %w", err)
	}
	if existing != nil {
		return nil, nil, &DuplicateBookingError{DoctorName: doc.Name}
	}

	md := models.BookingMetadata{
		UserID:          caller.ID,
		UserName:        caller.Name,
		UserEmail:       caller.Email,
		DoctorID:        doc.ID,
		DoctorName:      doc.Name,
		DoctorSpecialty: doc.Specialty,
		Date:            req.Date,
		Time:            req.Time,
		Reason:          req.Reason,
	}

	session, err := s.Gateway.CreateSession(ctx, doc, md)
	if err != nil {
		return nil, nil, fmt.Errorf("payment session creation failed: %w", err)
	}
	return session, doc, nil
}

// ConfirmSession turns a paid checkout session into its appointment row.
// The upsert is keyed on the session id, so the webhook and the verify
// poll can both run and exactly one confirmed row results.
func (s *DefaultBookingService) ConfirmSession(ctx context.Context, session *CheckoutSession) (*models.Appointment, error) {
	md := models.BookingMetadataFromMap(session.Metadata)
	if md.UserID == "" || md.DoctorID == "" {
		return nil, fmt.Errorf("session %s carries no booking metadata", session.ID)
	}

	appt := &models.Appointment{
		ID:                uuid.New().String(),
		UserID:            md.UserID,
		DoctorID:          md.DoctorID,
		Date:              md.Date,
		Time:              md.Time,
		Reason:            md.Reason,
		Status:            models.StatusConfirmed,
		Paid:              true,
		CheckoutSessionID: session.ID,
	}
	confirmed, err := s.ApptRepo.ConfirmBySession(session.ID, appt)
	if err != nil {
		return nil, fmt.Errorf("failed to persist appointment: %w", err)
	}

	// The upsert echoes the candidate id only when it inserted, so the
	// email and reminder fire exactly once even when the webhook and the
	// verify poll race. Their failure never fails the confirmation itself.
	if confirmed.ID == appt.ID {
		logger := utils.GetLogger()
		if err := s.Notifier.SendAppointmentConfirmation(ctx, md); err != nil {
			logger.Error("confirmation email failed", zap.String("session", session.ID), zap.Error(err))
		}
		s.scheduleReminder(confirmed, md)
	}
	return confirmed, nil
}

// VerifyPayment is the polling fallback for missed webhook deliveries. It
// retrieves the session from the provider and, when the session is paid
// but no row exists yet, performs the confirmation inline.
func (s *DefaultBookingService) VerifyPayment(ctx context.Context, sessionID string) (*VerifyResult, error) {
	session, err := s.Gateway.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve session: %w", err)
	}

	appt, err := s.ApptRepo.GetBySessionID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up session %s: %w", sessionID, err)
	}

	status := "unpaid"
	if session.Paid {
		status = "paid"
	}

	if session.Paid && appt == nil {
		appt, err = s.ConfirmSession(ctx, session)
		if err != nil {
			utils.GetLogger().Error("verify-path confirmation failed", zap.String("session", sessionID), zap.Error(err))
			return &VerifyResult{
				PaymentStatus:     status,
				AppointmentPaid:   false,
				AppointmentStatus: "not_found",
				Message:           "Payment successful but appointment creation failed.",
			}, nil
		}
	}
	if appt == nil {
		return &VerifyResult{
			PaymentStatus:     status,
			AppointmentPaid:   false,
			AppointmentStatus: "not_found",
		}, nil
	}

	if session.Paid && !appt.Paid {
		appt.Paid = true
		appt.Status = models.StatusConfirmed
		if err := s.ApptRepo.Update(appt); err != nil {
			return nil, fmt.Errorf("failed to mark appointment paid: %w", err)
		}
	}

	return &VerifyResult{
		PaymentStatus:     status,
		AppointmentPaid:   appt.Paid,
		AppointmentStatus: appt.Status,
	}, nil
}

// Cancel transitions a booked or confirmed appointment to cancelled.
// Cancelled is terminal for this operation.
func (s *DefaultBookingService) Cancel(apptID, callerID string, isAdmin bool) (*models.Appointment, error) {
	appt, err := s.ApptRepo.GetByID(apptID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	if appt == nil {
		return nil, ErrAppointmentNotFound
	}
	if appt.UserID != callerID && !isAdmin {
		return nil, ErrNotAuthorized
	}
	if !appt.IsActive() {
		return nil, ErrNotCancellable
	}

	appt.Status = models.StatusCancelled
	if err := s.ApptRepo.Update(appt); err != nil {
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}
	return appt, nil
}

// ListByUser returns the caller's appointments.
func (s *DefaultBookingService) ListByUser(userID string) ([]models.Appointment, error) {
	return s.ApptRepo.ListByUser(userID)
}

// ListAll returns every appointment. Admin surface.
func (s *DefaultBookingService) ListAll() ([]models.Appointment, error) {
	return s.ApptRepo.ListAll()
}

// scheduleReminder enqueues the day-before reminder email when the
// appointment is far enough out for one to make sense.
func (s *DefaultBookingService) scheduleReminder(appt *models.Appointment, md models.BookingMetadata) {
	if s.Reminders == nil {
		return
	}
	fireAt := reminderTime(appt.Date, appt.Time)
	if fireAt.Before(time.Now()) {
		return
	}
	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		UserEmail:     md.UserEmail,
		UserName:      md.UserName,
		DoctorName:    md.DoctorName,
		Date:          appt.Date,
		Time:          appt.Time,
	}
	if err := s.Reminders.Schedule(payload, fireAt); err != nil {
		utils.GetLogger().Error("failed to schedule reminder", zap.String("appointment", appt.ID), zap.Error(err))
	}
}

// reminderTime is 24h before the appointment. The time-of-day field is
// free text from the chat flow, so anything unparseable falls back to
// 09:00.
func reminderTime(date, clock string) time.Time {
	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return time.Time{}
	}
	at, err := time.Parse("15:04", clock)
	if err != nil {
		at, _ = time.Parse("15:04", "09:00")
	}
	appt := time.Date(day.Year(), day.Month(), day.Day(), at.Hour(), at.Minute(), 0, 0, time.Local)
	return appt.Add(-24 * time.Hour)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
