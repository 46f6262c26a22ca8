package doctor

import (
	"errors"
	"fmt"

	"docassist/models"

	"github.com/google/uuid"
)

// ErrNotFound signals that no doctor matches the given identifier.
var ErrNotFound = errors.New("doctor not found")

// HasActiveAppointmentsError blocks doctor deletion while booked or
// confirmed appointments still reference the doctor.
type HasActiveAppointmentsError struct {
	Name  string
	Count int64
}

func (e *HasActiveAppointmentsError) Error() string {
	return fmt.Sprintf("cannot delete doctor %s: %d active appointment(s) reference them", e.Name, e.Count)
}

// ListDoctors returns the full directory.
func (s *DefaultDoctorService) ListDoctors() ([]models.Doctor, error) {
	return s.Repo.GetAll()
}

// GetDoctorByID retrieves a doctor by id.
func (s *DefaultDoctorService) GetDoctorByID(id string) (*models.Doctor, error) {
	doc, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor: %w", err)
	}
	if doc == nil {
		return nil, ErrNotFound
	}
	return doc, nil
}

// FindDoctorByName resolves a free-text name fragment to a doctor. Returns
// ErrNotFound when nothing matches; the assistant turns that into the
// enumerated fallback list.
func (s *DefaultDoctorService) FindDoctorByName(name string) (*models.Doctor, error) {
	doc, err := s.Repo.FindByName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to search doctors: %w", err)
	}
	if doc == nil {
		return nil, ErrNotFound
	}
	return doc, nil
}

// AddDoctor inserts a new directory entry. Admin surface.
func (s *DefaultDoctorService) AddDoctor(doc *models.Doctor) error {
	if doc.Name == "" || doc.Specialty == "" {
		return errors.New("name and specialty are required")
	}
	if doc.Fee <= 0 {
		return errors.New("fee must be positive")
	}
	doc.ID = uuid.New().String()
	if err := s.Repo.Create(doc); err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

// UpdateDoctor applies the provided fields. Admin surface.
func (s *DefaultDoctorService) UpdateDoctor(id string, upd models.DoctorUpdate) (*models.Doctor, error) {
	doc, err := s.GetDoctorByID(id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		doc.Name = *upd.Name
	}
	if upd.Specialty != nil {
		doc.Specialty = *upd.Specialty
	}
	if upd.Fee != nil {
		doc.Fee = *upd.Fee
	}
	if upd.Bio != nil {
		doc.Bio = *upd.Bio
	}
	if upd.ImageURL != nil {
		doc.ImageURL = *upd.ImageURL
	}
	if err := s.Repo.Update(doc); err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}
	return doc, nil
}

// DeleteDoctor removes a directory entry. Deletion is blocked while active
// appointments reference the doctor, mirroring the user-deletion guard.
func (s *DefaultDoctorService) DeleteDoctor(id string) error {
	doc, err := s.GetDoctorByID(id)
	if err != nil {
		return err
	}

	count, err := s.ApptRepo.CountActiveByDoctor(id)
	if err != nil {
		return fmt.Errorf("failed to count appointments: %w", err)
	}
	if count > 0 {
		return &HasActiveAppointmentsError{Name: doc.Name, Count: count}
	}

	if err := s.Repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	return nil
}
