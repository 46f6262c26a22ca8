package doctor

import (
	"errors"
	"testing"

	"docassist/models"
)

type memDoctorRepo struct {
	doctors map[string]*models.Doctor
}

func newMemDoctorRepo() *memDoctorRepo {
	return &memDoctorRepo{doctors: map[string]*models.Doctor{}}
}

func (r *memDoctorRepo) Create(d *models.Doctor) error { r.doctors[d.ID] = d; return nil }
func (r *memDoctorRepo) Update(d *models.Doctor) error { r.doctors[d.ID] = d; return nil }
func (r *memDoctorRepo) Delete(id string) error        { delete(r.doctors, id); return nil }
func (r *memDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	return r.doctors[id], nil
}
func (r *memDoctorRepo) FindByName(name string) (*models.Doctor, error) {
	for _, d := range r.doctors {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, nil
}
func (r *memDoctorRepo) GetAll() ([]models.Doctor, error) {
	var out []models.Doctor
	for _, d := range r.doctors {
		out = append(out, *d)
	}
	return out, nil
}

// activeCounter satisfies the appointment repository with a fixed per-doctor
// active count.
type activeCounter struct {
	counts map[string]int64
}

func (a *activeCounter) ConfirmBySession(string, *models.Appointment) (*models.Appointment, error) {
	return nil, nil
}
func (a *activeCounter) Update(*models.Appointment) error                   { return nil }
func (a *activeCounter) GetByID(string) (*models.Appointment, error)        { return nil, nil }
func (a *activeCounter) GetBySessionID(string) (*models.Appointment, error) { return nil, nil }
func (a *activeCounter) GetActiveByUserAndDoctor(string, string) (*models.Appointment, error) {
	return nil, nil
}
func (a *activeCounter) ListByUser(string) ([]models.Appointment, error) { return nil, nil }
func (a *activeCounter) ListAll() ([]models.Appointment, error)          { return nil, nil }
func (a *activeCounter) CountByUser(string) (int64, error)               { return 0, nil }
func (a *activeCounter) CountActiveByDoctor(doctorID string) (int64, error) {
	return a.counts[doctorID], nil
}

func newTestDoctorService() (*DefaultDoctorService, *memDoctorRepo, *activeCounter) {
	repo := newMemDoctorRepo()
	appts := &activeCounter{counts: map[string]int64{}}
	return &DefaultDoctorService{Repo: repo, ApptRepo: appts}, repo, appts
}

func TestAddDoctorValidation(t *testing.T) {
	svc, repo, _ := newTestDoctorService()

	if err := svc.AddDoctor(&models.Doctor{Name: "", Specialty: "Cardiology", Fee: 100}); err == nil {
		t.Fatal("missing name must be rejected")
	}
	if err := svc.AddDoctor(&models.Doctor{Name: "Asha Patel", Specialty: "Cardiology", Fee: 0}); err == nil {
		t.Fatal("non-positive fee must be rejected")
	}

	doc := &models.Doctor{Name: "Asha Patel", Specialty: "Cardiology", Fee: 120}
	if err := svc.AddDoctor(doc); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if doc.ID == "" {
		t.Fatal("expected an assigned id")
	}
	if _, ok := repo.doctors[doc.ID]; !ok {
		t.Fatal("doctor not persisted")
	}
}

func TestGetDoctorByIDNotFound(t *testing.T) {
	svc, _, _ := newTestDoctorService()

	if _, err := svc.GetDoctorByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateDoctorAppliesFields(t *testing.T) {
	svc, repo, _ := newTestDoctorService()
	repo.doctors["doc-1"] = &models.Doctor{ID: "doc-1", Name: "Asha Patel", Specialty: "Cardiology", Fee: 120}

	fee := 150.0
	bio := "Senior consultant."
	doc, err := svc.UpdateDoctor("doc-1", models.DoctorUpdate{Fee: &fee, Bio: &bio})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if doc.Fee != 150 || doc.Bio != "Senior consultant." {
		t.Fatalf("fields not applied: %+v", doc)
	}
	if doc.Name != "Asha Patel" {
		t.Fatalf("untouched fields must survive, got %q", doc.Name)
	}
}

func TestDeleteDoctorBlockedByActiveAppointments(t *testing.T) {
	svc, repo, appts := newTestDoctorService()
	repo.doctors["doc-1"] = &models.Doctor{ID: "doc-1", Name: "Asha Patel", Specialty: "Cardiology", Fee: 120}
	appts.counts["doc-1"] = 3

	err := svc.DeleteDoctor("doc-1")
	var blocked *HasActiveAppointmentsError
	if !errors.As(err, &blocked) {
		t.Fatalf("expected HasActiveAppointmentsError, got %v", err)
	}
	if blocked.Count != 3 {
		t.Fatalf("expected count 3, got %d", blocked.Count)
	}

	appts.counts["doc-1"] = 0
	if err := svc.DeleteDoctor("doc-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := repo.doctors["doc-1"]; ok {
		t.Fatal("doctor not removed")
	}
}
