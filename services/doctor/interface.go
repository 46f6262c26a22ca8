package doctor

import (
	appointmentRepo "docassist/database/repository/appointment"
	doctorRepo "docassist/database/repository/doctor"
	"docassist/models"
)

type DoctorService interface {
	ListDoctors() ([]models.Doctor, error)
	GetDoctorByID(id string) (*models.Doctor, error)
	FindDoctorByName(name string) (*models.Doctor, error)
	AddDoctor(doc *models.Doctor) error
	UpdateDoctor(id string, upd models.DoctorUpdate) (*models.Doctor, error)
	DeleteDoctor(id string) error
}

// DefaultDoctorService is the production implementation.
type DefaultDoctorService struct {
	Repo     doctorRepo.DoctorRepository
	ApptRepo appointmentRepo.AppointmentRepository
}
