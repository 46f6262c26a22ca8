package doctorRepo

import "docassist/models"

// DoctorRepository defines persistence operations for the doctor directory.
type DoctorRepository interface {
	Create(doctor *models.Doctor) error
	Update(doctor *models.Doctor) error
	Delete(id string) error
	GetByID(id string) (*models.Doctor, error)
	FindByName(name string) (*models.Doctor, error)
	GetAll() ([]models.Doctor, error)
}
