package user

import (
	appointmentRepo "docassist/database/repository/appointment"
	userRepo "docassist/database/repository/user"
	"docassist/models"
	"docassist/services/notification"
)

type UserService interface {
	// Authentication
	Register(reg models.UserRegistration) (*AuthResponse, error)
	Login(email, password string) (*AuthResponse, error)

	// Password reset
	ForgotPassword(email string) error
	ResetPassword(token, newPassword string) error

	// Profile
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	FindUserByName(name string) (*models.User, error)
	UpdateProfile(userID string, upd models.UserUpdate) (*models.User, error)
	SetProfileImage(userID, publicID, url string) (*models.User, error)

	// Admin
	GetAllUsers() ([]models.User, error)
	AdminUpdateUser(targetID string, upd models.UserUpdate) (*models.User, error)
	DeleteUser(adminID, targetID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	ApptRepo appointmentRepo.AppointmentRepository
	Mailer   notification.NotificationService
}

// AuthResponse contains the user and the bearer token issued for it.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"access_token"`
	Type  string       `json:"token_type"`
}
