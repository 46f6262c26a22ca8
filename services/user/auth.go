package user

import (
	"context"
	"fmt"
	"time"

	"docassist/config"
	"docassist/models"
	"docassist/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates an account and issues a token straight away so the
// frontend can log the user in without a second round trip.
func (s *DefaultUserService) Register(reg models.UserRegistration) (*AuthResponse, error) {
	existing, err := s.Repo.GetByEmail(reg.Email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Register: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	usr := models.User{
		ID:           uuid.New().String(),
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
		PhoneNumber:  reg.PhoneNumber,
		DateOfBirth:  reg.DateOfBirth,
	}
	if err := s.Repo.Create(&usr); err != nil {
		utils.GetLogger().Error("Register: failed to persist user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return s.issueToken(&usr)
}

// Login verifies the credentials and issues a bearer token.
func (s *DefaultUserService) Login(email, password string) (*AuthResponse, error) {
	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Login: lookup failed", zap.Error(err))
		return nil, fmt.Errorf("login failed, please try again")
	}
	if usr == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(usr)
}

func (s *DefaultUserService) issueToken(usr *models.User) (*AuthResponse, error) {
	ttl := time.Duration(config.AppConfig.TokenExpireMinutes) * time.Minute
	token, err := utils.GenerateToken(usr.ID, usr.Email, usr.Role, ttl)
	if err != nil {
		utils.GetLogger().Error("issueToken: failed to sign token", zap.Error(err))
		return nil, fmt.Errorf("login failed, please try again")
	}
	return &AuthResponse{User: usr, Token: token, Type: "bearer"}, nil
}

// ForgotPassword emails a short-lived reset token. An unknown email is
// reported as success so the endpoint cannot be used to probe accounts.
func (s *DefaultUserService) ForgotPassword(email string) error {
	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to look up account: %w", err)
	}
	if usr == nil {
		return nil
	}

	ttl := time.Duration(config.AppConfig.ResetExpireMinutes) * time.Minute
	token, err := utils.GenerateResetToken(usr.ID, ttl)
	if err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	if err := s.Mailer.SendPasswordReset(context.Background(), usr.Email, usr.Name, token); err != nil {
		utils.GetLogger().Error("ForgotPassword: failed to send email", zap.Error(err))
		return fmt.Errorf("failed to send reset email")
	}
	return nil
}

// ResetPassword validates the reset token and replaces the credential hash.
func (s *DefaultUserService) ResetPassword(token, newPassword string) error {
	claims, err := utils.TokenClaims(token, utils.TokenTypeReset)
	if err != nil {
		return fmt.Errorf("invalid or expired reset token")
	}
	sub, _ := claims["sub"].(string)
	usr, err := s.Repo.GetByID(sub)
	if err != nil {
		return fmt.Errorf("failed to look up account: %w", err)
	}
	if usr == nil {
		return ErrNotFound
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	usr.PasswordHash = string(hashed)
	if err := s.Repo.Update(usr); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
