package user

import (
	"fmt"

	"docassist/models"
	"docassist/utils"

	"go.uber.org/zap"
)

// GetUserByID retrieves a user by id.
func (s *DefaultUserService) GetUserByID(id string) (*models.User, error) {
	usr, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if usr == nil {
		return nil, ErrNotFound
	}
	return usr, nil
}

// GetUserByEmail retrieves a user by email.
func (s *DefaultUserService) GetUserByEmail(email string) (*models.User, error) {
	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if usr == nil {
		return nil, ErrNotFound
	}
	return usr, nil
}

// FindUserByName resolves a free-text name fragment to an account. Admin
// surface, used by the assistant's user-management tools.
func (s *DefaultUserService) FindUserByName(name string) (*models.User, error) {
	usr, err := s.Repo.FindByName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	if usr == nil {
		return nil, ErrNotFound
	}
	return usr, nil
}

// GetAllUsers retrieves every account. Admin surface.
func (s *DefaultUserService) GetAllUsers() ([]models.User, error) {
	return s.Repo.GetAll()
}

// UpdateProfile applies the provided fields to the caller's own account.
func (s *DefaultUserService) UpdateProfile(userID string, upd models.UserUpdate) (*models.User, error) {
	usr, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(usr, upd)
}

// SetProfileImage records the stored image for an account, or clears it
// when both values are empty.
func (s *DefaultUserService) SetProfileImage(userID, publicID, url string) (*models.User, error) {
	usr, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	usr.ImagePublicID = publicID
	usr.ImageURL = url
	if err := s.Repo.Update(usr); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return usr, nil
}

// AdminUpdateUser applies the provided fields to any account, enforcing
// email uniqueness across other accounts.
func (s *DefaultUserService) AdminUpdateUser(targetID string, upd models.UserUpdate) (*models.User, error) {
	usr, err := s.GetUserByID(targetID)
	if err != nil {
		return nil, err
	}
	if upd.Email != nil && *upd.Email != usr.Email {
		other, err := s.Repo.GetByEmail(*upd.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if other != nil && other.ID != targetID {
			return nil, ErrEmailTaken
		}
	}
	return s.applyUpdate(usr, upd)
}

func (s *DefaultUserService) applyUpdate(usr *models.User, upd models.UserUpdate) (*models.User, error) {
	if upd.Name != nil {
		usr.Name = *upd.Name
	}
	if upd.Email != nil {
		usr.Email = *upd.Email
	}
	if upd.PhoneNumber != nil {
		usr.PhoneNumber = *upd.PhoneNumber
	}
	if upd.DateOfBirth != nil {
		usr.DateOfBirth = *upd.DateOfBirth
	}
	if upd.ImageURL != nil {
		usr.ImageURL = *upd.ImageURL
	}
	if err := s.Repo.Update(usr); err != nil {
		utils.GetLogger().Error("applyUpdate: failed to persist user", zap.String("id", usr.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return usr, nil
}

// DeleteUser removes an account. Deletion is blocked while the account
// still owns appointments, and an admin cannot delete themselves.
func (s *DefaultUserService) DeleteUser(adminID, targetID string) error {
	if adminID == targetID {
		return ErrSelfDelete
	}
	usr, err := s.GetUserByID(targetID)
	if err != nil {
		return err
	}

	count, err := s.ApptRepo.CountByUser(targetID)
	if err != nil {
		return fmt.Errorf("failed to count appointments: %w", err)
	}
	if count > 0 {
		return &HasAppointmentsError{Name: usr.Name, Count: count}
	}

	if err := s.Repo.Delete(targetID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
