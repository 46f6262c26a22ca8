package user

import (
	"errors"
	"fmt"
)

var (
	// ErrEmailTaken signals that the email already belongs to an account.
	ErrEmailTaken = errors.New("a user with this email already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound signals that no user matches the given identifier.
	ErrNotFound = errors.New("user not found")
	// ErrSelfDelete signals an admin trying to delete their own account.
	ErrSelfDelete = errors.New("you cannot delete your own account")
)

// HasAppointmentsError blocks user deletion while appointments reference
// the account; Count is surfaced so the caller can report what is blocking.
type HasAppointmentsError struct {
	Name  string
	Count int64
}

func (e *HasAppointmentsError) Error() string {
	return fmt.Sprintf("cannot delete user %s: they have %d appointment(s); cancel or reassign them first", e.Name, e.Count)
}
