package user

import (
	"context"
	"errors"
	"testing"

	"docassist/config"
	"docassist/models"

	"golang.org/x/crypto/bcrypt"
)

func init() {
	config.AppConfig.TokenExpireMinutes = 30
	config.AppConfig.ResetExpireMinutes = 15
	config.AppConfig.JWTSecret = "test-secret"
}

type memUserRepo struct {
	users map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*models.User{}}
}

func (r *memUserRepo) Create(u *models.User) error { r.users[u.ID] = u; return nil }
func (r *memUserRepo) Update(u *models.User) error { r.users[u.ID] = u; return nil }
func (r *memUserRepo) Delete(id string) error      { delete(r.users, id); return nil }
func (r *memUserRepo) GetByID(id string) (*models.User, error) {
	return r.users[id], nil
}
func (r *memUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *memUserRepo) FindByName(name string) (*models.User, error) {
	for _, u := range r.users {
		if u.Name == name {
			return u, nil
		}
	}
	return nil, nil
}
func (r *memUserRepo) GetAll() ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

// apptCounter satisfies the appointment repository with a fixed per-user count.
type apptCounter struct {
	counts map[string]int64
}

func (a *apptCounter) ConfirmBySession(string, *models.Appointment) (*models.Appointment, error) {
	return nil, nil
}
func (a *apptCounter) Update(*models.Appointment) error                 { return nil }
func (a *apptCounter) GetByID(string) (*models.Appointment, error)      { return nil, nil }
func (a *apptCounter) GetBySessionID(string) (*models.Appointment, error) { return nil, nil }
func (a *apptCounter) GetActiveByUserAndDoctor(string, string) (*models.Appointment, error) {
	return nil, nil
}
func (a *apptCounter) ListByUser(string) ([]models.Appointment, error) { return nil, nil }
func (a *apptCounter) ListAll() ([]models.Appointment, error)          { return nil, nil }
func (a *apptCounter) CountByUser(userID string) (int64, error)        { return a.counts[userID], nil }
func (a *apptCounter) CountActiveByDoctor(string) (int64, error)       { return 0, nil }

type captureMailer struct {
	resetTokens []string
}

func (m *captureMailer) SendAppointmentConfirmation(ctx context.Context, md models.BookingMetadata) error {
	return nil
}
func (m *captureMailer) SendAppointmentReminder(ctx context.Context, p models.ReminderPayload) error {
	return nil
}
func (m *captureMailer) SendPasswordReset(ctx context.Context, email, name, token string) error {
	m.resetTokens = append(m.resetTokens, token)
	return nil
}

func newTestUserService() (*DefaultUserService, *memUserRepo, *apptCounter, *captureMailer) {
	repo := newMemUserRepo()
	appts := &apptCounter{counts: map[string]int64{}}
	mailer := &captureMailer{}
	svc := &DefaultUserService{Repo: repo, ApptRepo: appts, Mailer: mailer}
	return svc, repo, appts, mailer
}

func TestRegisterIssuesTokenAndHashesPassword(t *testing.T) {
	svc, repo, _, _ := newTestUserService()

	resp, err := svc.Register(models.UserRegistration{
		Name: "Jo Doe", Email: "jo@example.com", Password: "hunter2secret",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if resp.Token == "" || resp.Type != "bearer" {
		t.Fatalf("expected a bearer token, got %+v", resp)
	}
	if resp.User.Role != models.RoleUser {
		t.Fatalf("new accounts must get the user role, got %q", resp.User.Role)
	}

	stored, _ := repo.GetByEmail("jo@example.com")
	if stored.PasswordHash == "hunter2secret" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2secret")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestUserService()

	if _, err := svc.Register(models.UserRegistration{Name: "Jo", Email: "jo@example.com", Password: "hunter2secret"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(models.UserRegistration{Name: "Jo 2", Email: "jo@example.com", Password: "otherpassword"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _, _, _ := newTestUserService()
	if _, err := svc.Register(models.UserRegistration{Name: "Jo", Email: "jo@example.com", Password: "hunter2secret"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	resp, err := svc.Login("jo@example.com", "hunter2secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}

	if _, err := svc.Login("jo@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login("ghost@example.com", "hunter2secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _, _, mailer := newTestUserService()
	if _, err := svc.Register(models.UserRegistration{Name: "Jo", Email: "jo@example.com", Password: "hunter2secret"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Unknown emails are silently accepted and send nothing.
	if err := svc.ForgotPassword("ghost@example.com"); err != nil {
		t.Fatalf("unknown email must not error: %v", err)
	}
	if len(mailer.resetTokens) != 0 {
		t.Fatal("no email may be sent for unknown accounts")
	}

	if err := svc.ForgotPassword("jo@example.com"); err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}
	if len(mailer.resetTokens) != 1 {
		t.Fatalf("expected one reset email, got %d", len(mailer.resetTokens))
	}

	if err := svc.ResetPassword(mailer.resetTokens[0], "newpassword99"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if _, err := svc.Login("jo@example.com", "newpassword99"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if _, err := svc.Login("jo@example.com", "hunter2secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password must no longer work, got %v", err)
	}
}

func TestResetPasswordRejectsAccessToken(t *testing.T) {
	svc, _, _, _ := newTestUserService()
	resp, err := svc.Register(models.UserRegistration{Name: "Jo", Email: "jo@example.com", Password: "hunter2secret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// An access token must not pass as a reset token.
	if err := svc.ResetPassword(resp.Token, "newpassword99"); err == nil {
		t.Fatal("access token accepted for password reset")
	}
}

func TestDeleteUserGuards(t *testing.T) {
	svc, repo, appts, _ := newTestUserService()
	repo.users["admin-1"] = &models.User{ID: "admin-1", Name: "Sam", Role: models.RoleAdmin}
	repo.users["user-1"] = &models.User{ID: "user-1", Name: "Jo"}
	appts.counts["user-1"] = 2

	if err := svc.DeleteUser("admin-1", "admin-1"); !errors.Is(err, ErrSelfDelete) {
		t.Fatalf("expected ErrSelfDelete, got %v", err)
	}

	err := svc.DeleteUser("admin-1", "user-1")
	var blocked *HasAppointmentsError
	if !errors.As(err, &blocked) {
		t.Fatalf("expected HasAppointmentsError, got %v", err)
	}
	if blocked.Count != 2 {
		t.Fatalf("expected count 2, got %d", blocked.Count)
	}

	appts.counts["user-1"] = 0
	if err := svc.DeleteUser("admin-1", "user-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := repo.users["user-1"]; ok {
		t.Fatal("user not removed")
	}

	if err := svc.DeleteUser("admin-1", "user-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAdminUpdateUserEmailUniqueness(t *testing.T) {
	svc, repo, _, _ := newTestUserService()
	repo.users["u1"] = &models.User{ID: "u1", Name: "A", Email: "a@example.com"}
	repo.users["u2"] = &models.User{ID: "u2", Name: "B", Email: "b@example.com"}

	taken := "a@example.com"
	if _, err := svc.AdminUpdateUser("u2", models.UserUpdate{Email: &taken}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	fresh := "c@example.com"
	usr, err := svc.AdminUpdateUser("u2", models.UserUpdate{Email: &fresh})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if usr.Email != "c@example.com" {
		t.Fatalf("email not applied, got %q", usr.Email)
	}
}

func TestSetProfileImage(t *testing.T) {
	svc, repo, _, _ := newTestUserService()
	repo.users["u1"] = &models.User{ID: "u1", Name: "A", Email: "a@example.com"}

	usr, err := svc.SetProfileImage("u1", "users/avatars/abc123", "https://img.example/abc123.png")
	if err != nil {
		t.Fatalf("set image failed: %v", err)
	}
	if usr.ImagePublicID != "users/avatars/abc123" || usr.ImageURL != "https://img.example/abc123.png" {
		t.Fatalf("image fields not stored: %+v", usr)
	}

	usr, err = svc.SetProfileImage("u1", "", "")
	if err != nil {
		t.Fatalf("clear image failed: %v", err)
	}
	if usr.ImagePublicID != "" || usr.ImageURL != "" {
		t.Fatalf("image fields not cleared: %+v", usr)
	}

	if _, err := svc.SetProfileImage("ghost", "pid", "url"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
