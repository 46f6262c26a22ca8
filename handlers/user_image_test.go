package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"docassist/middleware"
	"docassist/models"
	"docassist/services/user"

	"github.com/gin-gonic/gin"
)

type stubUserSvc struct {
	users map[string]*models.User
}

func (s *stubUserSvc) Register(models.UserRegistration) (*user.AuthResponse, error) { return nil, nil }
func (s *stubUserSvc) Login(string, string) (*user.AuthResponse, error)            { return nil, nil }
func (s *stubUserSvc) ForgotPassword(string) error                                 { return nil }
func (s *stubUserSvc) ResetPassword(string, string) error                          { return nil }
func (s *stubUserSvc) GetUserByID(id string) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}
func (s *stubUserSvc) GetUserByEmail(string) (*models.User, error) { return nil, user.ErrNotFound }
func (s *stubUserSvc) FindUserByName(string) (*models.User, error) { return nil, user.ErrNotFound }
func (s *stubUserSvc) UpdateProfile(id string, upd models.UserUpdate) (*models.User, error) {
	return s.users[id], nil
}
func (s *stubUserSvc) SetProfileImage(id, publicID, url string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	u.ImagePublicID = publicID
	u.ImageURL = url
	return u, nil
}
func (s *stubUserSvc) GetAllUsers() ([]models.User, error) { return nil, nil }
func (s *stubUserSvc) AdminUpdateUser(string, models.UserUpdate) (*models.User, error) {
	return nil, nil
}
func (s *stubUserSvc) DeleteUser(string, string) error { return nil }

type stubStorage struct {
	uploads int
	deleted []string
}

func (s *stubStorage) UploadImage(ctx context.Context, localFilePath, destFolder string) (string, string, error) {
	s.uploads++
	return "users/avatars/pid1", "https://img.example/pid1.png", nil
}

func (s *stubStorage) DeleteImage(ctx context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return nil
}

func newImageRouter(svc *stubUserSvc, store *stubStorage, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.CtxUserID, userID) })
	h := &UserHandler{UserService: svc, StorageSvc: store}
	r.POST("/users/me/image", h.UploadProfileImageHandler)
	r.DELETE("/users/me/image", h.DeleteProfileImageHandler)
	return r
}

func imageForm(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("form write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("form close: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestUploadProfileImageStoresHandle(t *testing.T) {
	svc := &stubUserSvc{users: map[string]*models.User{"u1": {ID: "u1", Name: "Jo"}}}
	store := &stubStorage{}
	r := newImageRouter(svc, store, "u1")

	body, contentType := imageForm(t, "avatar.png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/users/me/image", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if store.uploads != 1 {
		t.Fatalf("expected 1 upload, got %d", store.uploads)
	}
	u := svc.users["u1"]
	if u.ImagePublicID != "users/avatars/pid1" || u.ImageURL != "https://img.example/pid1.png" {
		t.Fatalf("image handle not stored: %+v", u)
	}
}

func TestUploadProfileImageRejectsUnsupportedType(t *testing.T) {
	svc := &stubUserSvc{users: map[string]*models.User{"u1": {ID: "u1"}}}
	store := &stubStorage{}
	r := newImageRouter(svc, store, "u1")

	body, contentType := imageForm(t, "notes.txt", []byte("not an image"))
	req := httptest.NewRequest(http.MethodPost, "/users/me/image", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if store.uploads != 0 {
		t.Fatalf("upload should not reach storage, got %d", store.uploads)
	}
}

func TestDeleteProfileImage(t *testing.T) {
	svc := &stubUserSvc{users: map[string]*models.User{"u1": {
		ID:            "u1",
		ImageURL:      "https://img.example/pid1.png",
		ImagePublicID: "users/avatars/pid1",
	}}}
	store := &stubStorage{}
	r := newImageRouter(svc, store, "u1")

	req := httptest.NewRequest(http.MethodDelete, "/users/me/image", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(store.deleted) != 1 || store.deleted[0] != "users/avatars/pid1" {
		t.Fatalf("asset not destroyed, deleted=%v", store.deleted)
	}
	u := svc.users["u1"]
	if u.ImageURL != "" || u.ImagePublicID != "" {
		t.Fatalf("image fields not cleared: %+v", u)
	}
}

func TestDeleteProfileImageWithoutImage(t *testing.T) {
	svc := &stubUserSvc{users: map[string]*models.User{"u1": {ID: "u1"}}}
	store := &stubStorage{}
	r := newImageRouter(svc, store, "u1")

	req := httptest.NewRequest(http.MethodDelete, "/users/me/image", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if len(store.deleted) != 0 {
		t.Fatalf("nothing should be destroyed, deleted=%v", store.deleted)
	}
}

func TestValidateImageUploadSizeCap(t *testing.T) {
	ok := &multipart.FileHeader{Filename: "big.webp", Size: maxUploadSize}
	if err := validateImageUpload(ok); err != nil {
		t.Fatalf("file at the cap should pass: %v", err)
	}
	tooBig := &multipart.FileHeader{Filename: "big.webp", Size: maxUploadSize + 1}
	if err := validateImageUpload(tooBig); err == nil {
		t.Fatal("file over the cap should be rejected")
	}
}
