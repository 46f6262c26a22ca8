package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"docassist/middleware"
	"docassist/models"
	"docassist/services/storage"
	"docassist/services/user"
	"docassist/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes profile endpoints plus the admin user CRUD.
type UserHandler struct {
	UserService user.UserService
	StorageSvc  storage.StorageService
}

// GetProfileHandler handles GET /api/users/me.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	usr, err := h.UserService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Fetch profile failed", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, usr)
}

// UpdateProfileHandler handles PUT /api/users/me.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	var upd models.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	usr, err := h.UserService.UpdateProfile(userID, upd)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, user.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			utils.GetLogger().Error("Profile update failed", zap.String("id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		}
		return
	}
	c.JSON(http.StatusOK, usr)
}

// UploadProfileImageHandler handles POST /api/users/me/image. The uploaded
// file lands in image storage and the resulting URL is saved on the profile.
func (h *UserHandler) UploadProfileImageHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID := c.GetString(middleware.CtxUserID)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided"})
		return
	}
	if err := validateImageUpload(fileHeader); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		logger.Error("Saving upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file"})
		return
	}
	defer os.Remove(tempFilePath)

	publicID, url, err := h.StorageSvc.UploadImage(c, tempFilePath, "users/avatars")
	if err != nil {
		logger.Error("Avatar upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image"})
		return
	}

	usr, err := h.UserService.SetProfileImage(userID, publicID, url)
	if err != nil {
		logger.Error("Saving avatar URL failed", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_url": url, "user": usr})
}

// DeleteProfileImageHandler handles DELETE /api/users/me/image. The stored
// asset is destroyed first; the profile fields are cleared only once that
// succeeds.
func (h *UserHandler) DeleteProfileImageHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID := c.GetString(middleware.CtxUserID)

	usr, err := h.UserService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Fetch profile failed", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}
	if usr.ImageURL == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no profile image found"})
		return
	}

	if usr.ImagePublicID != "" {
		if err := h.StorageSvc.DeleteImage(c, usr.ImagePublicID); err != nil {
			logger.Error("Avatar delete failed", zap.String("id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete image"})
			return
		}
	}

	usr, err = h.UserService.SetProfileImage(userID, "", "")
	if err != nil {
		logger.Error("Clearing avatar failed", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile image deleted", "user": usr})
}

// GetAllUsersHandler handles GET /api/admin/users.
func (h *UserHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := h.UserService.GetAllUsers()
	if err != nil {
		utils.GetLogger().Error("List users failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// AdminUpdateUserHandler handles PUT /api/admin/users/:id.
func (h *UserHandler) AdminUpdateUserHandler(c *gin.Context) {
	targetID := c.Param("id")

	var upd models.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	usr, err := h.UserService.AdminUpdateUser(targetID, upd)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, user.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			utils.GetLogger().Error("Admin user update failed", zap.String("id", targetID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		}
		return
	}
	c.JSON(http.StatusOK, usr)
}

// DeleteUserHandler handles DELETE /api/admin/users/:id.
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	adminID := c.GetString(middleware.CtxUserID)
	targetID := c.Param("id")

	if err := h.UserService.DeleteUser(adminID, targetID); err != nil {
		var blocked *user.HasAppointmentsError
		switch {
		case errors.Is(err, user.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, user.ErrSelfDelete):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &blocked):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			utils.GetLogger().Error("Delete user failed", zap.String("id", targetID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
