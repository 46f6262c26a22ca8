package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"docassist/models"
	"docassist/services/doctor"
	"docassist/services/storage"
	"docassist/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DoctorHandler exposes the public doctor directory and the admin CRUD.
type DoctorHandler struct {
	DoctorService doctor.DoctorService
	StorageSvc    storage.StorageService
}

// ListDoctorsHandler handles GET /api/doctors.
func (h *DoctorHandler) ListDoctorsHandler(c *gin.Context) {
	doctors, err := h.DoctorService.ListDoctors()
	if err != nil {
		utils.GetLogger().Error("List doctors failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list doctors"})
		return
	}
	c.JSON(http.StatusOK, doctors)
}

// GetDoctorHandler handles GET /api/doctors/:id.
func (h *DoctorHandler) GetDoctorHandler(c *gin.Context) {
	id := c.Param("id")
	doc, err := h.DoctorService.GetDoctorByID(id)
	if err != nil {
		if errors.Is(err, doctor.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Fetch doctor failed", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load doctor"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// AddDoctorHandler handles POST /api/admin/doctors.
func (h *DoctorHandler) AddDoctorHandler(c *gin.Context) {
	var doc models.Doctor
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.DoctorService.AddDoctor(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// UpdateDoctorHandler handles PUT /api/admin/doctors/:id.
func (h *DoctorHandler) UpdateDoctorHandler(c *gin.Context) {
	id := c.Param("id")

	var upd models.DoctorUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	doc, err := h.DoctorService.UpdateDoctor(id, upd)
	if err != nil {
		if errors.Is(err, doctor.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Doctor update failed", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update doctor"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// DeleteDoctorHandler handles DELETE /api/admin/doctors/:id.
func (h *DoctorHandler) DeleteDoctorHandler(c *gin.Context) {
	id := c.Param("id")

	if err := h.DoctorService.DeleteDoctor(id); err != nil {
		var blocked *doctor.HasActiveAppointmentsError
		switch {
		case errors.Is(err, doctor.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.As(err, &blocked):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			utils.GetLogger().Error("Delete doctor failed", zap.String("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete doctor"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor deleted"})
}

// UploadDoctorImageHandler handles POST /api/admin/doctors/:id/image.
func (h *DoctorHandler) UploadDoctorImageHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

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

	_, url, err := h.StorageSvc.UploadImage(c, tempFilePath, "doctors/portraits")
	if err != nil {
		logger.Error("Doctor image upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image"})
		return
	}

	doc, err := h.DoctorService.UpdateDoctor(id, models.DoctorUpdate{ImageURL: &url})
	if err != nil {
		if errors.Is(err, doctor.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Saving doctor image URL failed", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update doctor"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_url": url, "doctor": doc})
}
