package handlers

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// maxUploadSize caps uploaded images at 5 MB.
const maxUploadSize = 5 << 20

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// validateImageUpload checks the filename extension and size before the
// file is accepted for storage.
func validateImageUpload(fh *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExtensions[ext] {
		return fmt.Errorf("unsupported file type %q: allowed types are jpg, jpeg, png, gif, bmp, webp", ext)
	}
	if fh.Size > maxUploadSize {
		return fmt.Errorf("file exceeds the %d MB size limit", maxUploadSize>>20)
	}
	return nil
}
