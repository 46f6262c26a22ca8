package storage

import "context"

// StorageService stores uploaded images and resolves their public URLs.
// Images here are user avatars and doctor portraits; the returned URL is
// what gets written onto the profile.
type StorageService interface {
	UploadImage(ctx context.Context, localFilePath, destFolder string) (publicID, url string, err error)
	DeleteImage(ctx context.Context, publicID string) error
}
