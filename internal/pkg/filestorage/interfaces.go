package filestorage

import (
	"errors"
	"mime/multipart"
)

// ErrNotAnImage is returned when an upload that must be an image is not one
var ErrNotAnImage = errors.New("upload a valid image. The file you uploaded was either not an image or a corrupted image")

// FileStorage defines the interface for file storage operations.
// Stored files are addressed by a slash-separated path relative to the
// storage root, e.g. "posts/3f1c....png".
type FileStorage interface {
	// SaveImage stores the upload under subPath and returns its relative path.
	// Uploads that do not sniff as a raster image yield ErrNotAnImage.
	SaveImage(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a stored file; a missing file is not an error
	DeleteFile(relPath string) error

	// GetFullPath returns the filesystem path of a stored file
	GetFullPath(relPath string) string

	// URL returns the public URL a stored file is served at
	URL(relPath string) string
}
