package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/yigit/yatube/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // root directory files are written under
	baseURL  string // URL prefix the root is served at, e.g. /media
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
// baseURL is the prefix URL builds files' public addresses from.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// BasePath returns the storage root
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// SaveImage saves fileHeader under subPath after checking its content is an image.
// The stored extension follows the detected type, not the client's file name.
func (ls *LocalStorage) SaveImage(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return "", fmt.Errorf("failed to detect file type: %w", err)
	}
	if !IsImage(mtype) {
		logger.Warn().Str("filename", fileHeader.Filename).Str("mime", mtype.String()).Msg("Rejected non-image upload")
		return "", ErrNotAnImage
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind uploaded file: %w", err)
	}

	return ls.write(file, mtype.Extension(), subPath)
}

// imageTypes are the raster formats accepted for post images. Vector and
// markup-based types such as image/svg+xml can carry scripts and are refused.
var imageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/bmp",
}

// IsImage reports whether a detected type is an accepted raster image
func IsImage(mtype *mimetype.MIME) bool {
	for _, allowed := range imageTypes {
		if mtype.Is(allowed) {
			return true
		}
	}
	return false
}

func (ls *LocalStorage) write(src io.Reader, ext, subPath string) (string, error) {
	subPath = strings.Trim(path.Clean("/"+filepath.ToSlash(subPath)), "/")

	fullDirPath := filepath.Join(ls.basePath, filepath.FromSlash(subPath))
	if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	// Unique name so uploads never overwrite each other
	uniqueFilename := uuid.New().String() + strings.ToLower(ext)
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	relPath := path.Join(subPath, uniqueFilename)
	logger.Info().Str("saved_as", relPath).Msg("File saved successfully")
	return relPath, nil
}

// DeleteFile removes a file from the storage filesystem.
// Returns nil if deletion is successful or if the file doesn't exist.
func (ls *LocalStorage) DeleteFile(relPath string) error {
	if relPath == "" {
		return nil
	}

	physicalPath := ls.GetFullPath(relPath)
	if physicalPath == "" {
		return fmt.Errorf("invalid file path: %s", relPath)
	}

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// GetFullPath returns the filesystem path of relPath, or "" when relPath
// would escape the storage root
func (ls *LocalStorage) GetFullPath(relPath string) string {
	cleaned := strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(relPath)), "/")
	if cleaned == "" {
		return ""
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(cleaned))
}

// URL returns the public URL relPath is served at
func (ls *LocalStorage) URL(relPath string) string {
	if relPath == "" {
		return ""
	}
	return ls.baseURL + "/" + strings.TrimLeft(relPath, "/")
}
