package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type StorageService interface {
	SaveFile(file *multipart.FileHeader, filename string) (storedName string, filePath string, err error)
	GetFilePath(storedName string) string
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile writes the upload under a UUID-prefixed copy of the already
// sanitized filename, so two uploads with the same name never collide.
func (s *storageService) SaveFile(file *multipart.FileHeader, filename string) (string, string, error) {
	if filename == "" || filename != filepath.Base(filename) {
		return "", "", fmt.Errorf("invalid filename: %q", filename)
	}

	storedName := fmt.Sprintf("%s_%s", uuid.New().String(), filename)
	filePath := s.GetFilePath(storedName)

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	if err := dst.Close(); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return storedName, filePath, nil
}

func (s *storageService) GetFilePath(storedName string) string {
	return filepath.Join(s.uploadPath, storedName)
}
