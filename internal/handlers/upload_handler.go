package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

const resumeField = "resume"

// ResumeMatcher scores a stored résumé file.
type ResumeMatcher interface {
	Match(ctx context.Context, filePath string) (float64, error)
}

type UploadHandler struct {
	matcher        ResumeMatcher
	storageService services.StorageService
	maxFileSize    int64

	// Optional; nil disables them.
	docRepo  repositories.DocumentRepository
	archiver services.Archiver
}

func NewUploadHandler(
	matcher ResumeMatcher,
	storageService services.StorageService,
	maxFileSize int64,
	docRepo repositories.DocumentRepository,
	archiver services.Archiver,
) *UploadHandler {
	return &UploadHandler{
		matcher:        matcher,
		storageService: storageService,
		maxFileSize:    maxFileSize,
		docRepo:        docRepo,
		archiver:       archiver,
	}
}

// HandleUpload handles POST /upload
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No file uploaded")
	}

	files := form.File[resumeField]
	if len(files) == 0 {
		// mime/multipart files a part under Value whenever its filename is
		// empty, whether the parameter was "" or absent, so a plain text field
		// named resume also lands here.
		if _, ok := form.Value[resumeField]; ok {
			return fiber.NewError(fiber.StatusBadRequest, "Empty filename")
		}
		return fiber.NewError(fiber.StatusBadRequest, "No file uploaded")
	}

	file := files[0]
	if file.Filename == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Empty filename")
	}

	if file.Size > h.maxFileSize {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize))
	}

	filename := services.SecureFilename(file.Filename)
	if filename == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid filename")
	}

	storedName, filePath, err := h.storageService.SaveFile(file, filename)
	if err != nil {
		return err
	}

	contentType := file.Header.Get(fiber.HeaderContentType)
	doc := &models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		StoredFileName:   storedName,
		FilePath:         filePath,
		ContentType:      contentType,
		SizeBytes:        file.Size,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if h.recordUpload(c.UserContext(), doc) {
		c.Set(DocumentHeader, doc.ID.String())
	}

	score, err := h.matcher.Match(c.UserContext(), filePath)
	if err != nil {
		log.Printf("❌ Failed to score %s: %v\n", storedName, err)
		return err
	}

	return c.JSON(models.MatchResponse{
		Filename:   filename,
		MatchScore: score,
	})
}

// recordUpload writes the ledger row and archive copy. Failures are only
// logged. It reports whether the ledger row was written.
func (h *UploadHandler) recordUpload(ctx context.Context, doc *models.Document) bool {
	recorded := false
	if h.docRepo != nil {
		if err := h.docRepo.Create(doc); err != nil {
			log.Printf("⚠️  Failed to record upload %s: %v\n", doc.StoredFileName, err)
		} else {
			recorded = true
		}
	}

	if h.archiver != nil {
		if err := h.archiver.Archive(ctx, doc.FilePath, doc.StoredFileName, doc.ContentType); err != nil {
			log.Printf("⚠️  Failed to archive upload %s: %v\n", doc.StoredFileName, err)
		}
	}

	return recorded
}
