package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-matcher/internal/repositories"
)

// DocumentHeader carries the ledger ID of a recorded upload.
const DocumentHeader = "X-Document-ID"

type DocumentHandler struct {
	docRepo repositories.DocumentRepository
}

func NewDocumentHandler(docRepo repositories.DocumentRepository) *DocumentHandler {
	return &DocumentHandler{docRepo: docRepo}
}

// HandleGetDocument handles GET /documents/:id
func (h *DocumentHandler) HandleGetDocument(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid document ID")
	}

	doc, err := h.docRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Document not found")
		}
		return err
	}

	return c.JSON(doc)
}
