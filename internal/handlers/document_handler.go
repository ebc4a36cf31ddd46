package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/job-tracker/internal/services"
)

type DocumentHandler struct {
	documentService services.DocumentService
}

func NewDocumentHandler(documentService services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// HandleUpload handles POST /documents. The PDF is not stored; the caller
// gets back a data URL to put on an application or in a profile.
func (h *DocumentHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No valid file uploaded. Please upload a PDF as 'file'.",
			"code":  fiber.StatusBadRequest,
		})
	}

	resp, err := h.documentService.Encode(file)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
