package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/job-tracker/internal/middleware"
	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/services"
)

const (
	defaultSearchLimit = 5
	maxSearchLimit     = 50
)

type InsightHandler struct {
	insightService services.InsightService
	appService     services.ApplicationService
	index          services.InsightIndex
}

func NewInsightHandler(
	insightService services.InsightService,
	appService services.ApplicationService,
	index services.InsightIndex,
) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
		appService:     appService,
		index:          index,
	}
}

// HandleGenerate handles POST /applications/:id/insights. The text is
// returned to the caller and not saved.
func (h *InsightHandler) HandleGenerate(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req models.InsightRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}

	text, err := h.insightService.GenerateForApplication(c.UserContext(), userID, id, req.Type)
	if err != nil {
		return err
	}
	return c.JSON(models.InsightResponse{Type: req.Type, Text: text})
}

// HandleGenerateFromPayload handles POST /insights, for a job spec that is
// not stored on any application yet.
func (h *InsightHandler) HandleGenerateFromPayload(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req models.InsightRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}

	text, err := h.insightService.GenerateInsight(c.UserContext(), userID, services.InsightInput{
		JobSpec:     req.JobSpec,
		ResumeName:  req.ResumeName,
		RequestType: req.Type,
	})
	if err != nil {
		return err
	}
	return c.JSON(models.InsightResponse{Type: req.Type, Text: text})
}

// HandleSave handles POST /applications/:id/insights/:type
func (h *InsightHandler) HandleSave(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	requestType := models.RequestType(c.Params("type"))

	var req models.SaveInsightRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}

	responses, err := h.appService.SaveInsight(userID, id, requestType, req.Text)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(models.InsightListResponse{
		ApplicationID: id.String(),
		Type:          requestType,
		Responses:     responses,
	})
}

// HandleRemove handles DELETE /applications/:id/insights/:type/:index
func (h *InsightHandler) HandleRemove(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	index, err := paramIndex(c, "index")
	if err != nil {
		return err
	}
	requestType := models.RequestType(c.Params("type"))

	responses, err := h.appService.RemoveInsight(userID, id, requestType, index)
	if err != nil {
		return err
	}
	return c.JSON(models.InsightListResponse{
		ApplicationID: id.String(),
		Type:          requestType,
		Responses:     responses,
	})
}

// HandleSearch handles GET /insights/search?q=&limit=
func (h *InsightHandler) HandleSearch(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return &models.ValidationError{Field: "q", Message: "is required"}
	}

	limit := c.QueryInt("limit", defaultSearchLimit)
	if limit < 1 || limit > maxSearchLimit {
		return &models.ValidationError{Field: "limit", Message: "must be between 1 and 50"}
	}

	results, err := h.index.Search(c.UserContext(), userID, query, limit)
	if err != nil {
		return err
	}
	return c.JSON(results)
}
