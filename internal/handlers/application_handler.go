package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/job-tracker/internal/middleware"
	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/services"
)

type ApplicationHandler struct {
	appService services.ApplicationService
}

func NewApplicationHandler(appService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

// HandleList handles GET /applications
func (h *ApplicationHandler) HandleList(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	apps, err := h.appService.List(userID, models.ApplicationStatus(c.Query("status")))
	if err != nil {
		return err
	}
	return c.JSON(apps)
}

// HandleBoard handles GET /applications/board
func (h *ApplicationHandler) HandleBoard(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	board, err := h.appService.Board(userID)
	if err != nil {
		return err
	}
	return c.JSON(board)
}

// HandleCreate handles POST /applications
func (h *ApplicationHandler) HandleCreate(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req models.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}

	app, err := h.appService.Create(userID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

// HandleGet handles GET /applications/:id
func (h *ApplicationHandler) HandleGet(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	app, err := h.appService.Get(userID, id)
	if err != nil {
		return err
	}
	return c.JSON(app)
}

// HandleUpdate handles PATCH /applications/:id. Records owned by someone
// else are reported as {"affected": 0}.
func (h *ApplicationHandler) HandleUpdate(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var update models.ApplicationUpdate
	if err := c.BodyParser(&update); err != nil {
		return invalidPayload()
	}

	affected, err := h.appService.Update(userID, id, &update)
	if err != nil {
		return err
	}
	return c.JSON(models.AffectedResponse{Affected: affected})
}

// HandleDelete handles DELETE /applications/:id
func (h *ApplicationHandler) HandleDelete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	affected, err := h.appService.Delete(userID, id)
	if err != nil {
		return err
	}
	return c.JSON(models.AffectedResponse{Affected: affected})
}

// HandleInsertSamples handles POST /applications/sample
func (h *ApplicationHandler) HandleInsertSamples(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	inserted, err := h.appService.InsertSampleData(userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"inserted": inserted,
	})
}

// HandleClearSamples handles DELETE /applications/sample
func (h *ApplicationHandler) HandleClearSamples(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	affected, err := h.appService.ClearSampleData(userID)
	if err != nil {
		return err
	}
	return c.JSON(models.AffectedResponse{Affected: affected})
}
