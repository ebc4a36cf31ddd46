package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/job-tracker/internal/middleware"
	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/services"
)

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// HandleCreateUser handles POST /users
func (h *ProfileHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req models.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}

	user, err := h.profileService.CreateUser(&req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(models.ProfileResponse{
		ID:      user.ID.String(),
		Name:    user.Name,
		Email:   user.Email,
		Resumes: user.ResumeNames(),
	})
}

// HandleGet handles GET /profile
func (h *ProfileHandler) HandleGet(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	profile, err := h.profileService.Get(userID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// HandleUpdate handles PUT /profile
func (h *ProfileHandler) HandleUpdate(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req models.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}

	profile, err := h.profileService.Update(userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// HandleResumes handles GET /profile/resumes
func (h *ProfileHandler) HandleResumes(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	names, err := h.profileService.ResumeNames(userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"resumes": names,
	})
}
