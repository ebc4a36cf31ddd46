package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/services"
)

// ErrorHandler is the app-wide Fiber error handler. Every error body has the
// shape {"error": message, "code": status}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := StatusCode(err)
	message := err.Error()

	if code >= fiber.StatusInternalServerError && code != fiber.StatusBadGateway && code != fiber.StatusServiceUnavailable {
		log.Printf("❌ %s %s: %v\n", c.Method(), c.Path(), err)
		message = "internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
		"code":  code,
	})
}

// StatusCode maps domain errors to HTTP status codes.
func StatusCode(err error) int {
	var (
		fiberErr        *fiber.Error
		extraction      *models.ExtractionError
		invalidType     *models.InvalidRequestTypeError
		validation      *models.ValidationError
		notAuthorized   *models.NotAuthorizedError
		userNotFound    *models.UserNotFoundError
		resumeNotFound  *models.ResumeNotFoundError
		appNotFound     *models.ApplicationNotFoundError
		noChoice        *models.NoCompletionChoiceError
		transportFailed *models.CompletionTransportError
	)

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.As(err, &extraction), errors.As(err, &invalidType), errors.As(err, &validation):
		return fiber.StatusBadRequest
	case errors.As(err, &notAuthorized):
		return fiber.StatusUnauthorized
	case errors.As(err, &userNotFound), errors.As(err, &resumeNotFound), errors.As(err, &appNotFound):
		return fiber.StatusNotFound
	case errors.As(err, &noChoice), errors.As(err, &transportFailed):
		return fiber.StatusBadGateway
	case errors.Is(err, services.ErrIndexDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func paramID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, &models.ValidationError{Field: name, Message: "must be a valid UUID"}
	}
	return id, nil
}

func paramIndex(c *fiber.Ctx, name string) (int, error) {
	index, err := strconv.Atoi(c.Params(name))
	if err != nil {
		return 0, &models.ValidationError{Field: name, Message: "must be an integer"}
	}
	return index, nil
}

func invalidPayload() error {
	return &models.ValidationError{Field: "body", Message: "is not a valid JSON payload"}
}
