package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/job-tracker/internal/models"
)

const (
	// UserIDHeader carries the id of the already authenticated caller.
	UserIDHeader = "X-User-ID"

	userIDKey = "userID"
)

// RequireUser resolves the caller and rejects the request with
// NotAuthorizedError when there is none.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Get(UserIDHeader))
		if raw == "" {
			return &models.NotAuthorizedError{}
		}

		userID, err := uuid.Parse(raw)
		if err != nil || userID == uuid.Nil {
			return &models.NotAuthorizedError{}
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// UserID returns the caller set by RequireUser.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID, ok := c.Locals(userIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, &models.NotAuthorizedError{}
	}
	return userID, nil
}
