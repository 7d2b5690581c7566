package server

import (
	"errors"

	"inkwell/internal/auth"
	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) so
// Fiber's ErrorHandler does not overwrite the response.
var errResponseWritten = errors.New("response already written")

// errUploadsNotConfigured is returned when no image host private key is set.
var errUploadsNotConfigured = errors.New("image uploads are not configured")

// errWebhooksNotConfigured is returned when no webhook secret is set.
var errWebhooksNotConfigured = errors.New("webhook secret is not configured")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithAppError(c, models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// currentUser resolves the attached identity to its local user row. On any
// failure it writes the response and returns errResponseWritten.
func (s *Server) currentUser(c *fiber.Ctx) (*models.User, auth.Identity, error) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		_ = models.RespondWithAppError(c, models.NewUnauthorizedError("Not authenticated!"))
		return nil, auth.Identity{}, errResponseWritten
	}

	user, err := s.userService.ResolveSubject(c.UserContext(), ident.Subject)
	if err != nil {
		_ = models.RespondWithAppError(c, err)
		return nil, auth.Identity{}, errResponseWritten
	}
	return user, ident, nil
}

// isNotFound reports whether err is a record miss at either layer.
func isNotFound(err error) bool {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true
	}
	var appErr *models.AppError
	return errors.As(err, &appErr) && appErr.Status == fiber.StatusNotFound
}
