package server

import (
	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetSavedPosts returns the IDs of the posts the caller has saved.
func (s *Server) GetSavedPosts(c *fiber.Ctx) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return models.RespondWithAppError(c, models.NewUnauthorizedError("Not authenticated!"))
	}

	saved, err := s.userService.SavedPosts(c.UserContext(), ident.Subject)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(saved)
}

type savePostRequest struct {
	PostID uint `json:"postId"`
}

// ToggleSavedPost saves the post for the caller, or unsaves it when already
// saved.
func (s *Server) ToggleSavedPost(c *fiber.Ctx) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return models.RespondWithAppError(c, models.NewUnauthorizedError("Not authenticated!"))
	}

	var req savePostRequest
	if err := c.BodyParser(&req); err != nil || req.PostID == 0 {
		return models.RespondWithAppError(c, models.NewValidationError("postId is required"))
	}

	saved, err := s.userService.ToggleSavedPost(c.UserContext(), ident.Subject, req.PostID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	message := "Post unsaved"
	if saved {
		message = "Post saved"
	}
	return c.JSON(fiber.Map{"message": message})
}
