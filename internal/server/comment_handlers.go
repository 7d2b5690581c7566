package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments returns all comments on a post, newest first.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListComments(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(comments)
}

type createCommentRequest struct {
	Desc string `json:"desc"`
}

// CreateComment adds a comment authored by the caller.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	user, _, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		UserID: user.ID,
		PostID: postID,
		Desc:   req.Desc,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment deletes a comment. Owners delete their own; admins delete any.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, ident, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.UserContext(), ident, user.ID, commentID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
