package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts returns one page of the post listing.
//
// Query parameters: page, limit, cat, author, search, sort
// (newest|oldest|popular|trending), featured.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	in := service.ListPostsInput{
		Page:     c.QueryInt("page", 0),
		Limit:    c.QueryInt("limit", 0),
		Category: c.Query("cat"),
		Author:   c.Query("author"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		// Any non-empty value asks for the featured subset.
		Featured: c.Query("featured") != "",
	}

	page, err := s.postService.ListPosts(c.UserContext(), in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(page)
}

// GetPost returns a single post by slug and counts the visit.
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.postService.GetPost(c.UserContext(), c.Params("slug"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(post)
}

type createPostRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Desc     string `json:"desc"`
	Content  string `json:"content"`
	Img      string `json:"img"`
}

// CreatePost creates a post authored by the caller.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	user, _, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:   user.ID,
		Title:    req.Title,
		Category: req.Category,
		Desc:     req.Desc,
		Content:  req.Content,
		Img:      req.Img,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// DeletePost deletes a post. Owners delete their own; admins delete any.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, ident, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), ident, user.ID, postID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post has been deleted"})
}

type featurePostRequest struct {
	PostID uint `json:"postId"`
}

// FeaturePost toggles the featured flag on a post. Admin only; the route
// stacks AdminRequired.
func (s *Server) FeaturePost(c *fiber.Ctx) error {
	var req featurePostRequest
	if err := c.BodyParser(&req); err != nil || req.PostID == 0 {
		return models.RespondWithAppError(c, models.NewValidationError("postId is required"))
	}

	post, err := s.postService.FeaturePost(c.UserContext(), req.PostID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(post)
}

// GetUploadAuth issues short-lived credentials for a direct browser upload
// to the image host.
func (s *Server) GetUploadAuth(c *fiber.Ctx) error {
	if !s.uploadSigner.Configured() {
		return models.RespondWithAppError(c,
			models.NewInternalError(errUploadsNotConfigured))
	}
	return c.JSON(s.uploadSigner.Sign())
}
