package server

import (
	"chirp/internal/models"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	Content      string `json:"content"`
	ImgURL       string `json:"img_url"`
	ParentPostID *uint  `json:"parent_post_id"`
}

// CreatePost creates a new post or reply.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Create(c.UserContext(), currentUserID(c), service.CreatePostInput{
		Content:      req.Content,
		ImgURL:       req.ImgURL,
		ParentPostID: req.ParentPostID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// DeletePost deletes the caller's own post.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	if err := s.postService.Delete(c.UserContext(), currentUserID(c), postID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// GetFeed returns the merged feed for the requested mode. The viewer is
// optional; home mode requires one.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	mode, err := service.ParseFeedMode(c.Query("mode"))
	if err != nil {
		return respondServiceError(c, err)
	}

	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Limit cannot be negative"))
	}

	viewerID := s.optionalUserID(c)
	if mode.Kind == service.FeedModeHome && viewerID == 0 {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required for the home feed"))
	}

	items, err := s.timelineService.GetFeed(c.UserContext(), viewerID, mode,
		c.Query("search"), limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(items)
}

// GetThread returns a post with its direct replies.
func (s *Server) GetThread(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	thread, err := s.timelineService.GetThread(c.UserContext(), s.optionalUserID(c), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(thread)
}

// GetBookmarks returns the caller's bookmarked posts.
func (s *Server) GetBookmarks(c *fiber.Ctx) error {
	items, err := s.timelineService.Bookmarks(c.UserContext(), currentUserID(c),
		c.Query("search"), c.QueryInt("limit", 0))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(items)
}
