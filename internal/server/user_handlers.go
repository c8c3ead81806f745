package server

import (
	"chirp/internal/models"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile returns the caller's own profile.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)
	user, err := s.userService.GetByID(c.UserContext(), userID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

type updateProfileRequest struct {
	Name          *string `json:"name"`
	Bio           *string `json:"bio"`
	ProfileImgURL *string `json:"profile_img_url"`
	CoverImgURL   *string `json:"cover_img_url"`
	Password      *string `json:"password"`
}

// UpdateMyProfile applies partial updates to the caller's profile.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), currentUserID(c), service.ProfileUpdate{
		Name:          req.Name,
		Bio:           req.Bio,
		ProfileImgURL: req.ProfileImgURL,
		CoverImgURL:   req.CoverImgURL,
		Password:      req.Password,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// ListUsers searches users by username or display name, excluding the caller.
func (s *Server) ListUsers(c *fiber.Ctx) error {
	users, err := s.userService.Search(c.UserContext(), currentUserID(c),
		c.Query("search"), c.QueryInt("limit", 0))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

// GetUserProfile returns a user's profile projected for the caller.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetByID(c.UserContext(), targetID, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUserByUsername returns a user's profile looked up by username. Public;
// the projection is personalized when a token is present.
func (s *Server) GetUserByUsername(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid username"))
	}

	user, err := s.userService.GetByUsername(c.UserContext(), username, s.optionalUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUserLikes returns the posts a user has liked, projected for the caller.
func (s *Server) GetUserLikes(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}

	items, err := s.timelineService.LikedBy(c.UserContext(), targetID, currentUserID(c),
		c.QueryInt("limit", 0))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(items)
}
