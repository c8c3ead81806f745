package server

import (
	"context"

	"chirp/internal/middleware"
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

func outcomeCode(err error) string {
	if err == nil {
		return "ok"
	}
	return models.ErrorCode(err)
}

// postAction runs a post-scoped interaction and writes the uniform response.
func (s *Server) postAction(c *fiber.Ctx, action string, fn func(ctx context.Context, userID, postID uint) error, message string) error {
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	err = fn(c.UserContext(), currentUserID(c), postID)
	middleware.InteractionsTotal.WithLabelValues(action, outcomeCode(err)).Inc()
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": message})
}

// LikePost likes a post.
func (s *Server) LikePost(c *fiber.Ctx) error {
	return s.postAction(c, "like", s.interactionService.Like, "Post liked")
}

// UnlikePost removes a like.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	return s.postAction(c, "unlike", s.interactionService.Unlike, "Post unliked")
}

// BookmarkPost bookmarks a post.
func (s *Server) BookmarkPost(c *fiber.Ctx) error {
	return s.postAction(c, "bookmark", s.interactionService.Bookmark, "Post bookmarked")
}

// UnbookmarkPost removes a bookmark.
func (s *Server) UnbookmarkPost(c *fiber.Ctx) error {
	return s.postAction(c, "unbookmark", s.interactionService.Unbookmark, "Bookmark removed")
}

// RepostPost reposts a post.
func (s *Server) RepostPost(c *fiber.Ctx) error {
	return s.postAction(c, "repost", s.interactionService.Repost, "Post reposted")
}

// UnrepostPost removes a repost.
func (s *Server) UnrepostPost(c *fiber.Ctx) error {
	return s.postAction(c, "unrepost", s.interactionService.Unrepost, "Repost removed")
}

// FollowUser follows another user.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}

	err = s.interactionService.Follow(c.UserContext(), currentUserID(c), targetID)
	middleware.InteractionsTotal.WithLabelValues("follow", outcomeCode(err)).Inc()
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User followed"})
}

// UnfollowUser removes a follow.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}

	err = s.interactionService.Unfollow(c.UserContext(), currentUserID(c), targetID)
	middleware.InteractionsTotal.WithLabelValues("unfollow", outcomeCode(err)).Inc()
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User unfollowed"})
}
