package server

import (
	"time"

	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

type notificationResponse struct {
	ID        uint                    `json:"id"`
	Type      models.NotificationType `json:"type"`
	Sender    models.UserSummary      `json:"sender"`
	PostID    *uint                   `json:"post_id,omitempty"`
	Content   string                  `json:"content"`
	IsRead    bool                    `json:"is_read"`
	CreatedAt time.Time               `json:"created_at"`
}

// GetNotifications returns the caller's notifications newest first. Listing
// marks every unread notification as read; the returned items keep the
// unread state the caller is consuming.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	notifications, err := s.notificationService.List(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	resp := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		resp = append(resp, notificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Sender:    n.Sender.Summary(),
			PostID:    n.PostID,
			Content:   n.Content,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return c.JSON(resp)
}

// GetUnreadCount returns the caller's unread notification count.
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	count, err := s.notificationService.UnreadCount(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"unread_count": count})
}
