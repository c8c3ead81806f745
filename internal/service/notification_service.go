package service

import (
	"context"
	"time"

	"chirp/internal/cache"
	"chirp/internal/models"
	"chirp/internal/repository"
)

const unreadCountTTL = 30 * time.Second

// NotificationService provides notification listing with read-on-list
// semantics.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService returns a new NotificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List returns the user's notifications newest first. Listing marks every
// unread notification as read; the returned items keep their pre-read
// IsRead values.
func (s *NotificationService) List(ctx context.Context, userID uint) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.ListAndMarkRead(ctx, userID)
	if err != nil {
		return nil, err
	}
	cache.InvalidateUnreadCount(ctx, userID)
	return notifications, nil
}

// UnreadCount returns the number of unread notifications, served from cache
// when fresh.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := cache.CacheAside(ctx, cache.UnreadCountKey(userID), &count, unreadCountTTL, func() error {
		var fetchErr error
		count, fetchErr = s.notificationRepo.CountUnread(ctx, userID)
		return fetchErr
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
