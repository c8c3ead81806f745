package repository

import (
	"context"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	ListAndMarkRead(ctx context.Context, receiverID uint) ([]models.Notification, error)
	CountUnread(ctx context.Context, receiverID uint) (int64, error)
}

// notificationRepository implements NotificationRepository
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// ListAndMarkRead returns all of the receiver's notifications newest first
// and marks every unread one as read in the same transaction. The read and
// the update share the receiver filter, so nothing is marked read without
// having been listed. The returned snapshot keeps the pre-read IsRead values
// so clients can render the unread state the list itself consumed.
func (r *notificationRepository) ListAndMarkRead(ctx context.Context, receiverID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Sender").
			Where("receiver_id = ?", receiverID).
			Order("created_at DESC").
			Find(&notifications).Error; err != nil {
			return err
		}
		return tx.Model(&models.Notification{}).
			Where("receiver_id = ? AND is_read = ?", receiverID, false).
			Update("is_read", true).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, receiverID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
