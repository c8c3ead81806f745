package models

import (
	"time"
)

// NotificationType identifies the interaction that produced a notification.
type NotificationType string

const (
	// NotificationTypeLike is emitted when a post is liked.
	NotificationTypeLike NotificationType = "LIKE"
	// NotificationTypeRepost is emitted when a post is reposted.
	NotificationTypeRepost NotificationType = "REPOST"
	// NotificationTypeFollow is emitted when a user is followed.
	NotificationTypeFollow NotificationType = "FOLLOW"
)

// Notification is an append-only record of one sender's action addressed to
// a receiver. Rows are created as a side effect of like/repost/follow and
// deleted when the originating edge is removed.
type Notification struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	Type       NotificationType `gorm:"type:varchar(20);not null;index" json:"type"`
	SenderID   uint             `gorm:"not null;index" json:"sender_id"`
	ReceiverID uint             `gorm:"not null;index" json:"receiver_id"`
	PostID     *uint            `gorm:"index" json:"post_id,omitempty"`
	Content    string           `gorm:"not null" json:"content"`
	IsRead     bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt  time.Time        `json:"created_at"`

	Sender   User `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"-"`
	Receiver User `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"-"`
}
