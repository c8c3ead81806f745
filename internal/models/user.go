// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a user account. Identity fields (ID, Username) are
// immutable once created; profile fields are mutable.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Username      string    `gorm:"unique;not null" json:"username"`
	Email         string    `gorm:"unique;not null" json:"email"`
	Password      string    `gorm:"not null" json:"-"`
	Name          string    `gorm:"not null" json:"name"`
	Bio           string    `json:"bio"`
	ProfileImgURL string    `json:"profile_img_url"`
	CoverImgURL   string    `json:"cover_img_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// FollowerCount is not persisted; computed at query time
	FollowerCount int `gorm:"->" json:"follower_count"`
	// FollowingCount is not persisted; computed at query time
	FollowingCount int `gorm:"->" json:"following_count"`
	// IsFollowing indicates whether the requesting user follows this user (computed)
	IsFollowing bool `gorm:"->" json:"is_following"`
}

// UserSummary is the public projection of a user attached to feed items
// and notifications.
type UserSummary struct {
	ID            uint   `json:"id"`
	Username      string `json:"username"`
	Name          string `json:"name"`
	ProfileImgURL string `json:"profile_img_url"`
}

// Summary returns the public projection of the user.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:            u.ID,
		Username:      u.Username,
		Name:          u.Name,
		ProfileImgURL: u.ProfileImgURL,
	}
}
