package models

import (
	"time"
)

// Post represents a post. A post with a non-nil ParentPostID is a reply.
// At creation at least one of Content and ImgURL must be non-empty.
type Post struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Content      string `gorm:"type:text" json:"content"`
	ImgURL       string `json:"img_url"`
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	User         User   `gorm:"foreignKey:UserID" json:"user"`
	ParentPostID *uint  `gorm:"index" json:"parent_post_id,omitempty"`
	// CreatedAt is immutable and is the ordering timestamp for original posts.
	CreatedAt time.Time `json:"created_at"`

	// LikeCount is not persisted; computed at query time
	LikeCount int `gorm:"->" json:"like_count"`
	// BookmarkCount is not persisted; computed at query time
	BookmarkCount int `gorm:"->" json:"bookmark_count"`
	// RepostCount is not persisted; computed at query time
	RepostCount int `gorm:"->" json:"repost_count"`
	// ReplyCount is not persisted; computed at query time
	ReplyCount int `gorm:"->" json:"reply_count"`
	// IsLiked indicates whether the requesting user liked this post (computed)
	IsLiked bool `gorm:"->" json:"is_liked"`
	// IsBookmarked indicates whether the requesting user bookmarked this post (computed)
	IsBookmarked bool `gorm:"->" json:"is_bookmarked"`
	// IsRepostedByUser indicates whether the requesting user reposted this post (computed)
	IsRepostedByUser bool `gorm:"->" json:"is_reposted_by_user"`
}
