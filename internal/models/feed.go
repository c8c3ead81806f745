package models

import (
	"fmt"
	"time"
)

// FeedItem is the uniform projection of a feed entry. Original posts and
// reposts are folded into this one shape; KeyID disambiguates a repost
// occurrence from the original post occurrence of the same underlying post.
type FeedItem struct {
	KeyID        string       `json:"key_id"`
	PostID       uint         `json:"post_id"`
	Content      string       `json:"content"`
	ImgURL       string       `json:"img_url,omitempty"`
	UserID       uint         `json:"user_id"`
	User         UserSummary  `json:"user"`
	ParentPostID *uint        `json:"parent_post_id,omitempty"`
	RepostUser   *UserSummary `json:"repost_user,omitempty"`
	IsRepost     bool         `json:"is_repost"`

	// CreatedAt is the underlying post's creation time. Timestamp is the
	// item's own ordering key: the post's creation time for originals, the
	// repost's creation time for reposts.
	CreatedAt time.Time `json:"created_at"`
	Timestamp time.Time `json:"timestamp"`

	LikeCount     int `json:"like_count"`
	BookmarkCount int `json:"bookmark_count"`
	RepostCount   int `json:"repost_count"`
	ReplyCount    int `json:"reply_count"`

	IsLiked          bool `json:"is_liked"`
	IsBookmarked     bool `json:"is_bookmarked"`
	IsRepostedByUser bool `json:"is_reposted_by_user"`
	// IsDeletable is an authorization hint for the client, not an access
	// control decision: true iff the viewer authored the underlying post.
	IsDeletable bool `json:"is_deletable"`
}

// PostKeyID returns the composite feed key for an original post occurrence.
func PostKeyID(postID uint) string {
	return fmt.Sprintf("post-%d", postID)
}

// RepostKeyID returns the composite feed key for a repost occurrence.
func RepostKeyID(postID, actorID uint) string {
	return fmt.Sprintf("repost-%d-%d", postID, actorID)
}

// Thread is a post projection together with its direct replies.
type Thread struct {
	Post    FeedItem   `json:"post"`
	Replies []FeedItem `json:"replies"`
}
