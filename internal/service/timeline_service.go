package service

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"chirp/internal/models"
	"chirp/internal/repository"
)

const (
	// DefaultFeedLimit is the post fetch size when the caller gives none.
	DefaultFeedLimit = 50
	// MaxFeedLimit caps the post fetch size. The cap applies to each source
	// fetch before the merge, so a merged feed can exceed it.
	MaxFeedLimit = 100
)

// FeedModeKind discriminates the three feed scopes.
type FeedModeKind int

const (
	// FeedModeHome scopes the feed to the viewer and the users they follow.
	FeedModeHome FeedModeKind = iota
	// FeedModeExplore scopes the feed to all users, originals only.
	FeedModeExplore
	// FeedModeProfile scopes the feed to a single user's posts and reposts.
	FeedModeProfile
)

// FeedMode is a parsed feed mode selector.
type FeedMode struct {
	Kind   FeedModeKind
	UserID uint
}

// ParseFeedMode parses "home", "explore" or "profile:<userId>".
func ParseFeedMode(s string) (FeedMode, error) {
	switch {
	case s == "" || s == "home":
		return FeedMode{Kind: FeedModeHome}, nil
	case s == "explore":
		return FeedMode{Kind: FeedModeExplore}, nil
	case strings.HasPrefix(s, "profile:"):
		raw := strings.TrimPrefix(s, "profile:")
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			return FeedMode{}, models.NewValidationError("Invalid profile user ID in feed mode")
		}
		return FeedMode{Kind: FeedModeProfile, UserID: uint(id)}, nil
	default:
		return FeedMode{}, models.NewValidationError("Invalid feed mode")
	}
}

// TimelineService assembles feeds by merging original posts and reposts into
// one reverse-chronological stream projected for the viewer.
type TimelineService struct {
	postRepo        repository.PostRepository
	interactionRepo repository.InteractionRepository
	userRepo        repository.UserRepository
}

// NewTimelineService returns a new TimelineService.
func NewTimelineService(postRepo repository.PostRepository, interactionRepo repository.InteractionRepository, userRepo repository.UserRepository) *TimelineService {
	return &TimelineService{
		postRepo:        postRepo,
		interactionRepo: interactionRepo,
		userRepo:        userRepo,
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		return MaxFeedLimit
	}
	return limit
}

// projectPost folds a queried post into the uniform feed shape as an
// original occurrence. The ordering timestamp is the post's own creation
// time.
func projectPost(p *models.Post, viewerID uint) models.FeedItem {
	return models.FeedItem{
		KeyID:            models.PostKeyID(p.ID),
		PostID:           p.ID,
		Content:          p.Content,
		ImgURL:           p.ImgURL,
		UserID:           p.UserID,
		User:             p.User.Summary(),
		ParentPostID:     p.ParentPostID,
		IsRepost:         false,
		CreatedAt:        p.CreatedAt,
		Timestamp:        p.CreatedAt,
		LikeCount:        p.LikeCount,
		BookmarkCount:    p.BookmarkCount,
		RepostCount:      p.RepostCount,
		ReplyCount:       p.ReplyCount,
		IsLiked:          p.IsLiked,
		IsBookmarked:     p.IsBookmarked,
		IsRepostedByUser: p.IsRepostedByUser,
		IsDeletable:      viewerID != 0 && p.UserID == viewerID,
	}
}

// projectRepost folds a repost and its underlying post into the uniform feed
// shape. The ordering timestamp is the repost's creation time, not the
// post's.
func projectRepost(rp *models.Repost, p *models.Post, viewerID uint) models.FeedItem {
	item := projectPost(p, viewerID)
	actor := rp.User.Summary()
	item.KeyID = models.RepostKeyID(p.ID, rp.UserID)
	item.RepostUser = &actor
	item.IsRepost = true
	item.Timestamp = rp.CreatedAt
	return item
}

// GetFeed assembles the feed for the given mode. Home merges originals and
// reposts from the viewer's follow graph (viewer included); profile merges a
// single user's originals and reposts; explore lists originals from everyone
// but the viewer and carries no reposts.
func (s *TimelineService) GetFeed(ctx context.Context, viewerID uint, mode FeedMode, search string, limit int) ([]models.FeedItem, error) {
	limit = clampLimit(limit)

	var authorIDs []uint
	var excludeAuthorID uint
	withReposts := true

	switch mode.Kind {
	case FeedModeHome:
		following, err := s.interactionRepo.FollowingIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		authorIDs = append(following, viewerID)
	case FeedModeProfile:
		exists, err := s.userRepo.Exists(ctx, mode.UserID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, models.NewReferenceNotFoundError("User", mode.UserID)
		}
		authorIDs = []uint{mode.UserID}
	case FeedModeExplore:
		// Everyone except the viewer, originals only.
		authorIDs = nil
		excludeAuthorID = viewerID
		withReposts = false
	}

	posts, err := s.postRepo.ListTopLevel(ctx, authorIDs, excludeAuthorID, search, limit, viewerID)
	if err != nil {
		return nil, err
	}

	items := make([]models.FeedItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, projectPost(p, viewerID))
	}

	if withReposts {
		repostItems, err := s.repostItems(ctx, authorIDs, limit, viewerID)
		if err != nil {
			return nil, err
		}
		items = append(items, repostItems...)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	return items, nil
}

// repostItems fetches reposts by the given authors and joins each to its
// underlying post with full viewer projection. Reposts whose post vanished
// between the two fetches are skipped.
func (s *TimelineService) repostItems(ctx context.Context, authorIDs []uint, limit int, viewerID uint) ([]models.FeedItem, error) {
	reposts, err := s.interactionRepo.RepostsByUsers(ctx, authorIDs, limit)
	if err != nil {
		return nil, err
	}
	if len(reposts) == 0 {
		return nil, nil
	}

	postIDs := make([]uint, 0, len(reposts))
	seen := make(map[uint]struct{}, len(reposts))
	for _, rp := range reposts {
		if _, ok := seen[rp.PostID]; ok {
			continue
		}
		seen[rp.PostID] = struct{}{}
		postIDs = append(postIDs, rp.PostID)
	}

	posts, err := s.postRepo.GetByIDs(ctx, postIDs, viewerID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}

	items := make([]models.FeedItem, 0, len(reposts))
	for i := range reposts {
		p := byID[reposts[i].PostID]
		if p == nil {
			continue
		}
		items = append(items, projectRepost(&reposts[i], p, viewerID))
	}
	return items, nil
}

// GetThread returns a post with its direct replies, both projected for the
// viewer.
func (s *TimelineService) GetThread(ctx context.Context, viewerID, postID uint) (*models.Thread, error) {
	post, err := s.postRepo.GetByID(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	replies, err := s.postRepo.Replies(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}

	thread := &models.Thread{
		Post:    projectPost(post, viewerID),
		Replies: make([]models.FeedItem, 0, len(replies)),
	}
	for _, rp := range replies {
		thread.Replies = append(thread.Replies, projectPost(rp, viewerID))
	}
	return thread, nil
}

// Bookmarks returns the viewer's bookmarked posts, most recently bookmarked
// first. The search term matches post content or the author's name.
func (s *TimelineService) Bookmarks(ctx context.Context, userID uint, search string, limit int) ([]models.FeedItem, error) {
	posts, err := s.postRepo.Bookmarked(ctx, userID, strings.TrimSpace(search), clampLimit(limit))
	if err != nil {
		return nil, err
	}
	items := make([]models.FeedItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, projectPost(p, userID))
	}
	return items, nil
}

// LikedBy returns the posts a user has liked, projected for the viewer.
func (s *TimelineService) LikedBy(ctx context.Context, targetUserID, viewerID uint, limit int) ([]models.FeedItem, error) {
	exists, err := s.userRepo.Exists(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewReferenceNotFoundError("User", targetUserID)
	}

	posts, err := s.postRepo.Liked(ctx, targetUserID, clampLimit(limit), viewerID)
	if err != nil {
		return nil, err
	}
	items := make([]models.FeedItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, projectPost(p, viewerID))
	}
	return items, nil
}
