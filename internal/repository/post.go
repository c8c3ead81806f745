package repository

import (
	"context"
	"errors"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	GetOwnerID(ctx context.Context, id uint) (uint, error)
	Delete(ctx context.Context, id uint) error
	ListTopLevel(ctx context.Context, authorIDs []uint, excludeAuthorID uint, search string, limit int, currentUserID uint) ([]*models.Post, error)
	GetByIDs(ctx context.Context, ids []uint, currentUserID uint) ([]*models.Post, error)
	Replies(ctx context.Context, parentID uint, currentUserID uint) ([]*models.Post, error)
	Bookmarked(ctx context.Context, userID uint, search string, limit int) ([]*models.Post, error)
	Liked(ctx context.Context, userID uint, limit int, currentUserID uint) ([]*models.Post, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// applyPostDetails adds subqueries to fetch counts and viewer flags in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as like_count, " +
		"(SELECT COUNT(*) FROM bookmarks WHERE bookmarks.post_id = posts.id) as bookmark_count, " +
		"(SELECT COUNT(*) FROM reposts WHERE reposts.post_id = posts.id) as repost_count, " +
		"(SELECT COUNT(*) FROM posts AS replies WHERE replies.parent_post_id = posts.id) as reply_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as is_liked"+
			", EXISTS(SELECT 1 FROM bookmarks WHERE bookmarks.post_id = posts.id AND bookmarks.user_id = ?) as is_bookmarked"+
			", EXISTS(SELECT 1 FROM reposts WHERE reposts.post_id = posts.id AND reposts.user_id = ?) as is_reposted_by_user",
			currentUserID, currentUserID, currentUserID)
	}

	return db.Select(selectQuery + ", false as is_liked, false as is_bookmarked, false as is_reposted_by_user")
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return translateConstraintError(err, "Post already exists", "Parent post or author not found")
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post
	if err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewReferenceNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) GetOwnerID(ctx context.Context, id uint) (uint, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Select("id", "user_id").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, models.NewReferenceNotFoundError("Post", id)
		}
		return 0, models.NewInternalError(err)
	}
	return post.UserID, nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListTopLevel fetches top-level posts (no parent), newest first. A nil
// authorIDs means no author filter; an empty non-nil slice short-circuits to
// an empty result. A non-zero excludeAuthorID drops that author's posts. The
// limit applies to this fetch, before any repost merge.
func (r *postRepository) ListTopLevel(ctx context.Context, authorIDs []uint, excludeAuthorID uint, search string, limit int, currentUserID uint) ([]*models.Post, error) {
	if authorIDs != nil && len(authorIDs) == 0 {
		return nil, nil
	}

	q := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("parent_post_id IS NULL")

	if authorIDs != nil {
		q = q.Where("user_id IN ?", authorIDs)
	}
	if excludeAuthorID != 0 {
		q = q.Where("user_id <> ?", excludeAuthorID)
	}
	if search != "" {
		q = q.Where("content ILIKE ?", "%"+search+"%")
	}

	var posts []*models.Post
	if err := q.Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) GetByIDs(ctx context.Context, ids []uint, currentUserID uint) ([]*models.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var posts []*models.Post
	if err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("posts.id IN ?", ids).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Replies(ctx context.Context, parentID uint, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("parent_post_id = ?", parentID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Bookmarked returns the posts a user has bookmarked, most recently
// bookmarked first. The viewer is the bookmark owner, so viewer flags are
// computed against the same user. The search term matches post content or
// the author's username or display name.
func (r *postRepository) Bookmarked(ctx context.Context, userID uint, search string, limit int) ([]*models.Post, error) {
	q := r.applyPostDetails(r.db.WithContext(ctx), userID).
		Preload("User").
		Joins("JOIN bookmarks ON bookmarks.post_id = posts.id").
		Where("bookmarks.user_id = ?", userID)

	if search != "" {
		pattern := "%" + search + "%"
		q = q.Joins("JOIN users ON users.id = posts.user_id").
			Where("posts.content ILIKE ? OR users.username ILIKE ? OR users.name ILIKE ?",
				pattern, pattern, pattern)
	}

	var posts []*models.Post
	if err := q.Order("bookmarks.created_at DESC").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Liked returns the posts a user has liked, most recently liked first.
func (r *postRepository) Liked(ctx context.Context, userID uint, limit int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Joins("JOIN likes ON likes.post_id = posts.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}
