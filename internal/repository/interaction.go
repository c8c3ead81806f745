package repository

import (
	"context"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// InteractionRepository persists like/bookmark/repost/follow edges. Edge
// writes that carry a notification run in one transaction so the edge and
// its notification commit or roll back together.
type InteractionRepository interface {
	CreateLike(ctx context.Context, userID, postID uint, notification *models.Notification) error
	DeleteLike(ctx context.Context, userID, postID uint) error
	CreateBookmark(ctx context.Context, userID, postID uint) error
	DeleteBookmark(ctx context.Context, userID, postID uint) error
	CreateRepost(ctx context.Context, userID, postID uint, notification *models.Notification) error
	DeleteRepost(ctx context.Context, userID, postID uint) error
	CreateFollow(ctx context.Context, followerID, followedID uint, notification *models.Notification) error
	DeleteFollow(ctx context.Context, followerID, followedID uint) error
	FollowingIDs(ctx context.Context, userID uint) ([]uint, error)
	RepostsByUsers(ctx context.Context, userIDs []uint, limit int) ([]models.Repost, error)
}

// interactionRepository implements InteractionRepository
type interactionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new interaction repository
func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) CreateLike(ctx context.Context, userID, postID uint, notification *models.Notification) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Like{UserID: userID, PostID: postID}).Error; err != nil {
			return err
		}
		if notification != nil {
			return tx.Create(notification).Error
		}
		return nil
	})
	return translateConstraintError(err, "Post already liked", "Post not found")
}

func (r *interactionRepository) DeleteLike(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewReferenceNotFoundError("Like", postID)
		}
		// Compensating delete: the notification the like produced goes with it.
		return tx.Where("post_id = ? AND sender_id = ? AND type = ?",
			postID, userID, models.NotificationTypeLike).
			Delete(&models.Notification{}).Error
	})
	if err != nil {
		if models.ErrorCode(err) != models.CodeUnexpected {
			return err
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *interactionRepository) CreateBookmark(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).Create(&models.Bookmark{UserID: userID, PostID: postID}).Error
	return translateConstraintError(err, "Post already bookmarked", "Post not found")
}

func (r *interactionRepository) DeleteBookmark(ctx context.Context, userID, postID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Bookmark{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewReferenceNotFoundError("Bookmark", postID)
	}
	return nil
}

func (r *interactionRepository) CreateRepost(ctx context.Context, userID, postID uint, notification *models.Notification) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Repost{UserID: userID, PostID: postID}).Error; err != nil {
			return err
		}
		if notification != nil {
			return tx.Create(notification).Error
		}
		return nil
	})
	return translateConstraintError(err, "Post already reposted", "Post not found")
}

func (r *interactionRepository) DeleteRepost(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Repost{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewReferenceNotFoundError("Repost", postID)
		}
		return tx.Where("post_id = ? AND sender_id = ? AND type = ?",
			postID, userID, models.NotificationTypeRepost).
			Delete(&models.Notification{}).Error
	})
	if err != nil {
		if models.ErrorCode(err) != models.CodeUnexpected {
			return err
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *interactionRepository) CreateFollow(ctx context.Context, followerID, followedID uint, notification *models.Notification) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Follow{FollowerID: followerID, FollowedID: followedID}).Error; err != nil {
			return err
		}
		if notification != nil {
			return tx.Create(notification).Error
		}
		return nil
	})
	return translateConstraintError(err, "Already following this user", "User not found")
}

func (r *interactionRepository) DeleteFollow(ctx context.Context, followerID, followedID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND followed_id = ?", followerID, followedID).Delete(&models.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewReferenceNotFoundError("Follow", followedID)
		}
		// Follow notifications carry no post; scoped by the user pair instead.
		return tx.Where("sender_id = ? AND receiver_id = ? AND type = ?",
			followerID, followedID, models.NotificationTypeFollow).
			Delete(&models.Notification{}).Error
	})
	if err != nil {
		if models.ErrorCode(err) != models.CodeUnexpected {
			return err
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *interactionRepository) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followed_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// RepostsByUsers fetches reposts made by any of the given users, newest
// first by the repost's own timestamp. The reposting user is preloaded; the
// underlying posts are fetched separately with full viewer projection.
func (r *interactionRepository) RepostsByUsers(ctx context.Context, userIDs []uint, limit int) ([]models.Repost, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var reposts []models.Repost
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id IN ?", userIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&reposts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reposts, nil
}
