// Package service contains the business logic layer of the application.
package service

import (
	"context"
	"fmt"

	"chirp/internal/cache"
	"chirp/internal/models"
	"chirp/internal/repository"
)

// InteractionService applies like, bookmark, repost and follow actions. Every
// apply is idempotency-checked by the database's unique constraints rather
// than a read-then-write, so concurrent duplicates collapse to one edge and
// one DUPLICATE_INTERACTION error.
type InteractionService struct {
	interactionRepo repository.InteractionRepository
	postRepo        repository.PostRepository
	userRepo        repository.UserRepository
}

// NewInteractionService returns a new InteractionService.
func NewInteractionService(interactionRepo repository.InteractionRepository, postRepo repository.PostRepository, userRepo repository.UserRepository) *InteractionService {
	return &InteractionService{
		interactionRepo: interactionRepo,
		postRepo:        postRepo,
		userRepo:        userRepo,
	}
}

// postNotification builds the notification for a post-scoped action, or nil
// when the actor owns the post (no self-notification).
func (s *InteractionService) postNotification(ctx context.Context, actorID, ownerID, postID uint, typ models.NotificationType, verb string) (*models.Notification, error) {
	if actorID == ownerID {
		return nil, nil
	}
	actor, err := s.userRepo.GetByID(ctx, actorID, 0)
	if err != nil {
		return nil, err
	}
	pid := postID
	return &models.Notification{
		Type:       typ,
		SenderID:   actorID,
		ReceiverID: ownerID,
		PostID:     &pid,
		Content:    fmt.Sprintf("%s %s your post", actor.Name, verb),
	}, nil
}

// Like records a like on the post and notifies its owner.
func (s *InteractionService) Like(ctx context.Context, userID, postID uint) error {
	ownerID, err := s.postRepo.GetOwnerID(ctx, postID)
	if err != nil {
		return err
	}

	notification, err := s.postNotification(ctx, userID, ownerID, postID, models.NotificationTypeLike, "liked")
	if err != nil {
		return err
	}

	if err := s.interactionRepo.CreateLike(ctx, userID, postID, notification); err != nil {
		return err
	}
	if notification != nil {
		cache.InvalidateUnreadCount(ctx, ownerID)
	}
	return nil
}

// Unlike removes the like and its notification.
func (s *InteractionService) Unlike(ctx context.Context, userID, postID uint) error {
	ownerID, err := s.postRepo.GetOwnerID(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.interactionRepo.DeleteLike(ctx, userID, postID); err != nil {
		return err
	}
	cache.InvalidateUnreadCount(ctx, ownerID)
	return nil
}

// Bookmark records a bookmark. Bookmarks are private; no notification.
func (s *InteractionService) Bookmark(ctx context.Context, userID, postID uint) error {
	return s.interactionRepo.CreateBookmark(ctx, userID, postID)
}

// Unbookmark removes the bookmark.
func (s *InteractionService) Unbookmark(ctx context.Context, userID, postID uint) error {
	return s.interactionRepo.DeleteBookmark(ctx, userID, postID)
}

// Repost records a repost of the post and notifies its owner.
func (s *InteractionService) Repost(ctx context.Context, userID, postID uint) error {
	ownerID, err := s.postRepo.GetOwnerID(ctx, postID)
	if err != nil {
		return err
	}

	notification, err := s.postNotification(ctx, userID, ownerID, postID, models.NotificationTypeRepost, "reposted")
	if err != nil {
		return err
	}

	if err := s.interactionRepo.CreateRepost(ctx, userID, postID, notification); err != nil {
		return err
	}
	if notification != nil {
		cache.InvalidateUnreadCount(ctx, ownerID)
	}
	return nil
}

// Unrepost removes the repost and its notification.
func (s *InteractionService) Unrepost(ctx context.Context, userID, postID uint) error {
	ownerID, err := s.postRepo.GetOwnerID(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.interactionRepo.DeleteRepost(ctx, userID, postID); err != nil {
		return err
	}
	cache.InvalidateUnreadCount(ctx, ownerID)
	return nil
}

// Follow records a follow edge from follower to followed and notifies the
// followed user.
func (s *InteractionService) Follow(ctx context.Context, followerID, followedID uint) error {
	if followerID == followedID {
		return models.NewSelfReferenceError("Cannot follow yourself")
	}

	follower, err := s.userRepo.GetByID(ctx, followerID, 0)
	if err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, followedID, 0); err != nil {
		return err
	}

	notification := &models.Notification{
		Type:       models.NotificationTypeFollow,
		SenderID:   followerID,
		ReceiverID: followedID,
		Content:    fmt.Sprintf("%s followed you", follower.Name),
	}

	if err := s.interactionRepo.CreateFollow(ctx, followerID, followedID, notification); err != nil {
		return err
	}
	cache.InvalidateUnreadCount(ctx, followedID)
	return nil
}

// Unfollow removes the follow edge and its notification.
func (s *InteractionService) Unfollow(ctx context.Context, followerID, followedID uint) error {
	if followerID == followedID {
		return models.NewSelfReferenceError("Cannot unfollow yourself")
	}
	if err := s.interactionRepo.DeleteFollow(ctx, followerID, followedID); err != nil {
		return err
	}
	cache.InvalidateUnreadCount(ctx, followedID)
	return nil
}
