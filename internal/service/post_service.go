package service

import (
	"context"
	"strings"

	"chirp/internal/models"
	"chirp/internal/repository"
)

// MaxPostContentLength is the hard cap on post text length.
const MaxPostContentLength = 400

// PostService provides post creation and deletion business logic.
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePostInput carries the fields for a new post or reply.
type CreatePostInput struct {
	Content      string
	ImgURL       string
	ParentPostID *uint
}

// Create validates and persists a new post. A post must carry text or an
// image; replies additionally reference an existing parent post.
func (s *PostService) Create(ctx context.Context, userID uint, input CreatePostInput) (*models.Post, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" && input.ImgURL == "" {
		return nil, models.NewValidationError("Post must have text or an image")
	}
	if len(content) > MaxPostContentLength {
		return nil, models.NewValidationError("Post content is too long")
	}

	if input.ParentPostID != nil {
		if _, err := s.postRepo.GetOwnerID(ctx, *input.ParentPostID); err != nil {
			return nil, err
		}
	}

	post := &models.Post{
		Content:      content,
		ImgURL:       input.ImgURL,
		UserID:       userID,
		ParentPostID: input.ParentPostID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, userID)
}

// Delete removes a post. Only the author may delete it; replies and
// interaction edges cascade with the row.
func (s *PostService) Delete(ctx context.Context, userID, postID uint) error {
	ownerID, err := s.postRepo.GetOwnerID(ctx, postID)
	if err != nil {
		return err
	}
	if ownerID != userID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}
