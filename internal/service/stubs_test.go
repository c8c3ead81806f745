package service

import (
	"context"

	"chirp/internal/models"
)

type interactionRepoStub struct {
	createLikeFn     func(context.Context, uint, uint, *models.Notification) error
	deleteLikeFn     func(context.Context, uint, uint) error
	createBookmarkFn func(context.Context, uint, uint) error
	deleteBookmarkFn func(context.Context, uint, uint) error
	createRepostFn   func(context.Context, uint, uint, *models.Notification) error
	deleteRepostFn   func(context.Context, uint, uint) error
	createFollowFn   func(context.Context, uint, uint, *models.Notification) error
	deleteFollowFn   func(context.Context, uint, uint) error
	followingIDsFn   func(context.Context, uint) ([]uint, error)
	repostsByUsersFn func(context.Context, []uint, int) ([]models.Repost, error)
}

func (s *interactionRepoStub) CreateLike(ctx context.Context, userID, postID uint, n *models.Notification) error {
	return s.createLikeFn(ctx, userID, postID, n)
}
func (s *interactionRepoStub) DeleteLike(ctx context.Context, userID, postID uint) error {
	return s.deleteLikeFn(ctx, userID, postID)
}
func (s *interactionRepoStub) CreateBookmark(ctx context.Context, userID, postID uint) error {
	return s.createBookmarkFn(ctx, userID, postID)
}
func (s *interactionRepoStub) DeleteBookmark(ctx context.Context, userID, postID uint) error {
	return s.deleteBookmarkFn(ctx, userID, postID)
}
func (s *interactionRepoStub) CreateRepost(ctx context.Context, userID, postID uint, n *models.Notification) error {
	return s.createRepostFn(ctx, userID, postID, n)
}
func (s *interactionRepoStub) DeleteRepost(ctx context.Context, userID, postID uint) error {
	return s.deleteRepostFn(ctx, userID, postID)
}
func (s *interactionRepoStub) CreateFollow(ctx context.Context, followerID, followedID uint, n *models.Notification) error {
	return s.createFollowFn(ctx, followerID, followedID, n)
}
func (s *interactionRepoStub) DeleteFollow(ctx context.Context, followerID, followedID uint) error {
	return s.deleteFollowFn(ctx, followerID, followedID)
}
func (s *interactionRepoStub) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followingIDsFn(ctx, userID)
}
func (s *interactionRepoStub) RepostsByUsers(ctx context.Context, userIDs []uint, limit int) ([]models.Repost, error) {
	return s.repostsByUsersFn(ctx, userIDs, limit)
}

func noopInteractionRepo() *interactionRepoStub {
	return &interactionRepoStub{
		createLikeFn:     func(context.Context, uint, uint, *models.Notification) error { return nil },
		deleteLikeFn:     func(context.Context, uint, uint) error { return nil },
		createBookmarkFn: func(context.Context, uint, uint) error { return nil },
		deleteBookmarkFn: func(context.Context, uint, uint) error { return nil },
		createRepostFn:   func(context.Context, uint, uint, *models.Notification) error { return nil },
		deleteRepostFn:   func(context.Context, uint, uint) error { return nil },
		createFollowFn:   func(context.Context, uint, uint, *models.Notification) error { return nil },
		deleteFollowFn:   func(context.Context, uint, uint) error { return nil },
		followingIDsFn:   func(context.Context, uint) ([]uint, error) { return nil, nil },
		repostsByUsersFn: func(context.Context, []uint, int) ([]models.Repost, error) { return nil, nil },
	}
}

type postRepoStub struct {
	createFn       func(context.Context, *models.Post) error
	getByIDFn      func(context.Context, uint, uint) (*models.Post, error)
	getOwnerIDFn   func(context.Context, uint) (uint, error)
	deleteFn       func(context.Context, uint) error
	listTopLevelFn func(context.Context, []uint, uint, string, int, uint) ([]*models.Post, error)
	getByIDsFn     func(context.Context, []uint, uint) ([]*models.Post, error)
	repliesFn      func(context.Context, uint, uint) ([]*models.Post, error)
	bookmarkedFn   func(context.Context, uint, string, int) ([]*models.Post, error)
	likedFn        func(context.Context, uint, int, uint) ([]*models.Post, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetOwnerID(ctx context.Context, id uint) (uint, error) {
	return s.getOwnerIDFn(ctx, id)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ListTopLevel(ctx context.Context, authorIDs []uint, excludeAuthorID uint, search string, limit int, currentUserID uint) ([]*models.Post, error) {
	return s.listTopLevelFn(ctx, authorIDs, excludeAuthorID, search, limit, currentUserID)
}
func (s *postRepoStub) GetByIDs(ctx context.Context, ids []uint, currentUserID uint) ([]*models.Post, error) {
	return s.getByIDsFn(ctx, ids, currentUserID)
}
func (s *postRepoStub) Replies(ctx context.Context, parentID, currentUserID uint) ([]*models.Post, error) {
	return s.repliesFn(ctx, parentID, currentUserID)
}
func (s *postRepoStub) Bookmarked(ctx context.Context, userID uint, search string, limit int) ([]*models.Post, error) {
	return s.bookmarkedFn(ctx, userID, search, limit)
}
func (s *postRepoStub) Liked(ctx context.Context, userID uint, limit int, currentUserID uint) ([]*models.Post, error) {
	return s.likedFn(ctx, userID, limit, currentUserID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:     func(context.Context, *models.Post) error { return nil },
		getByIDFn:    func(context.Context, uint, uint) (*models.Post, error) { return &models.Post{}, nil },
		getOwnerIDFn: func(context.Context, uint) (uint, error) { return 1, nil },
		deleteFn:     func(context.Context, uint) error { return nil },
		listTopLevelFn: func(context.Context, []uint, uint, string, int, uint) ([]*models.Post, error) {
			return nil, nil
		},
		getByIDsFn:   func(context.Context, []uint, uint) ([]*models.Post, error) { return nil, nil },
		repliesFn:    func(context.Context, uint, uint) ([]*models.Post, error) { return nil, nil },
		bookmarkedFn: func(context.Context, uint, string, int) ([]*models.Post, error) { return nil, nil },
		likedFn:      func(context.Context, uint, int, uint) ([]*models.Post, error) { return nil, nil },
	}
}

type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	updateFn        func(context.Context, *models.User) error
	existsFn        func(context.Context, uint) (bool, error)
	listFn          func(context.Context, uint, string, int) ([]models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.User, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string, currentUserID uint) (*models.User, error) {
	return s.getByUsernameFn(ctx, username, currentUserID)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, viewerID uint, search string, limit int) ([]models.User, error) {
	return s.listFn(ctx, viewerID, search, limit)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(context.Context, *models.User) error { return nil },
		getByIDFn: func(ctx context.Context, id, _ uint) (*models.User, error) {
			return &models.User{ID: id, Name: "Test User"}, nil
		},
		getByUsernameFn: func(context.Context, string, uint) (*models.User, error) {
			return &models.User{}, nil
		},
		getByEmailFn: func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		updateFn:     func(context.Context, *models.User) error { return nil },
		existsFn:     func(context.Context, uint) (bool, error) { return true, nil },
		listFn:       func(context.Context, uint, string, int) ([]models.User, error) { return nil, nil },
	}
}

type notificationRepoStub struct {
	listAndMarkReadFn func(context.Context, uint) ([]models.Notification, error)
	countUnreadFn     func(context.Context, uint) (int64, error)
}

func (s *notificationRepoStub) ListAndMarkRead(ctx context.Context, receiverID uint) ([]models.Notification, error) {
	return s.listAndMarkReadFn(ctx, receiverID)
}
func (s *notificationRepoStub) CountUnread(ctx context.Context, receiverID uint) (int64, error) {
	return s.countUnreadFn(ctx, receiverID)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		listAndMarkReadFn: func(context.Context, uint) ([]models.Notification, error) { return nil, nil },
		countUnreadFn:     func(context.Context, uint) (int64, error) { return 0, nil },
	}
}
