package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chirp/internal/config"
	"chirp/internal/models"
	"chirp/internal/repository"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupFlowTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Bookmark{},
		&models.Repost{},
		&models.Follow{},
		&models.Notification{},
	))

	s := &Server{
		config:           &config.Config{Port: "8420", JWTSecret: "test-secret"},
		db:               db,
		userRepo:         repository.NewUserRepository(db),
		postRepo:         repository.NewPostRepository(db),
		interactionRepo:  repository.NewInteractionRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
	}
	s.userService = service.NewUserService(s.userRepo)
	s.postService = service.NewPostService(s.postRepo)
	s.timelineService = service.NewTimelineService(s.postRepo, s.interactionRepo, s.userRepo)
	s.interactionService = service.NewInteractionService(s.interactionRepo, s.postRepo, s.userRepo)
	s.notificationService = service.NewNotificationService(s.notificationRepo)

	return s, db
}

// appAs returns a Fiber app whose requests run as the given user.
func appAs(userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	return app
}

func createUser(t *testing.T, db *gorm.DB, username, name string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "pw",
		Name:     name,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createPost(t *testing.T, db *gorm.DB, userID uint, content string, createdAt time.Time) models.Post {
	t.Helper()
	post := models.Post{Content: content, UserID: userID, CreatedAt: createdAt}
	require.NoError(t, db.Create(&post).Error)
	return post
}

func TestLikeFlow(t *testing.T) {
	s, db := setupFlowTestServer(t)

	alice := createUser(t, db, "alice", "Alice")
	bob := createUser(t, db, "bob", "Bob")
	post := createPost(t, db, bob.ID, "hello", time.Now())

	app := appAs(alice.ID)
	app.Post("/posts/:id/like", s.LikePost)
	app.Delete("/posts/:id/like", s.UnlikePost)

	path := "/posts/1/like"

	// Like creates the edge and notifies the owner
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, path, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var notification models.Notification
	require.NoError(t, db.Where("receiver_id = ?", bob.ID).First(&notification).Error)
	assert.Equal(t, models.NotificationTypeLike, notification.Type)
	assert.Equal(t, alice.ID, notification.SenderID)
	require.NotNil(t, notification.PostID)
	assert.Equal(t, post.ID, *notification.PostID)
	assert.Equal(t, "Alice liked your post", notification.Content)
	assert.False(t, notification.IsRead)

	// Duplicate like is rejected by the unique constraint
	resp, err = app.Test(httptest.NewRequest(http.MethodPost, path, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var likes int64
	require.NoError(t, db.Model(&models.Like{}).Count(&likes).Error)
	assert.Equal(t, int64(1), likes)

	// Unlike removes the edge and the notification with it
	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, path, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var notifications int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&notifications).Error)
	assert.Equal(t, int64(0), notifications)

	// Unlike again: the edge is gone
	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, path, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLikeOwnPostNoNotification(t *testing.T) {
	s, db := setupFlowTestServer(t)

	alice := createUser(t, db, "alice", "Alice")
	createPost(t, db, alice.ID, "own post", time.Now())

	app := appAs(alice.ID)
	app.Post("/posts/:id/like", s.LikePost)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/posts/1/like", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var notifications int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&notifications).Error)
	assert.Equal(t, int64(0), notifications)
}

func TestFollowFlow(t *testing.T) {
	s, db := setupFlowTestServer(t)

	alice := createUser(t, db, "alice", "Alice")
	bob := createUser(t, db, "bob", "Bob")

	app := appAs(alice.ID)
	app.Post("/users/:id/follow", s.FollowUser)
	app.Delete("/users/:id/follow", s.UnfollowUser)

	// Self-follow is rejected outright
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/users/1/follow", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Follow creates the edge and notifies the followed user
	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/users/2/follow", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var notification models.Notification
	require.NoError(t, db.Where("receiver_id = ?", bob.ID).First(&notification).Error)
	assert.Equal(t, models.NotificationTypeFollow, notification.Type)
	assert.Nil(t, notification.PostID)
	assert.Equal(t, "Alice followed you", notification.Content)

	// Duplicate follow
	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/users/2/follow", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Unfollow removes the edge and its notification
	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/users/2/follow", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var notifications int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&notifications).Error)
	assert.Equal(t, int64(0), notifications)

	// Following a missing user reports the absent reference
	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/users/99/follow", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHomeFeedMergeOrdering(t *testing.T) {
	s, db := setupFlowTestServer(t)
	ctx := context.Background()

	alice := createUser(t, db, "alice", "Alice")
	bob := createUser(t, db, "bob", "Bob")
	carol := createUser(t, db, "carol", "Carol")

	require.NoError(t, db.Create(&models.Follow{FollowerID: alice.ID, FollowedID: bob.ID}).Error)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	oldPost := createPost(t, db, bob.ID, "old", base)
	newPost := createPost(t, db, alice.ID, "new", base.Add(time.Hour))
	// Carol is not followed; her post must not appear as an original
	carolPost := createPost(t, db, carol.ID, "hidden", base.Add(30*time.Minute))

	// Bob reposts Carol's post after everything else
	require.NoError(t, db.Create(&models.Repost{
		UserID:    bob.ID,
		PostID:    carolPost.ID,
		CreatedAt: base.Add(2 * time.Hour),
	}).Error)

	// Alice liked Bob's old post
	require.NoError(t, db.Create(&models.Like{UserID: alice.ID, PostID: oldPost.ID}).Error)

	items, err := s.timelineService.GetFeed(ctx, alice.ID, service.FeedMode{Kind: service.FeedModeHome}, "", 0)
	require.NoError(t, err)
	require.Len(t, items, 3)

	// The repost surfaces Carol's post at the repost's own timestamp
	assert.Equal(t, models.RepostKeyID(carolPost.ID, bob.ID), items[0].KeyID)
	assert.True(t, items[0].IsRepost)
	require.NotNil(t, items[0].RepostUser)
	assert.Equal(t, "bob", items[0].RepostUser.Username)
	assert.Equal(t, "carol", items[0].User.Username)

	assert.Equal(t, models.PostKeyID(newPost.ID), items[1].KeyID)
	assert.True(t, items[1].IsDeletable)

	assert.Equal(t, models.PostKeyID(oldPost.ID), items[2].KeyID)
	assert.Equal(t, 1, items[2].LikeCount)
	assert.True(t, items[2].IsLiked)
	assert.False(t, items[2].IsDeletable)
}

func TestExploreFeedOriginalsOnly(t *testing.T) {
	s, db := setupFlowTestServer(t)
	ctx := context.Background()

	alice := createUser(t, db, "alice", "Alice")
	bob := createUser(t, db, "bob", "Bob")

	base := time.Now().Add(-time.Hour)
	post := createPost(t, db, bob.ID, "original", base)
	require.NoError(t, db.Create(&models.Repost{UserID: alice.ID, PostID: post.ID}).Error)

	// A reply must not surface in the feed
	reply := models.Post{Content: "reply", UserID: alice.ID, ParentPostID: &post.ID}
	require.NoError(t, db.Create(&reply).Error)

	items, err := s.timelineService.GetFeed(ctx, alice.ID, service.FeedMode{Kind: service.FeedModeExplore}, "", 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.PostKeyID(post.ID), items[0].KeyID)
	assert.False(t, items[0].IsRepost)
	assert.Equal(t, 1, items[0].ReplyCount)
	assert.Equal(t, 1, items[0].RepostCount)
	assert.True(t, items[0].IsRepostedByUser)
}

func TestThreadRepliesUseReplyEdge(t *testing.T) {
	s, db := setupFlowTestServer(t)

	alice := createUser(t, db, "alice", "Alice")
	bob := createUser(t, db, "bob", "Bob")

	parent := createPost(t, db, alice.ID, "parent", time.Now().Add(-time.Hour))
	reply := models.Post{Content: "reply", UserID: bob.ID, ParentPostID: &parent.ID}
	require.NoError(t, db.Create(&reply).Error)
	other := createPost(t, db, bob.ID, "unrelated", time.Now())

	thread, err := s.timelineService.GetThread(context.Background(), alice.ID, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostKeyID(parent.ID), thread.Post.KeyID)
	require.Len(t, thread.Replies, 1)
	assert.Equal(t, models.PostKeyID(reply.ID), thread.Replies[0].KeyID)
	assert.NotEqual(t, models.PostKeyID(other.ID), thread.Replies[0].KeyID)
}

func TestNotificationReadOnList(t *testing.T) {
	s, db := setupFlowTestServer(t)

	alice := createUser(t, db, "alice", "Alice")
	bob := createUser(t, db, "bob", "Bob")
	createPost(t, db, bob.ID, "post", time.Now())

	// Alice likes Bob's post
	likeApp := appAs(alice.ID)
	likeApp.Post("/posts/:id/like", s.LikePost)
	resp, err := likeApp.Test(httptest.NewRequest(http.MethodPost, "/posts/1/like", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Bob's unread count is 1 before listing
	count, err := s.notificationService.UnreadCount(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Listing returns the unread snapshot and marks it read
	notifications, err := s.notificationService.List(context.Background(), bob.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.False(t, notifications[0].IsRead)

	count, err = s.notificationService.UnreadCount(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// A second listing shows the read state
	notifications, err = s.notificationService.List(context.Background(), bob.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.True(t, notifications[0].IsRead)
}

func TestDeletePostOwnerOnly(t *testing.T) {
	s, db := setupFlowTestServer(t)

	createUser(t, db, "alice", "Alice")
	bob := createUser(t, db, "bob", "Bob")
	createPost(t, db, bob.ID, "bob's post", time.Now())

	aliceApp := appAs(1)
	aliceApp.Delete("/posts/:id", s.DeletePost)
	resp, err := aliceApp.Test(httptest.NewRequest(http.MethodDelete, "/posts/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	bobApp := appAs(bob.ID)
	bobApp.Delete("/posts/:id", s.DeletePost)
	resp, err = bobApp.Test(httptest.NewRequest(http.MethodDelete, "/posts/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var posts int64
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	assert.Equal(t, int64(0), posts)
}
