package repository

import (
	"context"
	"regexp"
	"testing"

	"chirp/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_GetByIDWithDetails(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	// Main query with computed count and viewer flag columns
	mock.ExpectQuery(`SELECT posts\..+ FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "content", "user_id",
			"like_count", "bookmark_count", "repost_count", "reply_count",
			"is_liked", "is_bookmarked", "is_reposted_by_user",
		}).AddRow(1, "hello", 10, 5, 2, 3, 1, true, false, true))

	// Preload user
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name"}).AddRow(10, "alice", "Alice"))

	post, err := repo.GetByID(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "hello", post.Content)
	assert.Equal(t, 5, post.LikeCount)
	assert.Equal(t, 2, post.BookmarkCount)
	assert.Equal(t, 3, post.RepostCount)
	assert.Equal(t, 1, post.ReplyCount)
	assert.True(t, post.IsLiked)
	assert.False(t, post.IsBookmarked)
	assert.True(t, post.IsRepostedByUser)
	assert.Equal(t, "alice", post.User.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByIDNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`SELECT posts\..+ FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 404, 0)
	assert.Equal(t, models.CodeReferenceNotFound, models.ErrorCode(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetOwnerIDNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id","user_id" FROM "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}))

	_, err := repo.GetOwnerID(context.Background(), 404)
	assert.Equal(t, models.CodeReferenceNotFound, models.ErrorCode(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListTopLevelEmptyAuthorSet(t *testing.T) {
	db, _ := setupMockDB(t)
	repo := NewPostRepository(db)

	// A non-nil empty author filter short-circuits without touching the DB
	posts, err := repo.ListTopLevel(context.Background(), []uint{}, 0, "", 50, 0)
	assert.NoError(t, err)
	assert.Nil(t, posts)
}

func TestPostRepository_GetByIDsEmpty(t *testing.T) {
	db, _ := setupMockDB(t)
	repo := NewPostRepository(db)

	posts, err := repo.GetByIDs(context.Background(), nil, 0)
	assert.NoError(t, err)
	assert.Nil(t, posts)
}
