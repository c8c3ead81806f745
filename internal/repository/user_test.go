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

func TestUserRepository_GetByIDWithDetails(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT users\..+ FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "username", "name", "follower_count", "following_count", "is_following",
		}).AddRow(1, "alice", "Alice", 12, 8, true))

	user, err := repo.GetByID(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, 12, user.FollowerCount)
	assert.Equal(t, 8, user.FollowingCount)
	assert.True(t, user.IsFollowing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmailNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.Equal(t, models.CodeReferenceNotFound, models.ErrorCode(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListExcludesViewer(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT users\..+ FROM "users" WHERE users\.id <> .+ AND \(username ILIKE .+ OR name ILIKE .+\)`).
		WithArgs(2, 2, "%al%", "%al%").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "username", "name", "follower_count", "following_count", "is_following",
		}).AddRow(1, "alice", "Alice", 3, 1, true))

	users, err := repo.List(context.Background(), 2, "al", 20)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
	assert.True(t, users[0].IsFollowing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Exists(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users"`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
