package repository

import (
	"context"
	"errors"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string, currentUserID uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, viewerID uint, search string, limit int) ([]models.User, error)
}

// userRepository implements UserRepository
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateConstraintError(err, "Username or email already taken", "Referenced user not found")
	}
	return nil
}

// applyUserDetails adds subqueries to fetch follow counts and follow status in a single query.
func (r *userRepository) applyUserDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "users.*, " +
		"(SELECT COUNT(*) FROM follows WHERE follows.followed_id = users.id) as follower_count, " +
		"(SELECT COUNT(*) FROM follows WHERE follows.follower_id = users.id) as following_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM follows WHERE follows.followed_id = users.id AND follows.follower_id = ?) as is_following", currentUserID)
	}

	return db.Select(selectQuery + ", false as is_following")
}

func (r *userRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.User, error) {
	var user models.User
	if err := r.applyUserDetails(r.db.WithContext(ctx), currentUserID).
		First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewReferenceNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string, currentUserID uint) (*models.User, error) {
	var user models.User
	if err := r.applyUserDetails(r.db.WithContext(ctx), currentUserID).
		Where("username = ?", username).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewReferenceNotFoundError("User", username)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewReferenceNotFoundError("User", email)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).
		Model(&models.User{ID: user.ID}).
		Select("Name", "Bio", "ProfileImgURL", "CoverImgURL", "Password").
		Updates(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// List returns users matching the search term, excluding the viewer. The
// follow projection is computed per row for the viewer.
func (r *userRepository) List(ctx context.Context, viewerID uint, search string, limit int) ([]models.User, error) {
	query := r.applyUserDetails(r.db.WithContext(ctx).Model(&models.User{}), viewerID)

	if viewerID != 0 {
		query = query.Where("users.id <> ?", viewerID)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("username ILIKE ? OR name ILIKE ?", pattern, pattern)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var users []models.User
	if err := query.Order("username ASC").Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
