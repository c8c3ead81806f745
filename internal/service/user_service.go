package service

import (
	"context"
	"strings"
	"unicode"

	"chirp/internal/models"
	"chirp/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// MaxNameLength caps the display name.
const MaxNameLength = 25

// DefaultUserSearchLimit bounds user search results when no limit is given.
const DefaultUserSearchLimit = 20

// MaxUserSearchLimit is the hard cap on user search results.
const MaxUserSearchLimit = 50

// validateName enforces the display name rules: non-empty, at most
// MaxNameLength runes, letters and spaces only.
func validateName(name string) error {
	if name == "" {
		return models.NewValidationError("Name cannot be empty")
	}
	runes := []rune(name)
	if len(runes) > MaxNameLength {
		return models.NewValidationError("Name must be at most 25 characters")
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) && r != ' ' {
			return models.NewValidationError("Name may only contain letters and spaces")
		}
	}
	return nil
}

// UserService provides account and profile business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// RegisterInput carries the fields for a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Name     string
}

// Register creates a new account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Name = strings.TrimSpace(input.Name)

	if input.Username == "" || input.Email == "" || input.Name == "" {
		return nil, models.NewValidationError("Username, email and name are required")
	}
	if err := validateName(input.Name); err != nil {
		return nil, err
	}
	if !strings.Contains(input.Email, "@") {
		return nil, models.NewValidationError("Invalid email address")
	}
	if len(input.Password) < 8 {
		return nil, models.NewValidationError("Password must be at least 8 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashed),
		Name:     input.Name,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and returns the account. Both unknown
// email and wrong password produce the same error so the response does not
// reveal which one failed.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	return user, nil
}

// GetByID returns a user profile projected for the viewer.
func (s *UserService) GetByID(ctx context.Context, id, viewerID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id, viewerID)
}

// GetByUsername returns a user profile projected for the viewer.
func (s *UserService) GetByUsername(ctx context.Context, username string, viewerID uint) (*models.User, error) {
	return s.userRepo.GetByUsername(ctx, username, viewerID)
}

// Search returns users matching the term, excluding the caller, projected
// with follow counts and the caller's follow flag.
func (s *UserService) Search(ctx context.Context, viewerID uint, search string, limit int) ([]models.User, error) {
	if limit <= 0 {
		limit = DefaultUserSearchLimit
	} else if limit > MaxUserSearchLimit {
		limit = MaxUserSearchLimit
	}
	return s.userRepo.List(ctx, viewerID, strings.TrimSpace(search), limit)
}

// ProfileUpdate carries the mutable profile fields. Nil means unchanged.
type ProfileUpdate struct {
	Name          *string
	Bio           *string
	ProfileImgURL *string
	CoverImgURL   *string
	Password      *string
}

// UpdateProfile applies the given changes to the user's own profile.
// Identity fields (username, email) are immutable.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		user.Name = name
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.ProfileImgURL != nil {
		user.ProfileImgURL = *update.ProfileImgURL
	}
	if update.CoverImgURL != nil {
		user.CoverImgURL = *update.CoverImgURL
	}
	if update.Password != nil {
		if len(*update.Password) < 8 {
			return nil, models.NewValidationError("Password must be at least 8 characters")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID, userID)
}
