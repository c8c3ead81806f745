// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"chirp/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with realistic test data.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder returns a Seeder bound to the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data. Deletion order follows the foreign keys.
func (s *Seeder) ClearAll() error {
	tables := []string{"notifications", "follows", "reposts", "bookmarks", "likes", "posts", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	log.Println("✓ Database cleared")
	return nil
}

// Run executes the full seeding pipeline.
func (s *Seeder) Run(opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	if err := s.SeedFollowGraph(users); err != nil {
		return fmt.Errorf("failed to create follow graph: %w", err)
	}
	log.Println("✓ Follow graph created")

	posts, err := s.SeedPosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := s.SeedEngagement(users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	log.Println("✓ Likes, bookmarks and reposts created")

	return nil
}

// SeedUsers creates n users. All accounts share the password "password123".
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		name := gofakeit.Name()
		username := fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i)
		user := models.User{
			Username:      username,
			Email:         fmt.Sprintf("%s@example.com", username),
			Password:      string(hashed),
			Name:          name,
			Bio:           gofakeit.Sentence(8),
			ProfileImgURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedFollowGraph creates follow edges plus the notifications the
// interaction service would have emitted for them.
func (s *Seeder) SeedFollowGraph(users []models.User) error {
	for i := range users {
		numFollows := s.rand.Intn(len(users)/2 + 1)
		followed := make(map[uint]struct{}, numFollows)
		for j := 0; j < numFollows; j++ {
			target := users[s.rand.Intn(len(users))]
			if target.ID == users[i].ID {
				continue
			}
			if _, ok := followed[target.ID]; ok {
				continue
			}
			followed[target.ID] = struct{}{}

			err := s.db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&models.Follow{
					FollowerID: users[i].ID,
					FollowedID: target.ID,
				}).Error; err != nil {
					return err
				}
				return tx.Create(&models.Notification{
					Type:       models.NotificationTypeFollow,
					SenderID:   users[i].ID,
					ReceiverID: target.ID,
					Content:    fmt.Sprintf("%s followed you", users[i].Name),
					IsRead:     s.rand.Intn(2) == 0,
				}).Error
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedPosts creates n posts spread across the users. Roughly a quarter are
// replies to earlier posts and some carry an image.
func (s *Seeder) SeedPosts(users []models.User, n int) ([]models.Post, error) {
	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rand.Intn(len(users))]
		post := models.Post{
			Content: gofakeit.Sentence(5 + s.rand.Intn(20)),
			UserID:  author.ID,
		}
		if s.rand.Intn(5) == 0 {
			post.ImgURL = fmt.Sprintf("https://picsum.photos/seed/%d/800/600", s.rand.Intn(10000))
		}
		if len(posts) > 0 && s.rand.Intn(4) == 0 {
			parent := posts[s.rand.Intn(len(posts))]
			// Replies only nest one level deep
			if parent.ParentPostID == nil {
				post.ParentPostID = &parent.ID
			}
		}
		if err := s.db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// SeedEngagement creates likes, bookmarks and reposts with their
// notifications, mirroring what the interaction service writes.
func (s *Seeder) SeedEngagement(users []models.User, posts []models.Post) error {
	for i := range posts {
		post := posts[i]
		owner := userByID(users, post.UserID)

		numLikes := s.rand.Intn(len(users)/3 + 1)
		liked := make(map[uint]struct{}, numLikes)
		for j := 0; j < numLikes; j++ {
			actor := users[s.rand.Intn(len(users))]
			if _, ok := liked[actor.ID]; ok {
				continue
			}
			liked[actor.ID] = struct{}{}
			if err := s.engage(actor, owner, post, models.NotificationTypeLike, "liked"); err != nil {
				return err
			}
		}

		if s.rand.Intn(4) == 0 {
			actor := users[s.rand.Intn(len(users))]
			if err := s.engage(actor, owner, post, models.NotificationTypeRepost, "reposted"); err != nil {
				return err
			}
		}

		if s.rand.Intn(5) == 0 {
			actor := users[s.rand.Intn(len(users))]
			bookmark := models.Bookmark{UserID: actor.ID, PostID: post.ID}
			if err := s.db.Create(&bookmark).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) engage(actor, owner models.User, post models.Post, typ models.NotificationType, verb string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var edgeErr error
		switch typ {
		case models.NotificationTypeLike:
			edgeErr = tx.Create(&models.Like{UserID: actor.ID, PostID: post.ID}).Error
		case models.NotificationTypeRepost:
			edgeErr = tx.Create(&models.Repost{UserID: actor.ID, PostID: post.ID}).Error
		}
		if edgeErr != nil {
			return edgeErr
		}
		if actor.ID == owner.ID {
			return nil
		}
		pid := post.ID
		return tx.Create(&models.Notification{
			Type:       typ,
			SenderID:   actor.ID,
			ReceiverID: owner.ID,
			PostID:     &pid,
			Content:    fmt.Sprintf("%s %s your post", actor.Name, verb),
			IsRead:     s.rand.Intn(2) == 0,
		}).Error
	})
}

func userByID(users []models.User, id uint) models.User {
	for _, u := range users {
		if u.ID == id {
			return u
		}
	}
	return models.User{}
}
