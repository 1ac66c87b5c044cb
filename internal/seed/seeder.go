package seed

import (
	"log"
	"math/rand"
	"time"

	"murmur/internal/models"

	"gorm.io/gorm"
)

// Seeder orchestrates demo-data generation on top of the Factory.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rng     *rand.Rand
}

// NewSeeder creates a Seeder with default options.
func NewSeeder(db *gorm.DB) *Seeder {
	return NewSeederWithOptions(db, SeedOptions{})
}

// NewSeederWithOptions creates a Seeder with explicit options.
func NewSeederWithOptions(db *gorm.DB, opts SeedOptions) *Seeder {
	// #nosec G404: acceptable for seeding
	return &Seeder{
		db:      db,
		factory: NewFactory(db, opts),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll wipes every seeded table, children before parents.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []string{"likes", "media", "messages", "conversations", "follows", "posts", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedSocialMesh creates users and a loose follow graph between them.
// Each user follows roughly a quarter of the others.
func (s *Seeder) SeedSocialMesh(numUsers int) ([]*models.User, error) {
	log.Printf("Seeding %d users...", numUsers)
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	log.Println("Seeding follow graph...")
	for _, source := range users {
		for _, target := range users {
			if source.ID == target.ID {
				continue
			}
			if s.rng.Intn(4) != 0 {
				continue
			}
			if err := s.factory.CreateFollow(source, target); err != nil {
				return nil, err
			}
		}
	}
	return users, nil
}

// SeedEngagement creates posts with replies, likes, and occasional media
// attachments, authored by random users from the given set.
func (s *Seeder) SeedEngagement(users []*models.User, numPosts int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	log.Printf("Seeding %d posts...", numPosts)
	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[s.rng.Intn(len(users))]
		post, err := s.factory.CreatePost(author)
		if err != nil {
			return nil, err
		}

		// Roughly every third post carries media
		if s.rng.Intn(3) == 0 {
			media, err := s.factory.CreateMedia(func(m *models.Media) {
				m.PostID = &post.ID
			})
			if err != nil {
				return nil, err
			}
			post.Media = append(post.Media, *media)
		}
		posts = append(posts, post)
	}

	log.Println("Seeding replies...")
	for _, post := range posts {
		for i := 0; i < s.rng.Intn(3); i++ {
			replier := users[s.rng.Intn(len(users))]
			if _, err := s.factory.CreateReply(replier, post); err != nil {
				return nil, err
			}
		}
	}

	log.Println("Seeding likes...")
	for _, post := range posts {
		// Each post gets likes from a random prefix of a shuffled user set,
		// so the unique (post, user) constraint always holds.
		shuffled := make([]*models.User, len(users))
		copy(shuffled, users)
		s.rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		likers := s.rng.Intn(len(shuffled) + 1)
		for _, user := range shuffled[:likers] {
			if err := s.factory.CreateLike(user, post); err != nil {
				return nil, err
			}
		}
	}
	return posts, nil
}

// SeedConversations creates direct-message threads between random pairs
// of users, each with a short back-and-forth.
func (s *Seeder) SeedConversations(users []*models.User, numConversations int) error {
	if len(users) < 2 {
		return nil
	}

	log.Printf("Seeding %d conversations...", numConversations)
	for i := 0; i < numConversations; i++ {
		a := users[s.rng.Intn(len(users))]
		b := users[s.rng.Intn(len(users))]
		if a.ID == b.ID {
			continue
		}
		conv, err := s.factory.CreateConversation(a, b)
		if err != nil {
			return err
		}

		participants := []*models.User{a, b}
		var lastID *uint
		for j := 0; j < 2+s.rng.Intn(6); j++ {
			sender := participants[j%2]
			msg, err := s.factory.CreateMessage(conv, sender, func(m *models.Message) {
				if lastID != nil && s.rng.Intn(3) == 0 {
					m.RepliedToID = lastID
				}
			})
			if err != nil {
				return err
			}
			lastID = &msg.ID
		}
	}
	return nil
}
