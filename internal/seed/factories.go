// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"murmur/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions tunes how much and how fast the factory generates data.
type SeedOptions struct {
	// SkipBcrypt stores a plaintext password marker instead of a hash.
	// Much faster for large datasets; never use outside development.
	SkipBcrypt bool
	// MaxDays spreads generated created_at timestamps over the past N days.
	MaxDays int
	// DryRun logs what would be created without touching the database.
	DryRun bool
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	rng  *rand.Rand
	// synthetic ID counter for DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	// #nosec G404: acceptable for seeding
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Factory{db: db, opts: opts, rng: rng, nextID: 1000}
}

// pastTimestamp returns a time spread over the past opts.MaxDays days.
func (f *Factory) pastTimestamp() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Name:     gofakeit.FirstName(),
		Surname:  gofakeit.LastName(),
		Bio:      gofakeit.Sentence(10),
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Username, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateMedia persists an unattached media row with a unique name, as the
// upload pipeline would.
func (f *Factory) CreateMedia(overrides ...func(*models.Media)) (*models.Media, error) {
	mimeTypes := []string{"image/png", "image/jpeg", "image/gif", "video/mp4"}
	media := &models.Media{
		Name:     uuid.NewString()[:13],
		MimeType: mimeTypes[f.rng.Intn(len(mimeTypes))],
	}

	for _, override := range overrides {
		override(media)
	}

	if f.opts.DryRun {
		f.nextID++
		media.ID = f.nextID
		log.Printf("[dry-run] CreateMedia: %s (%s)", media.Name, media.MimeType)
		return media, nil
	}

	if err := f.db.Create(media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

// CreatePost constructs and persists a sample `models.Post` for the given user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		Content:   gofakeit.Paragraph(1, 3, 5, "\n"),
		UserID:    user.ID,
		CreatedAt: f.pastTimestamp(),
	}

	for _, override := range overrides {
		override(post)
	}

	if f.opts.DryRun {
		f.nextID++
		post.ID = f.nextID
		log.Printf("[dry-run] CreatePost: user=%d", post.UserID)
		return post, nil
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateReply persists a reply to the given parent post.
func (f *Factory) CreateReply(user *models.User, parent *models.Post) (*models.Post, error) {
	return f.CreatePost(user, func(p *models.Post) {
		p.Content = gofakeit.Sentence(8)
		p.RepliedToID = &parent.ID
	})
}

// CreateLike persists a like from `user` on `post`, keeping the
// denormalized counter in step with the row.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateLike: user=%d post=%d", user.ID, post.ID)
		return nil
	}
	return f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", post.ID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
}

// CreateFollow persists a follow edge from source to target.
func (f *Factory) CreateFollow(source, target *models.User) error {
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateFollow: %d -> %d", source.ID, target.ID)
		return nil
	}
	return f.db.Create(&models.Follow{SourceID: source.ID, TargetID: target.ID}).Error
}

// CreateConversation persists a two-party conversation.
func (f *Factory) CreateConversation(user1, user2 *models.User, overrides ...func(*models.Conversation)) (*models.Conversation, error) {
	conv := &models.Conversation{
		User1ID:     user1.ID,
		User2ID:     user2.ID,
		Description: gofakeit.Sentence(4),
	}

	for _, override := range overrides {
		override(conv)
	}

	if f.opts.DryRun {
		f.nextID++
		conv.ID = f.nextID
		log.Printf("[dry-run] CreateConversation: %d <-> %d", conv.User1ID, conv.User2ID)
		return conv, nil
	}

	if err := f.db.Create(conv).Error; err != nil {
		return nil, err
	}
	return conv, nil
}

// CreateMessage constructs and persists a sample `models.Message` in the
// provided conversation from the provided sender.
func (f *Factory) CreateMessage(conversation *models.Conversation, sender *models.User, overrides ...func(*models.Message)) (*models.Message, error) {
	message := &models.Message{
		ConversationID: conversation.ID,
		SenderID:       sender.ID,
		Content:        gofakeit.Sentence(10),
	}

	for _, override := range overrides {
		override(message)
	}

	if f.opts.DryRun {
		f.nextID++
		message.ID = f.nextID
		log.Printf("[dry-run] CreateMessage: conversation=%d sender=%d", message.ConversationID, message.SenderID)
		return message, nil
	}

	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}
