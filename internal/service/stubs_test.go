package service

import (
	"context"
	"testing"

	"murmur/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	updateFn        func(context.Context, *models.User) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "someone"}, nil
		},
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			return &models.User{ID: 1, Username: username}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return &models.User{}, nil },
		updateFn:     func(_ context.Context, _ *models.User) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn              func(context.Context, *models.Post) error
	getByIDFn             func(context.Context, uint) (*models.Post, error)
	listFn                func(context.Context, int, int) ([]*models.Post, error)
	listByUserFn          func(context.Context, uint, int, int) ([]*models.Post, error)
	listByAuthorsFn       func(context.Context, []uint, int, int) ([]*models.Post, error)
	listRepliesFn         func(context.Context, uint) ([]*models.Post, error)
	updateFn              func(context.Context, *models.Post) error
	replaceMediaFn        func(context.Context, uint, []models.Media) error
	deleteFn              func(context.Context, uint) error
	isLikedFn             func(context.Context, uint, uint) (bool, error)
	likeFn                func(context.Context, uint, uint) error
	unlikeFn              func(context.Context, uint, uint) error
	toggleLikeFn          func(context.Context, uint, uint) (bool, error)
	reconcileLikeCountsFn func(context.Context) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) ListByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, error) {
	return s.listByAuthorsFn(ctx, authorIDs, limit, offset)
}
func (s *postRepoStub) ListReplies(ctx context.Context, postID uint) ([]*models.Post, error) {
	return s.listRepliesFn(ctx, postID)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) ReplaceMedia(ctx context.Context, postID uint, media []models.Media) error {
	return s.replaceMediaFn(ctx, postID, media)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	return s.toggleLikeFn(ctx, userID, postID)
}
func (s *postRepoStub) ReconcileLikeCounts(ctx context.Context) error {
	return s.reconcileLikeCountsFn(ctx)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn:    func(_ context.Context, _, _ int) ([]*models.Post, error) { return nil, nil },
		listByUserFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		listByAuthorsFn: func(_ context.Context, _ []uint, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		listRepliesFn:         func(_ context.Context, _ uint) ([]*models.Post, error) { return nil, nil },
		updateFn:              func(_ context.Context, _ *models.Post) error { return nil },
		replaceMediaFn:        func(_ context.Context, _ uint, _ []models.Media) error { return nil },
		deleteFn:              func(_ context.Context, _ uint) error { return nil },
		isLikedFn:             func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:                func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:              func(_ context.Context, _, _ uint) error { return nil },
		toggleLikeFn:          func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		reconcileLikeCountsFn: func(_ context.Context) error { return nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	createFn           func(context.Context, *models.Follow) error
	deleteFn           func(context.Context, uint, uint) error
	existsFn           func(context.Context, uint, uint) (bool, error)
	listFollowersFn    func(context.Context, uint) ([]*models.Follow, error)
	listFollowingFn    func(context.Context, uint) ([]*models.Follow, error)
	listFollowingIDsFn func(context.Context, uint) ([]uint, error)
}

func (s *followRepoStub) Create(ctx context.Context, follow *models.Follow) error {
	return s.createFn(ctx, follow)
}
func (s *followRepoStub) Delete(ctx context.Context, sourceID, targetID uint) error {
	return s.deleteFn(ctx, sourceID, targetID)
}
func (s *followRepoStub) Exists(ctx context.Context, sourceID, targetID uint) (bool, error) {
	return s.existsFn(ctx, sourceID, targetID)
}
func (s *followRepoStub) ListFollowers(ctx context.Context, userID uint) ([]*models.Follow, error) {
	return s.listFollowersFn(ctx, userID)
}
func (s *followRepoStub) ListFollowing(ctx context.Context, userID uint) ([]*models.Follow, error) {
	return s.listFollowingFn(ctx, userID)
}
func (s *followRepoStub) ListFollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.listFollowingIDsFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:           func(_ context.Context, _ *models.Follow) error { return nil },
		deleteFn:           func(_ context.Context, _, _ uint) error { return nil },
		existsFn:           func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		listFollowersFn:    func(_ context.Context, _ uint) ([]*models.Follow, error) { return nil, nil },
		listFollowingFn:    func(_ context.Context, _ uint) ([]*models.Follow, error) { return nil, nil },
		listFollowingIDsFn: func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
	}
}

// mediaRepoStub is a stub for repository.MediaRepository.
type mediaRepoStub struct {
	getByNameFn  func(context.Context, string) (*models.Media, error)
	getByNamesFn func(context.Context, []string) ([]models.Media, error)
}

func (s *mediaRepoStub) GetByName(ctx context.Context, name string) (*models.Media, error) {
	return s.getByNameFn(ctx, name)
}
func (s *mediaRepoStub) GetByNames(ctx context.Context, names []string) ([]models.Media, error) {
	return s.getByNamesFn(ctx, names)
}

func noopMediaRepo() *mediaRepoStub {
	return &mediaRepoStub{
		getByNameFn: func(_ context.Context, _ string) (*models.Media, error) {
			return nil, gorm.ErrRecordNotFound
		},
		getByNamesFn: func(_ context.Context, names []string) ([]models.Media, error) {
			media := make([]models.Media, 0, len(names))
			for i, name := range names {
				media = append(media, models.Media{ID: uint(i + 1), Name: name})
			}
			return media, nil
		},
	}
}

// chatRepoStub is a stub for repository.ChatRepository.
type chatRepoStub struct {
	createConversationFn       func(context.Context, *models.Conversation) error
	getConversationByIDFn      func(context.Context, uint) (*models.Conversation, error)
	listConversationsForUserFn func(context.Context, uint) ([]*models.Conversation, error)
	updateConversationFn       func(context.Context, *models.Conversation) error
	deleteConversationFn       func(context.Context, uint) error
	createMessageFn            func(context.Context, *models.Message) error
	getMessageByIDFn           func(context.Context, uint) (*models.Message, error)
	listMessagesFn             func(context.Context, uint, int, int) ([]*models.Message, error)
	updateMessageFn            func(context.Context, *models.Message) error
	replaceMessageMediaFn      func(context.Context, uint, []models.Media) error
	deleteMessageFn            func(context.Context, uint) error
}

func (s *chatRepoStub) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	return s.createConversationFn(ctx, conv)
}
func (s *chatRepoStub) GetConversationByID(ctx context.Context, id uint) (*models.Conversation, error) {
	return s.getConversationByIDFn(ctx, id)
}
func (s *chatRepoStub) ListConversationsForUser(ctx context.Context, userID uint) ([]*models.Conversation, error) {
	return s.listConversationsForUserFn(ctx, userID)
}
func (s *chatRepoStub) UpdateConversation(ctx context.Context, conv *models.Conversation) error {
	return s.updateConversationFn(ctx, conv)
}
func (s *chatRepoStub) DeleteConversation(ctx context.Context, id uint) error {
	return s.deleteConversationFn(ctx, id)
}
func (s *chatRepoStub) CreateMessage(ctx context.Context, msg *models.Message) error {
	return s.createMessageFn(ctx, msg)
}
func (s *chatRepoStub) GetMessageByID(ctx context.Context, id uint) (*models.Message, error) {
	return s.getMessageByIDFn(ctx, id)
}
func (s *chatRepoStub) ListMessages(ctx context.Context, conversationID uint, limit, offset int) ([]*models.Message, error) {
	return s.listMessagesFn(ctx, conversationID, limit, offset)
}
func (s *chatRepoStub) UpdateMessage(ctx context.Context, msg *models.Message) error {
	return s.updateMessageFn(ctx, msg)
}
func (s *chatRepoStub) ReplaceMessageMedia(ctx context.Context, messageID uint, media []models.Media) error {
	return s.replaceMessageMediaFn(ctx, messageID, media)
}
func (s *chatRepoStub) DeleteMessage(ctx context.Context, id uint) error {
	return s.deleteMessageFn(ctx, id)
}

func noopChatRepo() *chatRepoStub {
	return &chatRepoStub{
		createConversationFn: func(_ context.Context, _ *models.Conversation) error { return nil },
		getConversationByIDFn: func(_ context.Context, id uint) (*models.Conversation, error) {
			return &models.Conversation{ID: id, User1ID: 1, User2ID: 2}, nil
		},
		listConversationsForUserFn: func(_ context.Context, _ uint) ([]*models.Conversation, error) {
			return nil, nil
		},
		updateConversationFn: func(_ context.Context, _ *models.Conversation) error { return nil },
		deleteConversationFn: func(_ context.Context, _ uint) error { return nil },
		createMessageFn:      func(_ context.Context, _ *models.Message) error { return nil },
		getMessageByIDFn: func(_ context.Context, id uint) (*models.Message, error) {
			return &models.Message{ID: id, ConversationID: 1, SenderID: 1}, nil
		},
		listMessagesFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Message, error) {
			return nil, nil
		},
		updateMessageFn:       func(_ context.Context, _ *models.Message) error { return nil },
		replaceMessageMediaFn: func(_ context.Context, _ uint, _ []models.Media) error { return nil },
		deleteMessageFn:       func(_ context.Context, _ uint) error { return nil },
	}
}
