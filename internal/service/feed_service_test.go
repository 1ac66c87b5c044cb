package service

import (
	"context"
	"strings"
	"testing"

	"murmur/internal/cache"
	"murmur/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFeedService(postRepo *postRepoStub, userRepo *userRepoStub, mediaRepo *mediaRepoStub, followRepo *followRepoStub) *FeedService {
	if postRepo == nil {
		postRepo = noopPostRepo()
	}
	if userRepo == nil {
		userRepo = noopUserRepo()
	}
	if mediaRepo == nil {
		mediaRepo = noopMediaRepo()
	}
	if followRepo == nil {
		followRepo = noopFollowRepo()
	}
	return NewFeedService(postRepo, userRepo, mediaRepo, followRepo)
}

func TestCreatePostRoundTrip(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 42
		return nil
	}
	svc := newFeedService(postRepo, nil, nil, nil)

	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		ActorID:    1,
		Content:    "hello world",
		MediaNames: []string{"shot.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(42), post.ID)
	assert.Equal(t, "hello world", post.Content)
	assert.Equal(t, uint(1), post.UserID)
	assert.Equal(t, 0, post.LikeCount)
	require.Len(t, post.Media, 1)
	assert.Equal(t, "shot.png", post.Media[0].Name)
}

func TestCreatePostEmptyBody(t *testing.T) {
	svc := newFeedService(nil, nil, nil, nil)

	_, err := svc.CreatePost(context.Background(), CreatePostInput{ActorID: 1})
	assertCode(t, err, models.CodeValidation)
}

func TestCreatePostContentTooLong(t *testing.T) {
	svc := newFeedService(nil, nil, nil, nil)

	_, err := svc.CreatePost(context.Background(), CreatePostInput{
		ActorID: 1,
		Content: strings.Repeat("x", models.MaxContentLength+1),
	})
	assertCode(t, err, models.CodeValidation)
}

func TestCreatePostUnknownActor(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, _ uint) (*models.User, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := newFeedService(nil, userRepo, nil, nil)

	_, err := svc.CreatePost(context.Background(), CreatePostInput{ActorID: 9, Content: "hi"})
	assertCode(t, err, models.CodeUnauthorized)
}

func TestCreatePostUnresolvableMedia(t *testing.T) {
	mediaRepo := noopMediaRepo()
	mediaRepo.getByNamesFn = func(_ context.Context, _ []string) ([]models.Media, error) {
		return nil, nil
	}
	svc := newFeedService(nil, nil, mediaRepo, nil)

	_, err := svc.CreatePost(context.Background(), CreatePostInput{
		ActorID:    1,
		MediaNames: []string{"ghost.png"},
	})
	assertCode(t, err, models.CodeNotFound)
}

func TestGetPostByIDNotFound(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := newFeedService(postRepo, nil, nil, nil)

	_, err := svc.GetPostByID(context.Background(), 99)
	assertCode(t, err, models.CodeNotFound)
}

func TestUpdatePostNonOwner(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 7, Content: "original"}, nil
	}
	svc := newFeedService(postRepo, nil, nil, nil)

	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{
		PostID:  5,
		ActorID: 8,
		Content: "hijack",
	})
	assertCode(t, err, models.CodeForbidden)
}

func TestUpdatePostReplacesMedia(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1, Content: "original", Media: []models.Media{{ID: 1, Name: "old.png"}}}, nil
	}
	var replaced []models.Media
	postRepo.replaceMediaFn = func(_ context.Context, _ uint, media []models.Media) error {
		replaced = media
		return nil
	}
	svc := newFeedService(postRepo, nil, nil, nil)

	post, err := svc.UpdatePost(context.Background(), UpdatePostInput{
		PostID:     5,
		ActorID:    1,
		Content:    "edited",
		MediaNames: []string{"new.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, "edited", post.Content)
	require.Len(t, replaced, 1)
	assert.Equal(t, "new.png", replaced[0].Name)
}

func TestUpdatePostCannotEmptyBody(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1, Content: "text only"}, nil
	}
	svc := newFeedService(postRepo, nil, nil, nil)

	// Clearing content while replacing media with nothing leaves no body.
	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{
		PostID:     5,
		ActorID:    1,
		Content:    "",
		MediaNames: []string{},
	})
	assertCode(t, err, models.CodeValidation)
}

func TestDeletePostNonOwner(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 7}, nil
	}
	svc := newFeedService(postRepo, nil, nil, nil)

	err := svc.DeletePost(context.Background(), 5, 8)
	assertCode(t, err, models.CodeForbidden)
}

func TestReplyToMissingParent(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := newFeedService(postRepo, nil, nil, nil)

	_, err := svc.ReplyToPost(context.Background(), CreatePostInput{ActorID: 1, Content: "re"}, 99)
	assertCode(t, err, models.CodeNotFound)
}

func TestReplyLinksParent(t *testing.T) {
	postRepo := noopPostRepo()
	var created *models.Post
	postRepo.createFn = func(_ context.Context, p *models.Post) error {
		created = p
		return nil
	}
	svc := newFeedService(postRepo, nil, nil, nil)

	_, err := svc.ReplyToPost(context.Background(), CreatePostInput{ActorID: 1, Content: "re"}, 7)
	require.NoError(t, err)
	require.NotNil(t, created.RepliedToID)
	assert.Equal(t, uint(7), *created.RepliedToID)
}

func TestFeedWithoutFollowsIsEmpty(t *testing.T) {
	svc := newFeedService(nil, nil, nil, nil)

	posts, err := svc.GetFeedForFollowedUsers(context.Background(), 1, 20, 0)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestFeedQueriesFollowedAuthors(t *testing.T) {
	followRepo := noopFollowRepo()
	followRepo.listFollowingIDsFn = func(_ context.Context, _ uint) ([]uint, error) {
		return []uint{2, 3}, nil
	}
	postRepo := noopPostRepo()
	var queried []uint
	postRepo.listByAuthorsFn = func(_ context.Context, authorIDs []uint, _, _ int) ([]*models.Post, error) {
		queried = authorIDs
		return []*models.Post{{ID: 1, UserID: 2}}, nil
	}
	svc := newFeedService(postRepo, nil, nil, followRepo)

	posts, err := svc.GetFeedForFollowedUsers(context.Background(), 1, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 3}, queried)
	require.Len(t, posts, 1)
	assert.Equal(t, uint(2), posts[0].UserID)
}

func TestFeedCacheKeyedByPageSize(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	followRepo := noopFollowRepo()
	followRepo.listFollowingIDsFn = func(_ context.Context, _ uint) ([]uint, error) {
		return []uint{2}, nil
	}
	postRepo := noopPostRepo()
	postRepo.listByAuthorsFn = func(_ context.Context, _ []uint, limit, _ int) ([]*models.Post, error) {
		posts := make([]*models.Post, 0, limit)
		for i := 0; i < limit && i < 5; i++ {
			posts = append(posts, &models.Post{ID: uint(i + 1), UserID: 2})
		}
		return posts, nil
	}
	svc := newFeedService(postRepo, nil, nil, followRepo)
	ctx := context.Background()

	// A cached one-post first page must not be replayed for a request
	// asking for a larger page.
	posts, err := svc.GetFeedForFollowedUsers(ctx, 1, 1, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	posts, err = svc.GetFeedForFollowedUsers(ctx, 1, 5, 0)
	require.NoError(t, err)
	assert.Len(t, posts, 5)
}

func TestToggleLikeScenario(t *testing.T) {
	postRepo := noopPostRepo()
	state := false
	postRepo.toggleLikeFn = func(_ context.Context, _, _ uint) (bool, error) {
		state = !state
		return state, nil
	}
	svc := newFeedService(postRepo, nil, nil, nil)
	ctx := context.Background()

	liked, err := svc.ToggleLike(ctx, 1, 5)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = svc.ToggleLike(ctx, 1, 5)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestToggleLikeMissingPost(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := newFeedService(postRepo, nil, nil, nil)

	_, err := svc.ToggleLike(context.Background(), 1, 99)
	assertCode(t, err, models.CodeNotFound)
}

func TestLikePostTwiceConflicts(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.isLikedFn = func(_ context.Context, _, _ uint) (bool, error) { return true, nil }
	svc := newFeedService(postRepo, nil, nil, nil)

	err := svc.LikePost(context.Background(), 1, 5)
	assertCode(t, err, models.CodeConflict)
}

func TestLikePostLosingInsertRaceConflicts(t *testing.T) {
	// The IsLiked check can pass while a concurrent request inserts the
	// same like; the unique-constraint error must read as a duplicate
	// like, not a server fault.
	postRepo := noopPostRepo()
	postRepo.likeFn = func(_ context.Context, _, _ uint) error {
		return gorm.ErrDuplicatedKey
	}
	svc := newFeedService(postRepo, nil, nil, nil)

	err := svc.LikePost(context.Background(), 1, 5)
	assertCode(t, err, models.CodeConflict)
}

func TestUnlikeWithoutLikeNotFound(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.unlikeFn = func(_ context.Context, _, _ uint) error {
		return gorm.ErrRecordNotFound
	}
	svc := newFeedService(postRepo, nil, nil, nil)

	err := svc.UnlikePost(context.Background(), 1, 5)
	assertCode(t, err, models.CodeNotFound)
}
