package service

import (
	"context"

	"murmur/internal/cache"
	"murmur/internal/models"
	"murmur/internal/observability"
	"murmur/internal/policy"
	"murmur/internal/repository"
	"murmur/internal/validation"
)

// FeedService manages posts, replies, likes, and the followed-users feed.
type FeedService struct {
	postRepo   repository.PostRepository
	userRepo   repository.UserRepository
	mediaRepo  repository.MediaRepository
	followRepo repository.FollowRepository
}

// CreatePostInput carries the payload for creating a post or reply.
type CreatePostInput struct {
	ActorID    uint
	Content    string
	MediaNames []string
}

// UpdatePostInput carries the payload for updating a post. A nil
// MediaNames leaves the media set untouched; a non-nil slice (including
// an empty one) replaces it wholesale.
type UpdatePostInput struct {
	PostID     uint
	ActorID    uint
	Content    string
	MediaNames []string
}

// NewFeedService creates a new feed service
func NewFeedService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	mediaRepo repository.MediaRepository,
	followRepo repository.FollowRepository,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		userRepo:   userRepo,
		mediaRepo:  mediaRepo,
		followRepo: followRepo,
	}
}

// resolveMedia validates and resolves pre-uploaded media rows by name.
// Every name must resolve; a missing one is NOT_FOUND.
func (s *FeedService) resolveMedia(ctx context.Context, names []string) ([]models.Media, error) {
	if len(names) == 0 {
		return nil, nil
	}
	for _, name := range names {
		if err := validation.ValidateMediaName(name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}
	media, err := s.mediaRepo.GetByNames(ctx, names)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(media) != len(names) {
		resolved := make(map[string]struct{}, len(media))
		for _, m := range media {
			resolved[m.Name] = struct{}{}
		}
		for _, name := range names {
			if _, ok := resolved[name]; !ok {
				return nil, models.NewNotFoundError("Media", name)
			}
		}
	}
	return media, nil
}

func (s *FeedService) validateBody(content string, media []models.Media) error {
	if err := validation.ValidateContent(content); err != nil {
		return models.NewValidationError(err.Error())
	}
	if content == "" && len(media) == 0 {
		return models.NewValidationError("A post must have text content or media")
	}
	return nil
}

// CreatePost creates a top-level post for the actor.
func (s *FeedService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	return s.createPost(ctx, in, nil)
}

// ReplyToPost creates a post linked to a parent post.
func (s *FeedService) ReplyToPost(ctx context.Context, in CreatePostInput, repliedToID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, repliedToID); err != nil {
		return nil, mapStoreError(err, "Post", repliedToID)
	}
	return s.createPost(ctx, in, &repliedToID)
}

func (s *FeedService) createPost(ctx context.Context, in CreatePostInput, repliedToID *uint) (*models.Post, error) {
	if in.ActorID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	actor, err := s.userRepo.GetByID(ctx, in.ActorID)
	if err != nil {
		return nil, models.NewUnauthorizedError("Unknown user")
	}

	media, err := s.resolveMedia(ctx, in.MediaNames)
	if err != nil {
		return nil, err
	}
	if err := s.validateBody(in.Content, media); err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:      actor.ID,
		Content:     in.Content,
		Media:       media,
		RepliedToID: repliedToID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	post.User = *actor

	if repliedToID != nil {
		observability.PostsCreated.WithLabelValues("reply").Inc()
	} else {
		observability.PostsCreated.WithLabelValues("post").Inc()
	}
	return post, nil
}

// GetPostByID returns the post with owner and media loaded.
func (s *FeedService) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "Post", id)
	}
	return post, nil
}

// ListPosts returns all posts, newest first.
func (s *FeedService) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, nil
}

// ListPostsByUser returns a user's posts, newest first.
func (s *FeedService) ListPostsByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, mapStoreError(err, "User", userID)
	}
	posts, err := s.postRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, nil
}

// ListReplies returns the replies to a post, oldest first.
func (s *FeedService) ListReplies(ctx context.Context, postID uint) ([]*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, mapStoreError(err, "Post", postID)
	}
	replies, err := s.postRepo.ListReplies(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if replies == nil {
		replies = []*models.Post{}
	}
	return replies, nil
}

// UpdatePost rewrites the post's content (and media set when provided).
// Only the owner may update.
func (s *FeedService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, mapStoreError(err, "Post", in.PostID)
	}
	if !policy.CanModify(in.ActorID, post.UserID) {
		observability.AccessDenials.WithLabelValues("update_post").Inc()
		return nil, models.NewForbiddenError("You can only modify your own posts")
	}

	media := post.Media
	if in.MediaNames != nil {
		media, err = s.resolveMedia(ctx, in.MediaNames)
		if err != nil {
			return nil, err
		}
	}
	if err := s.validateBody(in.Content, media); err != nil {
		return nil, err
	}

	post.Content = in.Content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	if in.MediaNames != nil {
		if err := s.postRepo.ReplaceMedia(ctx, post.ID, media); err != nil {
			return nil, models.NewInternalError(err)
		}
		post.Media = media
	}
	return post, nil
}

// DeletePost removes the post with its likes and media. Only the owner
// may delete.
func (s *FeedService) DeletePost(ctx context.Context, postID, actorID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return mapStoreError(err, "Post", postID)
	}
	if !policy.CanModify(actorID, post.UserID) {
		observability.AccessDenials.WithLabelValues("delete_post").Inc()
		return models.NewForbiddenError("You can only delete your own posts")
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetFeedForFollowedUsers returns posts authored by users the actor
// follows, newest first. No follows means an empty feed, not an error.
// The first page goes through a short-TTL cache.
func (s *FeedService) GetFeedForFollowedUsers(ctx context.Context, actorID uint, limit, offset int) ([]*models.Post, error) {
	if actorID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	authorIDs, err := s.followRepo.ListFollowingIDs(ctx, actorID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(authorIDs) == 0 {
		return []*models.Post{}, nil
	}

	fetch := func(dest *[]*models.Post) error {
		posts, err := s.postRepo.ListByAuthors(ctx, authorIDs, limit, offset)
		if err != nil {
			return err
		}
		*dest = posts
		return nil
	}

	var posts []*models.Post
	if offset == 0 {
		// Only the first page is cached; deeper pages are rare and cheap.
		key := cache.FeedKey(actorID, limit)
		err = cache.CacheAside(ctx, key, &posts, cache.FeedTTL, func() error {
			observability.RecordCacheMiss("feed")
			return fetch(&posts)
		})
	} else {
		err = fetch(&posts)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, nil
}

// ToggleLike flips the actor's like on the post, returning the resulting
// state. Row and counter move in one transaction.
func (s *FeedService) ToggleLike(ctx context.Context, actorID, postID uint) (bool, error) {
	if actorID == 0 {
		return false, models.NewUnauthorizedError("Authentication required")
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return false, mapStoreError(err, "Post", postID)
	}
	liked, err := s.postRepo.ToggleLike(ctx, actorID, postID)
	if err != nil {
		return false, models.NewInternalError(err)
	}
	if liked {
		observability.LikeToggles.WithLabelValues("liked").Inc()
	} else {
		observability.LikeToggles.WithLabelValues("unliked").Inc()
	}
	return liked, nil
}

// LikePost likes a post; CONFLICT when already liked.
func (s *FeedService) LikePost(ctx context.Context, actorID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return mapStoreError(err, "Post", postID)
	}
	already, err := s.postRepo.IsLiked(ctx, actorID, postID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if err := policy.CheckLike(actorID, postID, already); err != nil {
		return err
	}
	if err := s.postRepo.Like(ctx, actorID, postID); err != nil {
		return mapStoreError(err, "Like", postID)
	}
	observability.LikeToggles.WithLabelValues("liked").Inc()
	return nil
}

// UnlikePost removes an existing like; NOT_FOUND when there is none.
func (s *FeedService) UnlikePost(ctx context.Context, actorID, postID uint) error {
	if actorID == 0 {
		return models.NewUnauthorizedError("Authentication required")
	}
	if err := s.postRepo.Unlike(ctx, actorID, postID); err != nil {
		return mapStoreError(err, "Like", postID)
	}
	observability.LikeToggles.WithLabelValues("unliked").Inc()
	return nil
}
