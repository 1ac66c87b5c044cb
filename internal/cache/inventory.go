package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix          = "user:%d"
	PostKeyPrefix          = "post:%d"
	RepliesKeyPrefix       = "post:%d:replies"
	FeedKeyPrefix          = "feed:%d:limit:%d"
	ConversationKeyPrefix  = "conversation:%d"
	ConversationListPrefix = "user:%d:conversations"
)

const (
	UserTTL         = 5 * time.Minute
	PostTTL         = 30 * time.Minute
	RepliesTTL      = 5 * time.Minute
	FeedTTL         = 2 * time.Minute
	ConversationTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func RepliesKey(postID uint) string {
	return fmt.Sprintf(RepliesKeyPrefix, postID)
}

// FeedKey is per-user AND per-limit: a short first page must never be
// served to a request asking for a longer one.
func FeedKey(userID uint, limit int) string {
	return fmt.Sprintf(FeedKeyPrefix, userID, limit)
}

func ConversationKey(conversationID uint) string {
	return fmt.Sprintf(ConversationKeyPrefix, conversationID)
}

func ConversationListKey(userID uint) string {
	return fmt.Sprintf(ConversationListPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	Invalidate(ctx, RepliesKey(postID))
}

func InvalidateConversation(ctx context.Context, conversationID uint) {
	Invalidate(ctx, ConversationKey(conversationID))
}

func InvalidateConversationList(ctx context.Context, userID uint) {
	Invalidate(ctx, ConversationListKey(userID))
}
