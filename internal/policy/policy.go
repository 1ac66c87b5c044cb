// Package policy centralizes access-control decisions for posts, messages,
// conversations, follows, and likes. Every function is a pure decision over
// facts the caller already holds; the policy performs no I/O, and callers
// run the mutation only after a positive decision.
package policy

import (
	"murmur/internal/models"
)

// CanModify reports whether the actor may update or delete a resource
// owned by ownerID. Ownership is the only grant; there is no admin bypass
// in this core.
func CanModify(actorID, ownerID uint) bool {
	return actorID != 0 && actorID == ownerID
}

// CanViewConversation reports whether the actor is a participant of the
// conversation. Non-participants may not read, write, or delete anything
// inside it.
func CanViewConversation(actorID uint, conv *models.Conversation) bool {
	if conv == nil {
		return false
	}
	return actorID != 0 && conv.HasParticipant(actorID)
}

// CheckFollow decides whether the actor may create a follow edge to
// targetID. alreadyFollowing is the caller-supplied existence fact.
func CheckFollow(actorID, targetID uint, alreadyFollowing bool) error {
	if actorID == 0 {
		return models.NewUnauthorizedError("Actor identity required")
	}
	if actorID == targetID {
		return models.NewValidationError("Users cannot follow themselves")
	}
	if alreadyFollowing {
		return models.NewConflictError("Follow relationship already exists")
	}
	return nil
}

// CheckLike decides whether the actor may like the post. alreadyLiked is
// the caller-supplied existence fact for the (post, actor) like row.
func CheckLike(actorID, postID uint, alreadyLiked bool) error {
	if actorID == 0 {
		return models.NewUnauthorizedError("Actor identity required")
	}
	if alreadyLiked {
		return models.NewConflictError("Post already liked")
	}
	return nil
}
