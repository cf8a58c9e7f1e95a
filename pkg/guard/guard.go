package guard

import "clipstream/pkg/apperr"

// RequireOwner rejects any mutation of an owned entity by a non-owner.
// Applied before every update or delete of videos, comments and tweets.
func RequireOwner(ownerID, actorID string) error {
	if actorID == "" {
		return apperr.Unauthenticated("User not authenticated")
	}
	if ownerID != actorID {
		return apperr.Forbidden("You do not own this resource")
	}
	return nil
}
