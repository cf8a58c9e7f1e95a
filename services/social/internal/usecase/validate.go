package usecase

import (
	"errors"

	"clipstream/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// validID reports whether id parses as a UUID. Path ids are rejected
// here before they reach the store, where every id column is uuid and
// a malformed value would fail at the driver instead.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(message)
	}
	return apperr.Internal(message, err)
}
