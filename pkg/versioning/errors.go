package versioning

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrInvalidState means the target entity lacks a required precondition,
	// e.g. versioning a record that was never persisted.
	ErrInvalidState = errors.New("versioning: invalid state")
	// ErrNotFound covers missing versions/comments and versions that do not
	// belong to the entity passed in.
	ErrNotFound        = errors.New("versioning: not found")
	ErrInvalidArgument = errors.New("versioning: invalid argument")
	// ErrConflict surfaces a uniqueness violation from the store. With the
	// ledger running inside a transaction this is a backstop, not a path
	// callers should ever hit.
	ErrConflict = errors.New("versioning: conflict")
)

func translateStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrConflict
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
