package store

import (
	"context"
	"errors"
	"time"

	"github.com/motleyton/tgbot-hp/internal/domain"
)

var (
	// ErrDuplicateFriend reports an insert for an (owner, name) pair that
	// already exists. Recovered by callers, never fatal.
	ErrDuplicateFriend = errors.New("friend already registered")

	// ErrFriendNotFound reports a point lookup for an id that does not exist.
	ErrFriendNotFound = errors.New("friend not found")
)

// Repo defines storage operations for birthday records.
type Repo interface {
	// AddFriend inserts a record and returns its assigned id.
	// Returns ErrDuplicateFriend when (ownerID, name) already exists.
	AddFriend(ctx context.Context, ownerID int64, name string, birthday time.Time) (int64, error)
	// BirthdaysOn returns every record whose birthday matches the given
	// month-day, regardless of stored year.
	BirthdaysOn(ctx context.Context, md domain.MonthDay) ([]domain.Friend, error)
	// GetFriend returns the record with the given id, or ErrFriendNotFound.
	GetFriend(ctx context.Context, id int64) (*domain.Friend, error)
	Close() error
}
