// Package repository defines the storage contract for the social network
// entities and provides gorm-backed and in-memory implementations.
package repository

import (
	"errors"

	"github.com/google/uuid"
	"socialnet/model"
)

// ErrInvalidArgument is returned when a caller passes a nil entity or a
// zero-valued id.
var ErrInvalidArgument = errors.New("repository: invalid argument")

// Repository is the CRUD contract every entity store satisfies.
//
// Save returns the pre-existing entity when the natural key is already
// occupied and nil on success. Delete returns the deleted entity, nil when
// the id is unknown. Update returns the previous value, nil when the target
// does not exist. GetOne returns nil without error when the id is unknown.
type Repository[ID comparable, E any] interface {
	IsEmpty() (bool, error)
	Size() (int, error)
	GetAll() ([]E, error)
	GetOne(id ID) (*E, error)
	Save(e *E) (*E, error)
	Delete(id ID) (*E, error)
	Update(e *E) (*E, error)
}

// Pageable is the pagination extension. A page size of zero or less is the
// "unbounded" sentinel: GetItemsOnPage returns everything.
type Pageable[E any] interface {
	SetPage(page int)
	SetPageSize(size int)
	GetItemsOnPage() ([]E, error)
}

// UserRepository stores users keyed by id, with email as the natural key.
type UserRepository interface {
	Repository[uuid.UUID, model.User]
	Pageable[model.User]
	GetByEmail(email string) (*model.User, error)
	LastNameContains(s string) ([]model.User, error)
}

// FriendshipRepository stores edges keyed by the ordered endpoint pair
// exactly as written; symmetric lookup is the caller's concern.
type FriendshipRepository interface {
	Repository[model.Pair, model.Friendship]
	Pageable[model.Friendship]
	OfUser(id uuid.UUID) ([]model.Friendship, error)
	OfUserPage(id uuid.UUID, page, size int) ([]model.Friendship, error)
}

// FriendRequestRepository stores directed requests keyed by
// (from, to, timestamp).
type FriendRequestRepository interface {
	Repository[model.RequestKey, model.FriendRequest]
	PendingTo(userID uuid.UUID) ([]model.FriendRequest, error)
	HasPending(from, to uuid.UUID) (bool, error)
}

// MessageRepository stores messages keyed by id.
type MessageRepository interface {
	Repository[uuid.UUID, model.Message]
	Between(a, b uuid.UUID) ([]model.Message, error)
}
