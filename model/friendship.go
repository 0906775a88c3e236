package model

import (
	"time"

	"github.com/google/uuid"
)

// Pair is the stored key of a friendship edge. The order of the two ids is
// whatever the writer chose; callers that need symmetric lookup query both
// orientations.
type Pair struct {
	UserID1 uuid.UUID
	UserID2 uuid.UUID
}

// Reversed returns the same edge with the endpoints swapped.
func (p Pair) Reversed() Pair {
	return Pair{UserID1: p.UserID2, UserID2: p.UserID1}
}

// Friendship is an undirected edge between two users.
type Friendship struct {
	UserID1   uuid.UUID `gorm:"column:user_id_1;primaryKey;type:char(36)" json:"user_id_1"`
	UserID2   uuid.UUID `gorm:"column:user_id_2;primaryKey;type:char(36)" json:"user_id_2"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFriendship creates an edge between a and b timestamped now.
func NewFriendship(a, b uuid.UUID) *Friendship {
	return &Friendship{UserID1: a, UserID2: b, CreatedAt: time.Now().Truncate(time.Millisecond)}
}

// Key returns the stored edge key.
func (f *Friendship) Key() Pair {
	return Pair{UserID1: f.UserID1, UserID2: f.UserID2}
}

// Other returns the endpoint that is not id. ok is false when id is not an
// endpoint of the edge.
func (f *Friendship) Other(id uuid.UUID) (uuid.UUID, bool) {
	switch id {
	case f.UserID1:
		return f.UserID2, true
	case f.UserID2:
		return f.UserID1, true
	}
	return uuid.Nil, false
}

// Involves reports whether id is one of the edge endpoints.
func (f *Friendship) Involves(id uuid.UUID) bool {
	return f.UserID1 == id || f.UserID2 == id
}
