package model

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus is the lifecycle state of a friend request.
// A request starts pending and transitions exactly once, to accepted or
// rejected. Both are terminal.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusRejected RequestStatus = "rejected"
)

// RequestKey identifies a friend request: the ordered endpoint pair plus
// the send timestamp, so historical requests between the same two users
// stay distinguishable.
type RequestKey struct {
	FromID    uuid.UUID
	ToID      uuid.UUID
	CreatedAt time.Time
}

// FriendRequest is a directed edge from the requesting user to the
// requested one.
type FriendRequest struct {
	FromID    uuid.UUID     `gorm:"primaryKey;type:char(36)" json:"from_id"`
	ToID      uuid.UUID     `gorm:"primaryKey;type:char(36)" json:"to_id"`
	CreatedAt time.Time     `gorm:"primaryKey" json:"created_at"`
	Status    RequestStatus `gorm:"size:16;not null;index" json:"status"`
}

// NewFriendRequest creates a pending request from one user to another.
// The timestamp is UTC truncated to milliseconds so the key survives a
// round trip through storage as an equal Go value.
func NewFriendRequest(from, to uuid.UUID) *FriendRequest {
	return &FriendRequest{
		FromID:    from,
		ToID:      to,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		Status:    StatusPending,
	}
}

// Key returns the identity triple of the request.
func (r *FriendRequest) Key() RequestKey {
	return RequestKey{FromID: r.FromID, ToID: r.ToID, CreatedAt: r.CreatedAt}
}

// Resolved returns a copy of the request with the given terminal status.
// The identity triple is unchanged, so the copy replaces the original in
// storage.
func (r *FriendRequest) Resolved(status RequestStatus) *FriendRequest {
	return &FriendRequest{FromID: r.FromID, ToID: r.ToID, CreatedAt: r.CreatedAt, Status: status}
}
