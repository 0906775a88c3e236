// Package event carries the domain events published after every successful
// mutation and the synchronous bus that fans them out to observers.
package event

import "socialnet/model"

// Event is an immutable domain event. Name identifies the event kind for
// serialization and logging.
type Event interface {
	Name() string
}

// UserAdded is published after a user is created.
type UserAdded struct {
	New model.User
}

func (UserAdded) Name() string { return "user_added" }

// UserUpdated is published after a user's profile changes.
type UserUpdated struct {
	Old model.User
	New model.User
}

func (UserUpdated) Name() string { return "user_updated" }

// UserRemoved is published once after the user row is deleted, before any
// cascade outcome is known.
type UserRemoved struct {
	Old model.User
}

func (UserRemoved) Name() string { return "user_removed" }

// FriendshipAdded is published after an edge is created.
type FriendshipAdded struct {
	New model.Friendship
}

func (FriendshipAdded) Name() string { return "friendship_added" }

// FriendshipRemoved is published after an edge is deleted.
type FriendshipRemoved struct {
	Old model.Friendship
}

func (FriendshipRemoved) Name() string { return "friendship_removed" }

// FriendRequestAdded is published after a pending request is created.
type FriendRequestAdded struct {
	New model.FriendRequest
}

func (FriendRequestAdded) Name() string { return "friend_request_added" }

// FriendRequestRemoved is published when a request is resolved (accepted
// or rejected); Old carries the request as it was before resolution.
type FriendRequestRemoved struct {
	Old model.FriendRequest
}

func (FriendRequestRemoved) Name() string { return "friend_request_removed" }

// MessageSent is published after a message is stored. Reply distinguishes
// the reply variant from a plain message.
type MessageSent struct {
	Message model.Message
	Reply   bool
}

func (MessageSent) Name() string { return "message_sent" }
