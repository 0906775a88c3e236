package social

import (
	"github.com/google/uuid"
	"socialnet/event"
	"socialnet/model"
)

// FriendsOf scans all friendship edges and resolves the users on the other
// side of every edge incident to id.
func (s *Service) FriendsOf(id uuid.UUID) ([]model.User, error) {
	edges, err := s.friends.GetAll()
	if err != nil {
		return nil, storageError("could not list friendships", err)
	}
	friends := make([]model.User, 0)
	for _, edge := range edges {
		other, ok := edge.Other(id)
		if !ok {
			continue
		}
		friend, err := s.users.GetOne(other)
		if err != nil {
			return nil, storageError("could not resolve friend", err)
		}
		if friend != nil {
			friends = append(friends, *friend)
		}
	}
	return friends, nil
}

// Friendships returns a snapshot of all edges.
func (s *Service) Friendships() ([]model.Friendship, error) {
	edges, err := s.friends.GetAll()
	if err != nil {
		return nil, storageError("could not list friendships", err)
	}
	return edges, nil
}

// AddFriendship creates an edge between a and b. The duplicate check
// covers both orientations of the pair.
func (s *Service) AddFriendship(a, b uuid.UUID) (*model.Friendship, error) {
	friendship := model.NewFriendship(a, b)
	if err := ValidateFriendship(friendship); err != nil {
		return nil, err
	}

	key := friendship.Key()
	for _, k := range []model.Pair{key, key.Reversed()} {
		existing, err := s.friends.GetOne(k)
		if err != nil {
			return nil, storageError("could not check existing friendship", err)
		}
		if existing != nil {
			return nil, duplicate("the friendship already exists")
		}
	}

	existing, err := s.friends.Save(friendship)
	if err != nil {
		return nil, storageError("could not add friendship", err)
	}
	if existing != nil {
		return nil, duplicate("the friendship already exists")
	}

	s.bus.Publish(event.FriendshipAdded{New: *friendship})
	return friendship, nil
}

// RemoveFriendship deletes the edge between a and b, looking it up in both
// orientations, and returns it.
func (s *Service) RemoveFriendship(a, b uuid.UUID) (*model.Friendship, error) {
	key := model.Pair{UserID1: a, UserID2: b}
	found, err := s.friends.GetOne(key)
	if err != nil {
		return nil, storageError("could not look up friendship", err)
	}
	if found == nil {
		found, err = s.friends.GetOne(key.Reversed())
		if err != nil {
			return nil, storageError("could not look up friendship", err)
		}
	}
	if found == nil {
		return nil, notFound("no friendship between %s and %s", a, b)
	}

	if _, err := s.friends.Delete(found.Key()); err != nil {
		return nil, storageError("could not remove friendship", err)
	}

	s.bus.Publish(event.FriendshipRemoved{Old: *found})
	return found, nil
}

// FriendsOfPage returns one page of the friends of a user.
func (s *Service) FriendsOfPage(id uuid.UUID, page, size int) ([]model.User, error) {
	edges, err := s.friends.OfUserPage(id, page, size)
	if err != nil {
		return nil, storageError("could not page friendships", err)
	}
	friends := make([]model.User, 0, len(edges))
	for _, edge := range edges {
		other, ok := edge.Other(id)
		if !ok {
			continue
		}
		friend, err := s.users.GetOne(other)
		if err != nil {
			return nil, storageError("could not resolve friend", err)
		}
		if friend != nil {
			friends = append(friends, *friend)
		}
	}
	return friends, nil
}
