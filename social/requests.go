package social

import (
	"github.com/google/uuid"
	"socialnet/event"
	"socialnet/model"
)

// SendFriendRequest creates a pending request from one user to another.
// Nil endpoints, self-requests, existing friendships and an existing
// pending request for the same ordered pair are all rejected.
func (s *Service) SendFriendRequest(from, to *model.User) (*model.FriendRequest, error) {
	if from == nil || to == nil {
		return nil, invalidInput("friend request endpoints cannot be nil")
	}
	if from.ID == to.ID {
		return nil, invalidInput("cannot send a friend request to yourself")
	}

	key := model.Pair{UserID1: from.ID, UserID2: to.ID}
	for _, k := range []model.Pair{key, key.Reversed()} {
		existing, err := s.friends.GetOne(k)
		if err != nil {
			return nil, storageError("could not check existing friendship", err)
		}
		if existing != nil {
			return nil, duplicate("the users are already friends")
		}
	}

	pending, err := s.requests.HasPending(from.ID, to.ID)
	if err != nil {
		return nil, storageError("could not check pending requests", err)
	}
	if pending {
		return nil, duplicate("there is already a pending friend request between the two users")
	}

	request := model.NewFriendRequest(from.ID, to.ID)
	if _, err := s.requests.Save(request); err != nil {
		return nil, storageError("could not send friend request", err)
	}

	s.bus.Publish(event.FriendRequestAdded{New: *request})
	return request, nil
}

// AcceptFriendRequest resolves a pending request to accepted and creates
// the friendship. The resolution and the friendship creation are two
// independent writes; a failure of the second is reported, not rolled
// back. A nil request is a no-op.
func (s *Service) AcceptFriendRequest(request *model.FriendRequest) error {
	if request == nil {
		return nil
	}
	if err := s.resolveRequest(request, model.StatusAccepted); err != nil {
		return err
	}
	if _, err := s.AddFriendship(request.FromID, request.ToID); err != nil {
		return err
	}
	return nil
}

// RejectFriendRequest resolves a pending request to rejected. The state is
// terminal; no friendship is created. A nil request is a no-op.
func (s *Service) RejectFriendRequest(request *model.FriendRequest) error {
	if request == nil {
		return nil
	}
	return s.resolveRequest(request, model.StatusRejected)
}

// resolveRequest moves a pending request into a terminal status and
// publishes its removal from the pending set.
func (s *Service) resolveRequest(request *model.FriendRequest, status model.RequestStatus) error {
	if request.Status != model.StatusPending {
		return invalidInput("friend request is already %s", request.Status)
	}
	old, err := s.requests.Update(request.Resolved(status))
	if err != nil {
		return storageError("could not resolve friend request", err)
	}
	if old == nil {
		return notFound("friend request not found")
	}
	s.bus.Publish(event.FriendRequestRemoved{Old: *request})
	return nil
}

// PendingRequestsTo returns the pending requests addressed to userID.
func (s *Service) PendingRequestsTo(userID uuid.UUID) ([]model.FriendRequest, error) {
	requests, err := s.requests.PendingTo(userID)
	if err != nil {
		return nil, storageError("could not list pending requests", err)
	}
	return requests, nil
}
