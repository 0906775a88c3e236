package social

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"socialnet/event"
	"socialnet/model"
)

// AddUser validates and persists a new user, hashing the given plaintext
// credential. An email already in use is a duplicate error.
func (s *Service) AddUser(firstName, lastName, email, password string) (*model.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, storageError("could not hash credential", err)
	}
	user := model.NewUser(firstName, lastName, email, hash)
	if err := ValidateUser(user); err != nil {
		return nil, err
	}

	existing, err := s.users.Save(user)
	if err != nil {
		return nil, storageError("could not add user", err)
	}
	if existing != nil {
		return nil, duplicate("a user with email %s already exists", email)
	}

	s.bus.Publish(event.UserAdded{New: *user})
	return user, nil
}

// RemoveUser deletes the user and then, best-effort, every friendship edge
// incident to it. The UserRemoved event is published exactly once after
// the user row delete succeeds, regardless of cascade outcome.
func (s *Service) RemoveUser(id uuid.UUID) (*model.User, error) {
	deleted, err := s.users.Delete(id)
	if err != nil {
		return nil, storageError("could not remove user", err)
	}
	if deleted == nil {
		return nil, notFound("no user with id %s", id)
	}

	edges, err := s.friends.OfUser(id)
	if err != nil {
		s.logger.Warn("cascade: could not list friendships of removed user",
			zap.String("user_id", id.String()), zap.Error(err))
	}
	for _, edge := range edges {
		key := edge.Key()
		if _, err := s.friends.Delete(key); err != nil {
			// Also try the reversed orientation before giving up on
			// this edge.
			if _, rerr := s.friends.Delete(key.Reversed()); rerr != nil {
				s.logger.Warn("cascade: could not delete friendship",
					zap.String("user_id_1", edge.UserID1.String()),
					zap.String("user_id_2", edge.UserID2.String()),
					zap.Error(err))
			}
		}
	}

	s.bus.Publish(event.UserRemoved{Old: *deleted})
	return deleted, nil
}

// UpdateUser validates and persists the new user state and returns the
// prior value.
func (s *Service) UpdateUser(u *model.User) (*model.User, error) {
	if err := ValidateUser(u); err != nil {
		return nil, err
	}
	old, err := s.users.Update(u)
	if err != nil {
		return nil, storageError("could not update user", err)
	}
	if old == nil {
		return nil, notFound("no user with id %s to update", u.ID)
	}
	s.bus.Publish(event.UserUpdated{Old: *old, New: *u})
	return old, nil
}

// GetUser returns the user with the given id.
func (s *Service) GetUser(id uuid.UUID) (*model.User, error) {
	u, err := s.users.GetOne(id)
	if err != nil {
		return nil, storageError("could not get user", err)
	}
	if u == nil {
		return nil, notFound("no user with id %s", id)
	}
	return u, nil
}

// ListUsers returns a snapshot of all users.
func (s *Service) ListUsers() ([]model.User, error) {
	users, err := s.users.GetAll()
	if err != nil {
		return nil, storageError("could not list users", err)
	}
	return users, nil
}

// UsersPage returns one page of users.
func (s *Service) UsersPage(page, size int) ([]model.User, error) {
	s.users.SetPage(page)
	s.users.SetPageSize(size)
	users, err := s.users.GetItemsOnPage()
	if err != nil {
		return nil, storageError("could not page users", err)
	}
	return users, nil
}

// UsersWithLastNameContaining returns the users whose last name contains
// the given string.
func (s *Service) UsersWithLastNameContaining(sub string) ([]model.User, error) {
	users, err := s.users.LastNameContains(sub)
	if err != nil {
		return nil, storageError("could not search users", err)
	}
	return users, nil
}

// Authenticate checks an email/credential pair and returns the matching
// user. Unknown email and wrong credential are indistinguishable to the
// caller.
func (s *Service) Authenticate(email, password string) (*model.User, error) {
	u, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, storageError("could not look up user", err)
	}
	if u == nil || !s.hasher.Verify(password, u.PasswordHash) {
		return nil, invalidInput("invalid credentials")
	}
	return u, nil
}
