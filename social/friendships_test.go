package social

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialnet/model"
)

func TestAddFriendship_IsSymmetric(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "Alice", "Smith", "alice@mail.com")
	bob := env.addUser(t, "Bob", "Jones", "bob@mail.com")
	sink := &eventSink{}
	env.bus.Subscribe(sink)

	f, err := env.svc.AddFriendship(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, f.Involves(alice.ID))
	assert.True(t, f.Involves(bob.ID))
	assert.Equal(t, []string{"friendship_added"}, sink.names())

	// One edge, visible from both endpoints.
	friendsOfAlice, err := env.svc.FriendsOf(alice.ID)
	require.NoError(t, err)
	require.Len(t, friendsOfAlice, 1)
	assert.Equal(t, bob.ID, friendsOfAlice[0].ID)

	friendsOfBob, err := env.svc.FriendsOf(bob.ID)
	require.NoError(t, err)
	require.Len(t, friendsOfBob, 1)
	assert.Equal(t, alice.ID, friendsOfBob[0].ID)
}

func TestAddFriendship_DuplicateEitherOrientation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "Alice", "Smith", "alice@mail.com")
	bob := env.addUser(t, "Bob", "Jones", "bob@mail.com")
	_, err := env.svc.AddFriendship(alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = env.svc.AddFriendship(alice.ID, bob.ID)
	assert.True(t, IsDuplicate(err))

	_, err = env.svc.AddFriendship(bob.ID, alice.ID)
	assert.True(t, IsDuplicate(err))
}

func TestAddFriendship_NoSelfLoop(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "Alice", "Smith", "alice@mail.com")

	_, err := env.svc.AddFriendship(alice.ID, alice.ID)
	assert.True(t, IsValidation(err))
}

func TestAddFriendship_NilEndpoint(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "Alice", "Smith", "alice@mail.com")

	_, err := env.svc.AddFriendship(alice.ID, uuid.Nil)
	assert.True(t, IsValidation(err))
}

func TestRemoveFriendship_EitherOrientation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "Alice", "Smith", "alice@mail.com")
	bob := env.addUser(t, "Bob", "Jones", "bob@mail.com")
	_, err := env.svc.AddFriendship(alice.ID, bob.ID)
	require.NoError(t, err)
	sink := &eventSink{}
	env.bus.Subscribe(sink)

	// Removal with the endpoints flipped still finds the edge.
	removed, err := env.svc.RemoveFriendship(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, removed.Involves(alice.ID))
	assert.Equal(t, []string{"friendship_removed"}, sink.names())

	friends, err := env.svc.FriendsOf(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestRemoveFriendship_Unknown(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "Alice", "Smith", "alice@mail.com")
	bob := env.addUser(t, "Bob", "Jones", "bob@mail.com")

	_, err := env.svc.RemoveFriendship(alice.ID, bob.ID)
	assert.True(t, IsNotFound(err))
}

func TestFriendsOfPage(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "Alice", "Smith", "alice@mail.com")
	for _, email := range []string{"b@mail.com", "c@mail.com", "d@mail.com"} {
		friend := env.addUser(t, "Bob", "Jones", email)
		_, err := env.svc.AddFriendship(alice.ID, friend.ID)
		require.NoError(t, err)
	}

	page, err := env.svc.FriendsOfPage(alice.ID, 0, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	page, err = env.svc.FriendsOfPage(alice.ID, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestValidateFriendship(t *testing.T) {
	assert.Error(t, ValidateFriendship(nil))

	id := uuid.New()
	assert.Error(t, ValidateFriendship(&model.Friendship{UserID1: id, UserID2: id}))
	assert.Error(t, ValidateFriendship(&model.Friendship{UserID1: id}))
	assert.NoError(t, ValidateFriendship(&model.Friendship{UserID1: id, UserID2: uuid.New()}))
}
