package social

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialnet/event"
)

func TestAddUser(t *testing.T) {
	env := newTestEnv(t)
	sink := &eventSink{}
	env.bus.Subscribe(sink)

	u, err := env.svc.AddUser("Alice", "Smith", "alice@mail.com", "pass1234")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.NotEqual(t, "pass1234", u.PasswordHash)
	assert.Equal(t, []string{"user_added"}, sink.names())
}

func TestAddUser_ValidationReportsEveryViolation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.AddUser("al", "Smith", "not-an-email", "pass1234")

	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "first name")
	assert.Contains(t, err.Error(), "email")
}

func TestAddUser_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "Alice", "Smith", "alice@mail.com")
	sink := &eventSink{}
	env.bus.Subscribe(sink)

	_, err := env.svc.AddUser("Bob", "Jones", "alice@mail.com", "pass1234")

	assert.True(t, IsDuplicate(err))
	// The failed call publishes nothing.
	assert.Empty(t, sink.events)
}

func TestAddUser_FanOutToEveryObserverOnce(t *testing.T) {
	env := newTestEnv(t)
	a := &eventSink{}
	b := &eventSink{}
	env.bus.Subscribe(a)
	env.bus.Subscribe(b)

	env.addUser(t, "Alice", "Smith", "alice@mail.com")

	require.Len(t, a.events, 1)
	require.Len(t, b.events, 1)
	added, ok := a.events[0].(event.UserAdded)
	require.True(t, ok)
	assert.Equal(t, "alice@mail.com", added.New.Email)
}

func TestGetUser(t *testing.T) {
	env := newTestEnv(t)
	u := env.addUser(t, "Alice", "Smith", "alice@mail.com")

	got, err := env.svc.GetUser(u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = env.svc.GetUser(uuid.New())
	assert.True(t, IsNotFound(err))
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(t)
	u := env.addUser(t, "Alice", "Smith", "alice@mail.com")
	sink := &eventSink{}
	env.bus.Subscribe(sink)

	changed := *u
	changed.LastName = "Jones"
	old, err := env.svc.UpdateUser(&changed)
	require.NoError(t, err)

	assert.Equal(t, "Smith", old.LastName)
	require.Len(t, sink.events, 1)
	updated, ok := sink.events[0].(event.UserUpdated)
	require.True(t, ok)
	assert.Equal(t, "Smith", updated.Old.LastName)
	assert.Equal(t, "Jones", updated.New.LastName)
}

func TestUpdateUser_Unknown(t *testing.T) {
	env := newTestEnv(t)

	ghost := env.addUser(t, "Alice", "Smith", "alice@mail.com")
	_, err := env.svc.RemoveUser(ghost.ID)
	require.NoError(t, err)

	_, err = env.svc.UpdateUser(ghost)
	assert.True(t, IsNotFound(err))
}

func TestUpdateUser_Invalid(t *testing.T) {
	env := newTestEnv(t)
	u := env.addUser(t, "Alice", "Smith", "alice@mail.com")

	u.FirstName = "x"
	_, err := env.svc.UpdateUser(u)
	assert.True(t, IsValidation(err))
}

func TestRemoveUser_CascadesFriendships(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "Alice", "Smith", "alice@mail.com")
	bob := env.addUser(t, "Bob", "Jones", "bob@mail.com")
	carol := env.addUser(t, "Carol", "White", "carol@mail.com")
	_, err := env.svc.AddFriendship(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = env.svc.AddFriendship(carol.ID, alice.ID)
	require.NoError(t, err)

	sink := &eventSink{}
	env.bus.Subscribe(sink)
	removed, err := env.svc.RemoveUser(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, removed.ID)

	// Every edge incident to the user is gone, in either orientation.
	edges, err := env.svc.Friendships()
	require.NoError(t, err)
	assert.Empty(t, edges)

	// Exactly one removal event, regardless of cascade fan-out.
	assert.Equal(t, []string{"user_removed"}, sink.names())
}

func TestRemoveUser_Unknown(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.RemoveUser(uuid.New())
	assert.True(t, IsNotFound(err))
}

func TestListUsers_And_Page(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "Alice", "Smith", "a@mail.com")
	env.addUser(t, "Bob", "Jones", "b@mail.com")
	env.addUser(t, "Carol", "White", "c@mail.com")

	all, err := env.svc.ListUsers()
	require.NoError(t, err)
	assert.Len(t, all, 3)

	page, err := env.svc.UsersPage(0, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)
}

func TestUsersWithLastNameContaining(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "Alice", "Smithson", "a@mail.com")
	env.addUser(t, "Bob", "Jones", "b@mail.com")

	got, err := env.svc.UsersWithLastNameContaining("mith")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Smithson", got[0].LastName)
}

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	u := env.addUser(t, "Alice", "Smith", "alice@mail.com")

	got, err := env.svc.Authenticate("alice@mail.com", "pass1234")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestAuthenticate_FailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "Alice", "Smith", "alice@mail.com")

	_, wrongPass := env.svc.Authenticate("alice@mail.com", "wrong")
	_, unknownEmail := env.svc.Authenticate("nobody@mail.com", "pass1234")

	require.Error(t, wrongPass)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPass.Error(), unknownEmail.Error())
	assert.Equal(t, KindInvalidInput, ErrKind(wrongPass))
	assert.Equal(t, KindInvalidInput, ErrKind(unknownEmail))
}
