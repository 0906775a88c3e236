package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialnet/model"
)

func newUserMemory() *Memory[uuid.UUID, model.User] {
	return NewMemory[uuid.UUID, model.User](func(u *model.User) uuid.UUID { return u.ID })
}

func TestMemory_SaveAndGet(t *testing.T) {
	repo := newUserMemory()
	u := model.NewUser("Alice", "Smith", "alice@mail.com", "hash")

	existing, err := repo.Save(u)
	require.NoError(t, err)
	assert.Nil(t, existing)

	got, err := repo.GetOne(u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.Email, got.Email)
}

func TestMemory_SaveExistingReturnsStored(t *testing.T) {
	repo := newUserMemory()
	u := model.NewUser("Alice", "Smith", "alice@mail.com", "hash")
	_, err := repo.Save(u)
	require.NoError(t, err)

	again := *u
	again.LastName = "Jones"
	existing, err := repo.Save(&again)
	require.NoError(t, err)

	// The stored entity wins; the second save changes nothing.
	require.NotNil(t, existing)
	assert.Equal(t, "Smith", existing.LastName)
	got, _ := repo.GetOne(u.ID)
	assert.Equal(t, "Smith", got.LastName)
}

func TestMemory_GetOneUnknownIsNilWithoutError(t *testing.T) {
	repo := newUserMemory()

	got, err := repo.GetOne(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemory_InvalidArguments(t *testing.T) {
	repo := newUserMemory()

	_, err := repo.GetOne(uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = repo.Delete(uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = repo.Save(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = repo.Update(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMemory_Delete(t *testing.T) {
	repo := newUserMemory()
	u := model.NewUser("Alice", "Smith", "alice@mail.com", "hash")
	_, err := repo.Save(u)
	require.NoError(t, err)

	deleted, err := repo.Delete(u.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, u.Email, deleted.Email)

	// Deleting again is nil, nil.
	deleted, err = repo.Delete(u.ID)
	require.NoError(t, err)
	assert.Nil(t, deleted)

	empty, err := repo.IsEmpty()
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestMemory_Update(t *testing.T) {
	repo := newUserMemory()
	u := model.NewUser("Alice", "Smith", "alice@mail.com", "hash")
	_, err := repo.Save(u)
	require.NoError(t, err)

	changed := *u
	changed.LastName = "Jones"
	old, err := repo.Update(&changed)
	require.NoError(t, err)
	require.NotNil(t, old)
	assert.Equal(t, "Smith", old.LastName)

	got, _ := repo.GetOne(u.ID)
	assert.Equal(t, "Jones", got.LastName)
}

func TestMemory_UpdateUnknownIsNilWithoutError(t *testing.T) {
	repo := newUserMemory()

	old, err := repo.Update(model.NewUser("Alice", "Smith", "alice@mail.com", "hash"))
	require.NoError(t, err)
	assert.Nil(t, old)

	empty, _ := repo.IsEmpty()
	assert.True(t, empty)
}

func TestMemory_GetAllInsertionOrder(t *testing.T) {
	repo := newUserMemory()
	emails := []string{"a@mail.com", "b@mail.com", "c@mail.com"}
	for _, e := range emails {
		_, err := repo.Save(model.NewUser("Alice", "Smith", e, "hash"))
		require.NoError(t, err)
	}

	all, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, e := range emails {
		assert.Equal(t, e, all[i].Email)
	}
}

func TestMemory_Size(t *testing.T) {
	repo := newUserMemory()
	n, err := repo.Size()
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = repo.Save(model.NewUser("Alice", "Smith", "a@mail.com", "hash"))
	require.NoError(t, err)
	n, _ = repo.Size()
	assert.Equal(t, 1, n)
}

func TestMemory_Pagination(t *testing.T) {
	repo := newUserMemory()
	for _, e := range []string{"a@mail.com", "b@mail.com", "c@mail.com", "d@mail.com", "e@mail.com"} {
		_, err := repo.Save(model.NewUser("Alice", "Smith", e, "hash"))
		require.NoError(t, err)
	}

	repo.SetPageSize(2)
	repo.SetPage(0)
	page, err := repo.GetItemsOnPage()
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "a@mail.com", page[0].Email)

	repo.SetPage(2)
	page, err = repo.GetItemsOnPage()
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "e@mail.com", page[0].Email)

	// Past the end.
	repo.SetPage(3)
	page, err = repo.GetItemsOnPage()
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestMemory_NegativePageIsFirstPage(t *testing.T) {
	repo := newUserMemory()
	for _, e := range []string{"a@mail.com", "b@mail.com", "c@mail.com"} {
		_, err := repo.Save(model.NewUser("Alice", "Smith", e, "hash"))
		require.NoError(t, err)
	}

	repo.SetPageSize(2)
	repo.SetPage(-3)
	page, err := repo.GetItemsOnPage()
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "a@mail.com", page[0].Email)
}

func TestMemory_PageSizeZeroIsUnbounded(t *testing.T) {
	repo := newUserMemory()
	for _, e := range []string{"a@mail.com", "b@mail.com"} {
		_, err := repo.Save(model.NewUser("Alice", "Smith", e, "hash"))
		require.NoError(t, err)
	}

	repo.SetPageSize(0)
	repo.SetPage(5)
	page, err := repo.GetItemsOnPage()
	require.NoError(t, err)
	assert.Len(t, page, 2)
}

func TestMemory_CompositeKey(t *testing.T) {
	repo := NewMemory[model.Pair, model.Friendship](func(f *model.Friendship) model.Pair { return f.Key() })
	a, b := uuid.New(), uuid.New()
	f := model.NewFriendship(a, b)

	_, err := repo.Save(f)
	require.NoError(t, err)

	got, err := repo.GetOne(f.Key())
	require.NoError(t, err)
	require.NotNil(t, got)

	// The reversed orientation is a different key.
	got, err = repo.GetOne(f.Key().Reversed())
	require.NoError(t, err)
	assert.Nil(t, got)
}
