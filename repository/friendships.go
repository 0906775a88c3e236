package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"socialnet/model"
)

// Friendships is the gorm-backed FriendshipRepository. Edges are stored
// under the exact pair the writer chose; callers query both orientations
// for symmetric lookup.
type Friendships struct {
	db       *gorm.DB
	page     int
	pageSize int
}

// NewFriendships creates a Friendships repository over db.
func NewFriendships(db *gorm.DB) *Friendships {
	return &Friendships{db: db}
}

func (r *Friendships) IsEmpty() (bool, error) {
	n, err := r.Size()
	return n == 0, err
}

func (r *Friendships) Size() (int, error) {
	var n int64
	if err := r.db.Model(&model.Friendship{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("friendships: count: %w", err)
	}
	return int(n), nil
}

func (r *Friendships) GetAll() ([]model.Friendship, error) {
	var edges []model.Friendship
	if err := r.db.Order("created_at, user_id_1, user_id_2").Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("friendships: get all: %w", err)
	}
	return edges, nil
}

func (r *Friendships) GetOne(id model.Pair) (*model.Friendship, error) {
	if id.UserID1 == uuid.Nil || id.UserID2 == uuid.Nil {
		return nil, ErrInvalidArgument
	}
	var f model.Friendship
	err := r.db.First(&f, "user_id_1 = ? AND user_id_2 = ?", id.UserID1, id.UserID2).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("friendships: get: %w", err)
	}
	return &f, nil
}

func (r *Friendships) Save(f *model.Friendship) (*model.Friendship, error) {
	if f == nil {
		return nil, ErrInvalidArgument
	}
	existing, err := r.GetOne(f.Key())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	if err := r.db.Create(f).Error; err != nil {
		return nil, fmt.Errorf("friendships: save: %w", err)
	}
	return nil, nil
}

func (r *Friendships) Delete(id model.Pair) (*model.Friendship, error) {
	f, err := r.GetOne(id)
	if err != nil || f == nil {
		return nil, err
	}
	err = r.db.Delete(&model.Friendship{}, "user_id_1 = ? AND user_id_2 = ?", id.UserID1, id.UserID2).Error
	if err != nil {
		return nil, fmt.Errorf("friendships: delete: %w", err)
	}
	return f, nil
}

func (r *Friendships) Update(f *model.Friendship) (*model.Friendship, error) {
	if f == nil {
		return nil, ErrInvalidArgument
	}
	old, err := r.GetOne(f.Key())
	if err != nil || old == nil {
		return nil, err
	}
	err = r.db.Model(&model.Friendship{}).
		Where("user_id_1 = ? AND user_id_2 = ?", f.UserID1, f.UserID2).
		Update("created_at", f.CreatedAt).Error
	if err != nil {
		return nil, fmt.Errorf("friendships: update: %w", err)
	}
	return old, nil
}

// OfUser returns every edge incident to id, in either orientation.
func (r *Friendships) OfUser(id uuid.UUID) ([]model.Friendship, error) {
	var edges []model.Friendship
	err := r.db.Where("user_id_1 = ? OR user_id_2 = ?", id, id).
		Order("created_at, user_id_1, user_id_2").
		Find(&edges).Error
	if err != nil {
		return nil, fmt.Errorf("friendships: of user: %w", err)
	}
	return edges, nil
}

// OfUserPage returns one page of the edges incident to id.
func (r *Friendships) OfUserPage(id uuid.UUID, page, size int) ([]model.Friendship, error) {
	if size <= 0 {
		return r.OfUser(id)
	}
	var edges []model.Friendship
	err := r.db.Where("user_id_1 = ? OR user_id_2 = ?", id, id).
		Order("created_at, user_id_1, user_id_2").
		Offset(page * size).
		Limit(size).
		Find(&edges).Error
	if err != nil {
		return nil, fmt.Errorf("friendships: of user page: %w", err)
	}
	return edges, nil
}

func (r *Friendships) SetPage(page int)     { r.page = page }
func (r *Friendships) SetPageSize(size int) { r.pageSize = size }

func (r *Friendships) GetItemsOnPage() ([]model.Friendship, error) {
	if r.pageSize <= 0 {
		return r.GetAll()
	}
	var edges []model.Friendship
	err := r.db.Order("created_at, user_id_1, user_id_2").
		Offset(r.page * r.pageSize).
		Limit(r.pageSize).
		Find(&edges).Error
	if err != nil {
		return nil, fmt.Errorf("friendships: page: %w", err)
	}
	return edges, nil
}
