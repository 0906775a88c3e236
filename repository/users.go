package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"socialnet/model"
)

// Users is the gorm-backed UserRepository. Email is the natural key: Save
// reports the already-stored user when the address is taken.
type Users struct {
	db       *gorm.DB
	page     int
	pageSize int
}

// NewUsers creates a Users repository over db.
func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (r *Users) IsEmpty() (bool, error) {
	n, err := r.Size()
	return n == 0, err
}

func (r *Users) Size() (int, error) {
	var n int64
	if err := r.db.Model(&model.User{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("users: count: %w", err)
	}
	return int(n), nil
}

func (r *Users) GetAll() ([]model.User, error) {
	var users []model.User
	if err := r.db.Order("created_at, id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("users: get all: %w", err)
	}
	return users, nil
}

func (r *Users) GetOne(id uuid.UUID) (*model.User, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidArgument
	}
	var u model.User
	err := r.db.First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("users: get: %w", err)
	}
	return &u, nil
}

func (r *Users) Save(u *model.User) (*model.User, error) {
	if u == nil {
		return nil, ErrInvalidArgument
	}
	existing, err := r.GetByEmail(u.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	if err := r.db.Create(u).Error; err != nil {
		return nil, fmt.Errorf("users: save: %w", err)
	}
	return nil, nil
}

func (r *Users) Delete(id uuid.UUID) (*model.User, error) {
	u, err := r.GetOne(id)
	if err != nil || u == nil {
		return nil, err
	}
	if err := r.db.Delete(&model.User{}, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("users: delete: %w", err)
	}
	return u, nil
}

func (r *Users) Update(u *model.User) (*model.User, error) {
	if u == nil {
		return nil, ErrInvalidArgument
	}
	old, err := r.GetOne(u.ID)
	if err != nil || old == nil {
		return nil, err
	}
	if err := r.db.Model(&model.User{ID: u.ID}).Select("*").Omit("id", "created_at").Updates(u).Error; err != nil {
		return nil, fmt.Errorf("users: update: %w", err)
	}
	return old, nil
}

func (r *Users) GetByEmail(email string) (*model.User, error) {
	var u model.User
	err := r.db.First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("users: get by email: %w", err)
	}
	return &u, nil
}

func (r *Users) LastNameContains(s string) ([]model.User, error) {
	var users []model.User
	if err := r.db.Where("last_name LIKE ?", "%"+s+"%").Order("last_name, first_name").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("users: search: %w", err)
	}
	return users, nil
}

func (r *Users) SetPage(page int)     { r.page = page }
func (r *Users) SetPageSize(size int) { r.pageSize = size }

func (r *Users) GetItemsOnPage() ([]model.User, error) {
	if r.pageSize <= 0 {
		return r.GetAll()
	}
	var users []model.User
	err := r.db.Order("created_at, id").
		Offset(r.page * r.pageSize).
		Limit(r.pageSize).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("users: page: %w", err)
	}
	return users, nil
}
