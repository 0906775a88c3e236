package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"socialnet/model"
)

// FriendRequests is the gorm-backed FriendRequestRepository.
type FriendRequests struct {
	db *gorm.DB
}

// NewFriendRequests creates a FriendRequests repository over db.
func NewFriendRequests(db *gorm.DB) *FriendRequests {
	return &FriendRequests{db: db}
}

func (r *FriendRequests) IsEmpty() (bool, error) {
	n, err := r.Size()
	return n == 0, err
}

func (r *FriendRequests) Size() (int, error) {
	var n int64
	if err := r.db.Model(&model.FriendRequest{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("friend requests: count: %w", err)
	}
	return int(n), nil
}

func (r *FriendRequests) GetAll() ([]model.FriendRequest, error) {
	var reqs []model.FriendRequest
	if err := r.db.Order("created_at, from_id, to_id").Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("friend requests: get all: %w", err)
	}
	return reqs, nil
}

func (r *FriendRequests) GetOne(id model.RequestKey) (*model.FriendRequest, error) {
	if id.FromID == uuid.Nil || id.ToID == uuid.Nil {
		return nil, ErrInvalidArgument
	}
	var req model.FriendRequest
	err := r.db.First(&req, "from_id = ? AND to_id = ? AND created_at = ?",
		id.FromID, id.ToID, id.CreatedAt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("friend requests: get: %w", err)
	}
	return &req, nil
}

func (r *FriendRequests) Save(req *model.FriendRequest) (*model.FriendRequest, error) {
	if req == nil {
		return nil, ErrInvalidArgument
	}
	existing, err := r.GetOne(req.Key())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	if err := r.db.Create(req).Error; err != nil {
		return nil, fmt.Errorf("friend requests: save: %w", err)
	}
	return nil, nil
}

func (r *FriendRequests) Delete(id model.RequestKey) (*model.FriendRequest, error) {
	req, err := r.GetOne(id)
	if err != nil || req == nil {
		return nil, err
	}
	err = r.db.Delete(&model.FriendRequest{}, "from_id = ? AND to_id = ? AND created_at = ?",
		id.FromID, id.ToID, id.CreatedAt).Error
	if err != nil {
		return nil, fmt.Errorf("friend requests: delete: %w", err)
	}
	return req, nil
}

func (r *FriendRequests) Update(req *model.FriendRequest) (*model.FriendRequest, error) {
	if req == nil {
		return nil, ErrInvalidArgument
	}
	old, err := r.GetOne(req.Key())
	if err != nil || old == nil {
		return nil, err
	}
	err = r.db.Model(&model.FriendRequest{}).
		Where("from_id = ? AND to_id = ? AND created_at = ?", req.FromID, req.ToID, req.CreatedAt).
		Update("status", req.Status).Error
	if err != nil {
		return nil, fmt.Errorf("friend requests: update: %w", err)
	}
	return old, nil
}

// PendingTo returns the pending requests addressed to userID, oldest first.
func (r *FriendRequests) PendingTo(userID uuid.UUID) ([]model.FriendRequest, error) {
	var reqs []model.FriendRequest
	err := r.db.Where("to_id = ? AND status = ?", userID, model.StatusPending).
		Order("created_at").
		Find(&reqs).Error
	if err != nil {
		return nil, fmt.Errorf("friend requests: pending to: %w", err)
	}
	return reqs, nil
}

// HasPending reports whether a pending request from one user to another
// already exists. The pair is ordered: a pending request in the opposite
// direction does not count.
func (r *FriendRequests) HasPending(from, to uuid.UUID) (bool, error) {
	var n int64
	err := r.db.Model(&model.FriendRequest{}).
		Where("from_id = ? AND to_id = ? AND status = ?", from, to, model.StatusPending).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("friend requests: has pending: %w", err)
	}
	return n > 0, nil
}
