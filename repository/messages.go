package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"socialnet/model"
)

// Messages is the gorm-backed MessageRepository.
type Messages struct {
	db *gorm.DB
}

// NewMessages creates a Messages repository over db.
func NewMessages(db *gorm.DB) *Messages {
	return &Messages{db: db}
}

func (r *Messages) IsEmpty() (bool, error) {
	n, err := r.Size()
	return n == 0, err
}

func (r *Messages) Size() (int, error) {
	var n int64
	if err := r.db.Model(&model.Message{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("messages: count: %w", err)
	}
	return int(n), nil
}

func (r *Messages) GetAll() ([]model.Message, error) {
	var msgs []model.Message
	if err := r.db.Order("created_at, id").Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("messages: get all: %w", err)
	}
	return msgs, nil
}

func (r *Messages) GetOne(id uuid.UUID) (*model.Message, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidArgument
	}
	var m model.Message
	err := r.db.First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("messages: get: %w", err)
	}
	return &m, nil
}

func (r *Messages) Save(m *model.Message) (*model.Message, error) {
	if m == nil {
		return nil, ErrInvalidArgument
	}
	existing, err := r.GetOne(m.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	if err := r.db.Create(m).Error; err != nil {
		return nil, fmt.Errorf("messages: save: %w", err)
	}
	return nil, nil
}

func (r *Messages) Delete(id uuid.UUID) (*model.Message, error) {
	m, err := r.GetOne(id)
	if err != nil || m == nil {
		return nil, err
	}
	if err := r.db.Delete(&model.Message{}, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("messages: delete: %w", err)
	}
	return m, nil
}

// Update replaces the stored message wholesale, keyed by id.
func (r *Messages) Update(m *model.Message) (*model.Message, error) {
	if m == nil {
		return nil, ErrInvalidArgument
	}
	old, err := r.GetOne(m.ID)
	if err != nil || old == nil {
		return nil, err
	}
	if err := r.db.Model(&model.Message{ID: m.ID}).Select("*").Omit("id").Updates(m).Error; err != nil {
		return nil, fmt.Errorf("messages: update: %w", err)
	}
	return old, nil
}

// Between returns every message exchanged between a and b, in either
// direction, sorted ascending by timestamp. Recipient containment is
// resolved in memory: the recipient list is a JSON column and the query
// must behave identically on sqlite and mysql.
func (r *Messages) Between(a, b uuid.UUID) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.Where("from_id IN ?", []uuid.UUID{a, b}).
		Order("created_at, id").
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("messages: between: %w", err)
	}
	out := msgs[:0]
	for _, m := range msgs {
		if (m.FromID == a && m.AddressedTo(b)) || (m.FromID == b && m.AddressedTo(a)) {
			out = append(out, m)
		}
	}
	return out, nil
}
