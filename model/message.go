package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Message is an addressed message from one user to one or more others.
// A nil ReplyToID means a plain message; a non-nil one marks the reply
// variant and references the message being replied to.
type Message struct {
	ID        uuid.UUID      `gorm:"primaryKey;type:char(36)" json:"id"`
	FromID    uuid.UUID      `gorm:"type:char(36);index;not null" json:"from_id"`
	To        datatypes.JSON `json:"to"`
	Body      string         `gorm:"type:text" json:"body"`
	ReplyToID *uuid.UUID     `gorm:"type:char(36)" json:"reply_to_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewMessage creates a plain message addressed to the given recipients.
// The timestamp keeps full precision: it is the primary conversation sort
// key, and truncating it would let a message and its reply tie.
func NewMessage(from uuid.UUID, to []uuid.UUID, body string) *Message {
	return &Message{
		ID:        uuid.New(),
		FromID:    from,
		To:        encodeRecipients(to),
		Body:      body,
		CreatedAt: time.Now(),
	}
}

// NewReply creates a reply to an existing message, addressed to that
// message's sender.
func NewReply(from uuid.UUID, body string, replyTo *Message) *Message {
	m := NewMessage(from, []uuid.UUID{replyTo.FromID}, body)
	id := replyTo.ID
	m.ReplyToID = &id
	return m
}

// IsReply reports whether the message is the reply variant.
func (m *Message) IsReply() bool {
	return m.ReplyToID != nil
}

// Recipients decodes the stored recipient list. A corrupt column yields an
// empty list.
func (m *Message) Recipients() []uuid.UUID {
	var ids []uuid.UUID
	_ = json.Unmarshal(m.To, &ids)
	return ids
}

// AddressedTo reports whether id is one of the message recipients.
func (m *Message) AddressedTo(id uuid.UUID) bool {
	for _, r := range m.Recipients() {
		if r == id {
			return true
		}
	}
	return false
}

func encodeRecipients(to []uuid.UUID) datatypes.JSON {
	b, _ := json.Marshal(to)
	return datatypes.JSON(b)
}
