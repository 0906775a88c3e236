package model

import (
	"time"

	"gorm.io/datatypes"
)

// EventLog is one persisted domain event, written by the audit recorder.
type EventLog struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Event     string         `gorm:"size:32;index;not null" json:"event"`
	Payload   datatypes.JSON `json:"payload"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}
