package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotificationCategory string

const (
	NotificationMilestone NotificationCategory = "milestone"
	NotificationPayment   NotificationCategory = "payment"
	NotificationDispute   NotificationCategory = "dispute"
	NotificationSystem    NotificationCategory = "system"
)

// Notification is a user-facing event record written on workflow
// transitions. Rows are append-only; the presentation layer lists them.
type Notification struct {
	ID        uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string               `gorm:"size:255;not null" json:"title"`
	Message   string               `gorm:"type:text;not null" json:"message"`
	Category  NotificationCategory `gorm:"size:20;not null;check:chk_notifications_category,category IN ('milestone','payment','dispute','system')" json:"category"`
	Payload   datatypes.JSON       `json:"payload,omitempty"`
	CreatedAt time.Time            `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
