package models

import (
	"time"
)

const (
	NotificationStatusUnread = "unread"
	NotificationStatusRead   = "read"
)

type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Title     string    `gorm:"size:255" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Path      string    `gorm:"size:255" json:"path"`
	Status    string    `gorm:"size:10;default:'unread'" json:"status"` // unread, read
	CreatedAt time.Time `json:"created_at"`
}
