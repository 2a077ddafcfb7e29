package models

import (
	"time"
)

const (
	MeetingStatusScheduled = "scheduled"
	MeetingStatusCompleted = "completed"
	MeetingStatusCancelled = "cancelled"
)

type Meeting struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	InviteID      uint      `gorm:"index" json:"invite_id"`
	FinalDatetime string    `gorm:"column:final_datetime_iso;size:64" json:"final_datetime_iso"`
	Mode          string    `gorm:"size:10" json:"mode"` // online, offline
	LocationText  string    `gorm:"size:255" json:"location_text"`
	MeetingURL    string    `gorm:"size:255" json:"meeting_url"`
	Notes         string    `gorm:"type:text" json:"notes"`
	Status        string    `gorm:"size:20;default:'scheduled'" json:"status"` // scheduled, completed, cancelled
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidMeetingStatus reports whether s is one of the three meeting states.
func ValidMeetingStatus(s string) bool {
	switch s {
	case MeetingStatusScheduled, MeetingStatusCompleted, MeetingStatusCancelled:
		return true
	}
	return false
}
