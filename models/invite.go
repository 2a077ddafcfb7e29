package models

import (
	"time"
)

const (
	InviteStatusPending   = "pending"
	InviteStatusAccepted  = "accepted"
	InviteStatusDeclined  = "declined"
	InviteStatusCancelled = "cancelled"

	ModeOnline  = "online"
	ModeOffline = "offline"
)

// Slot is a single candidate meeting time offered within an invite.
type Slot struct {
	Datetime string `json:"datetime_iso"`
	Mode     string `json:"mode"`
}

// ValidMode reports whether m is one of the two supported meeting modes.
func ValidMode(m string) bool {
	return m == ModeOnline || m == ModeOffline
}

type Invite struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	InviterID     uint      `gorm:"index" json:"inviter_id"`
	InviteeID     uint      `gorm:"index" json:"invitee_id"`
	Message       string    `gorm:"type:text" json:"message"`
	ProposedSlots []Slot    `gorm:"serializer:json" json:"proposed_slots"`
	SelectedSlot  *Slot     `gorm:"serializer:json" json:"selected_slot"`
	Status        string    `gorm:"size:20;default:'pending'" json:"status"` // pending, accepted, declined, cancelled
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Role describes how a given user relates to an invite.
type Role int

const (
	RoleNone Role = iota
	RoleInviter
	RoleInvitee
)

// RoleOf resolves the participant role of userID once, so callers branch on
// the role instead of re-comparing ids.
func (i *Invite) RoleOf(userID uint) Role {
	switch userID {
	case i.InviterID:
		return RoleInviter
	case i.InviteeID:
		return RoleInvitee
	default:
		return RoleNone
	}
}

// OtherParty returns the participant that is not userID. The caller must
// already know userID is a participant.
func (i *Invite) OtherParty(userID uint) uint {
	if userID == i.InviterID {
		return i.InviteeID
	}
	return i.InviterID
}

// ValidInviteStatus reports whether s is one of the four invite states.
func ValidInviteStatus(s string) bool {
	switch s {
	case InviteStatusPending, InviteStatusAccepted, InviteStatusDeclined, InviteStatusCancelled:
		return true
	}
	return false
}
