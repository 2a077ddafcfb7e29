package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/sparklink/connect_backend/models"
)

// InviteService owns the invite lifecycle: propose, accept, decline, cancel.
type InviteService struct {
	db            *gorm.DB
	notifications *NotificationService
	logger        *slog.Logger
}

func NewInviteService(db *gorm.DB, notifications *NotificationService) *InviteService {
	return &InviteService{
		db:            db,
		notifications: notifications,
		logger:        slog.With("logger", "invites"),
	}
}

// Create validates and persists a pending invite from actorID to inviteeID,
// then notifies the invitee. Slots without a parseable future timestamp or a
// valid mode are dropped; an invite left with no slots is rejected.
func (s *InviteService) Create(actorID, inviteeID uint, message string, slots []models.Slot) (*models.Invite, error) {
	if inviteeID == 0 {
		return nil, fmt.Errorf("%w: invitee_id is required", ErrValidation)
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("%w: proposed_slots must not be empty", ErrValidation)
	}

	valid := filterSlots(slots, time.Now())
	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: proposed_slots contains no valid future slot", ErrValidation)
	}

	invite := models.Invite{
		InviterID:     actorID,
		InviteeID:     inviteeID,
		Message:       message,
		ProposedSlots: valid,
		Status:        models.InviteStatusPending,
	}

	if err := s.db.Create(&invite).Error; err != nil {
		return nil, err
	}

	s.notifications.Notify(inviteeID, InviteReceived{
		InviterName: s.lookupName(actorID),
		Slots:       invite.ProposedSlots,
	})

	return &invite, nil
}

// List returns the actor's invites, newest first. role selects whether the
// actor is matched as inviter or invitee (default invitee); status is an
// optional filter.
func (s *InviteService) List(actorID uint, role, status string) ([]models.Invite, error) {
	column := "invitee_id"
	if role == "inviter" {
		column = "inviter_id"
	}

	q := s.db.Where(column+" = ?", actorID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var invites []models.Invite
	if err := q.Order("created_at DESC, id DESC").Find(&invites).Error; err != nil {
		return nil, err
	}

	return invites, nil
}

// Update moves an invite to nextStatus and fans out notifications per
// transition. selectedSlot is only persisted on acceptance.
func (s *InviteService) Update(actorID, id uint, nextStatus string, selectedSlot *models.Slot) (*models.Invite, error) {
	var invite models.Invite
	if err := s.db.First(&invite, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invite %d", ErrNotFound, id)
		}
		return nil, err
	}

	role := invite.RoleOf(actorID)
	if role == models.RoleNone {
		return nil, fmt.Errorf("%w: not a participant of this invite", ErrForbidden)
	}

	if !models.ValidInviteStatus(nextStatus) {
		return nil, fmt.Errorf("%w: status must be one of pending, accepted, declined, cancelled", ErrValidation)
	}

	invite.Status = nextStatus
	if nextStatus == models.InviteStatusAccepted && selectedSlot != nil {
		invite.SelectedSlot = selectedSlot
	}

	if err := s.db.Save(&invite).Error; err != nil {
		return nil, err
	}

	switch nextStatus {
	case models.InviteStatusAccepted:
		s.notifications.Notify(invite.InviterID, InviteAccepted{ForInviter: true, Selected: invite.SelectedSlot})
		s.notifications.Notify(invite.InviteeID, InviteAccepted{ForInviter: false, Selected: invite.SelectedSlot})
	case models.InviteStatusDeclined:
		s.notifications.Notify(invite.InviterID, InviteDeclined{})
	case models.InviteStatusCancelled:
		s.notifications.Notify(invite.OtherParty(actorID), InviteCancelled{})
	}

	return &invite, nil
}

func (s *InviteService) lookupName(userID uint) string {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		s.logger.Warn("inviter lookup failed", slog.Any("error", err), slog.Uint64("user", uint64(userID)))
		return "有人"
	}
	return displayName(user)
}

// filterSlots keeps slots with a parseable timestamp strictly after now and
// a valid mode.
func filterSlots(slots []models.Slot, now time.Time) []models.Slot {
	valid := make([]models.Slot, 0, len(slots))
	for _, slot := range slots {
		t, err := time.Parse(time.RFC3339, slot.Datetime)
		if err != nil || !t.After(now) {
			continue
		}
		if !models.ValidMode(slot.Mode) {
			continue
		}
		valid = append(valid, slot)
	}
	return valid
}
