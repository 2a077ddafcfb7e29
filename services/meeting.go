package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/sparklink/connect_backend/models"
)

// MeetingService owns the meeting lifecycle and cascades meeting mutations
// into the parent invite's status.
//
// The multi-step sequences here (insert meeting, update invite, notify) run
// as separate writes without a surrounding transaction, matching the
// deployed behavior. A failure mid-sequence leaves earlier writes in place.
type MeetingService struct {
	db            *gorm.DB
	notifications *NotificationService
	logger        *slog.Logger
}

func NewMeetingService(db *gorm.DB, notifications *NotificationService) *MeetingService {
	return &MeetingService{
		db:            db,
		notifications: notifications,
		logger:        slog.With("logger", "meetings"),
	}
}

// MeetingPatch carries the optional fields of a meeting update. Nil means
// "leave unchanged".
type MeetingPatch struct {
	FinalDatetime *string
	Mode          *string
	LocationText  *string
	MeetingURL    *string
	Notes         *string
	Status        *string
}

// Create schedules a meeting for an invite and forces the invite's status to
// accepted, whatever it was before. Both participants are notified.
func (s *MeetingService) Create(actorID, inviteID uint, finalDatetime, mode, locationText, meetingURL, notes string) (*models.Meeting, error) {
	if err := validateFutureDatetime(finalDatetime); err != nil {
		return nil, err
	}
	if !models.ValidMode(mode) {
		return nil, fmt.Errorf("%w: mode must be online or offline", ErrValidation)
	}

	var invite models.Invite
	if err := s.db.First(&invite, inviteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invite %d", ErrNotFound, inviteID)
		}
		return nil, err
	}

	if invite.RoleOf(actorID) == models.RoleNone {
		return nil, fmt.Errorf("%w: not a participant of this invite", ErrForbidden)
	}

	meeting := models.Meeting{
		InviteID:      inviteID,
		FinalDatetime: finalDatetime,
		Mode:          mode,
		LocationText:  locationText,
		MeetingURL:    meetingURL,
		Notes:         notes,
		Status:        models.MeetingStatusScheduled,
	}

	if err := s.db.Create(&meeting).Error; err != nil {
		return nil, err
	}

	// Unconditional overwrite, even from declined or cancelled. Matches the
	// deployed behavior.
	invite.Status = models.InviteStatusAccepted
	if err := s.db.Save(&invite).Error; err != nil {
		return nil, err
	}

	kind := MeetingScheduled{
		Datetime:     finalDatetime,
		Mode:         mode,
		MeetingURL:   meetingURL,
		LocationText: locationText,
	}
	s.notifications.Notify(invite.InviterID, kind)
	s.notifications.Notify(invite.InviteeID, kind)

	return &meeting, nil
}

// List returns the meetings whose parent invite has the actor as either
// participant, newest first.
func (s *MeetingService) List(actorID uint) ([]models.Meeting, error) {
	var meetings []models.Meeting
	err := s.db.
		Joins("JOIN invites ON invites.id = meetings.invite_id").
		Where("invites.inviter_id = ? OR invites.invitee_id = ?", actorID, actorID).
		Order("meetings.created_at DESC, meetings.id DESC").
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}

	return meetings, nil
}

// Update applies a patch to a meeting. A cancellation cascades to the parent
// invite and suppresses the changed-fields notification; a reschedule and a
// completion submitted together both notify.
func (s *MeetingService) Update(actorID, id uint, patch MeetingPatch) (*models.Meeting, error) {
	var meeting models.Meeting
	if err := s.db.First(&meeting, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: meeting %d", ErrNotFound, id)
		}
		return nil, err
	}

	var invite models.Invite
	if err := s.db.First(&invite, meeting.InviteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invite %d", ErrNotFound, meeting.InviteID)
		}
		return nil, err
	}

	if invite.RoleOf(actorID) == models.RoleNone {
		return nil, fmt.Errorf("%w: not a participant of this meeting", ErrForbidden)
	}

	if patch.FinalDatetime != nil {
		if err := validateFutureDatetime(*patch.FinalDatetime); err != nil {
			return nil, err
		}
	}
	if patch.Mode != nil && !models.ValidMode(*patch.Mode) {
		return nil, fmt.Errorf("%w: mode must be online or offline", ErrValidation)
	}
	if patch.Status != nil && !models.ValidMeetingStatus(*patch.Status) {
		return nil, fmt.Errorf("%w: status must be one of scheduled, completed, cancelled", ErrValidation)
	}

	originalDatetime := meeting.FinalDatetime

	var changes []string
	if patch.FinalDatetime != nil && *patch.FinalDatetime != meeting.FinalDatetime {
		meeting.FinalDatetime = *patch.FinalDatetime
		changes = append(changes, "时间改为 "+formatDatetime(meeting.FinalDatetime))
	}
	if patch.Mode != nil && *patch.Mode != meeting.Mode {
		meeting.Mode = *patch.Mode
		changes = append(changes, "方式改为 "+modeLabel(meeting.Mode))
	}
	if patch.MeetingURL != nil && *patch.MeetingURL != meeting.MeetingURL {
		meeting.MeetingURL = *patch.MeetingURL
		changes = append(changes, "会议链接改为 "+meeting.MeetingURL)
	}
	if patch.LocationText != nil && *patch.LocationText != meeting.LocationText {
		meeting.LocationText = *patch.LocationText
		changes = append(changes, "地点改为 "+meeting.LocationText)
	}
	if patch.Notes != nil {
		meeting.Notes = *patch.Notes
	}

	cancelled := patch.Status != nil && *patch.Status == models.MeetingStatusCancelled
	completed := patch.Status != nil && *patch.Status == models.MeetingStatusCompleted
	if patch.Status != nil {
		meeting.Status = *patch.Status
	}

	if err := s.db.Save(&meeting).Error; err != nil {
		return nil, err
	}

	if cancelled {
		invite.Status = models.InviteStatusCancelled
		if err := s.db.Save(&invite).Error; err != nil {
			return nil, err
		}

		s.notifyBoth(&invite, MeetingCancelled{Datetime: originalDatetime})
		return &meeting, nil
	}

	if len(changes) > 0 {
		s.notifyBoth(&invite, MeetingUpdated{Changes: changes})
	}
	if completed {
		s.notifyBoth(&invite, MeetingCompleted{})
	}

	return &meeting, nil
}

func (s *MeetingService) notifyBoth(invite *models.Invite, kind NotificationKind) {
	s.notifications.Notify(invite.InviterID, kind)
	s.notifications.Notify(invite.InviteeID, kind)
}

func validateFutureDatetime(iso string) error {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return fmt.Errorf("%w: final_datetime_iso is not a valid timestamp", ErrValidation)
	}
	if !t.After(time.Now()) {
		return fmt.Errorf("%w: final_datetime_iso must be in the future", ErrValidation)
	}
	return nil
}
