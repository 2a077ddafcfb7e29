package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sparklink/connect_backend/models"
)

func seedInvite(t *testing.T, db *gorm.DB, inviterID, inviteeID uint, status string) *models.Invite {
	t.Helper()

	invite := models.Invite{
		InviterID: inviterID,
		InviteeID: inviteeID,
		ProposedSlots: []models.Slot{
			{Datetime: "2030-01-01T10:00:00Z", Mode: models.ModeOnline},
		},
		Status: status,
	}
	require.NoError(t, db.Create(&invite).Error)

	return &invite
}

func TestCreateMeetingCascadesInviteToAccepted(t *testing.T) {
	db, _, _, _, meetings := newServices(t)
	inviter := createUser(t, db, "小明", "xiaoming", "xiaoming@example.com")
	invitee := createUser(t, db, "小红", "xiaohong", "xiaohong@example.com")

	// cascade is an unconditional overwrite, even from declined
	invite := seedInvite(t, db, inviter.ID, invitee.ID, models.InviteStatusDeclined)

	meeting, err := meetings.Create(invitee.ID, invite.ID,
		"2030-01-01T10:00:00Z", models.ModeOnline, "", "https://x", "")
	require.NoError(t, err)

	assert.Equal(t, models.MeetingStatusScheduled, meeting.Status)
	assert.Equal(t, invite.ID, meeting.InviteID)

	var stored models.Invite
	require.NoError(t, db.First(&stored, invite.ID).Error)
	assert.Equal(t, models.InviteStatusAccepted, stored.Status)
}

func TestCreateMeetingNotifiesBothWithWhereText(t *testing.T) {
	db, _, _, _, meetings := newServices(t)
	inviter := createUser(t, db, "小明", "xiaoming", "xiaoming@example.com")
	invitee := createUser(t, db, "小红", "xiaohong", "xiaohong@example.com")
	invite := seedInvite(t, db, inviter.ID, invitee.ID, models.InviteStatusAccepted)

	_, err := meetings.Create(inviter.ID, invite.ID,
		"2030-01-01T10:00:00Z", models.ModeOnline, "", "https://x", "")
	require.NoError(t, err)

	for _, userID := range []uint{inviter.ID, invitee.ID} {
		got := notificationsFor(t, db, userID)
		require.Len(t, got, 1)
		assert.Contains(t, got[0].Content, "线上会议")
		assert.Contains(t, got[0].Content, "https://x")
	}
}

func TestCreateMeetingOfflineDefaultsLocation(t *testing.T) {
	db, _, _, _, meetings := newServices(t)
	inviter := createUser(t, db, "小明", "xiaoming", "xiaoming@example.com")
	invitee := createUser(t, db, "小红", "xiaohong", "xiaohong@example.com")
	invite := seedInvite(t, db, inviter.ID, invitee.ID, models.InviteStatusAccepted)

	_, err := meetings.Create(inviter.ID, invite.ID,
		"2030-01-01T10:00:00Z", models.ModeOffline, "", "", "")
	require.NoError(t, err)

	got := notificationsFor(t, db, invitee.ID)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Content, "地点未提供")
}

func TestCreateMeetingValidation(t *testing.T) {
	db, _, _, _, meetings := newServices(t)
	inviter := createUser(t, db, "小明", "xiaoming", "xiaoming@example.com")
	invitee := createUser(t, db, "小红", "xiaohong", "xiaohong@example.com")
	invite := seedInvite(t, db, inviter.ID, invitee.ID, models.InviteStatusAccepted)

	_, err := meetings.Create(inviter.ID, invite.ID, "2020-01-01T10:00:00Z", models.ModeOnline, "", "", "")
	require.ErrorIs(t, err, ErrValidation)

	_, err = meetings.Create(inviter.ID, invite.ID, "yesterday", models.ModeOnline, "", "", "")
	require.ErrorIs(t, err, ErrValidation)

	_, err = meetings.Create(inviter.ID, invite.ID, "2030-01-01T10:00:00Z", "hologram", "", "", "")
	require.ErrorIs(t, err, ErrValidation)

	var count int64
	require.NoError(t, db.Model(&models.Meeting{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateMeetingInviteNotFound(t *testing.T) {
	db, _, _, _, meetings := newServices(t)
	user := createUser(t, db, "小明", "xiaoming", "xiaoming@example.com")

	_, err := meetings.Create(user.ID, 999, "2030-01-01T10:00:00Z", models.ModeOnline, "", "", "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateMeetingNonParticipant(t *testing.T) {
	db, _, _, _, meetings := newServices(t)
	inviter := createUser(t, db, "小明", "xiaoming", "xiaoming@example.com")
	invitee := createUser(t, db, "小红", "xiaohong", "xiaohong@example.com")
	outsider := createUser(t, db, "路人", "luren", "luren@example.com")
	invite := seedInvite(t, db, inviter.ID, invitee.ID, models.InviteStatusPending)

	_, err := meetings.Create(outsider.ID, invite.ID, "2030-01-01T10:00:00Z", models.ModeOnline, "", "", "")
	require.ErrorIs(t, err, ErrForbidden)

	var stored models.Invite
	require.NoError(t, db.First(&stored, invite.ID).Error)
	assert.Equal(t, models.InviteStatusPending, stored.Status)
	assert.Zero(t, countNotifications(t, db))
}

func TestListMeetingsJoinsParentInvite(t *testing.T) {
	db, _, _, _, meetings := newServices(t)
	a := createUser(t, db, "A", "usera", "a@example.com")
	b := createUser(t, db, "B", "userb", "b@example.com")
	c := createUser(t, db, "C", "userc", "c@example.com")

	ab := seedInvite(t, db, a.ID, b.ID, models.InviteStatusAccepted)
	bc := seedInvite(t, db, b.ID, c.ID, models.InviteStatusAccepted)

	_, err := meetings.Create(a.ID, ab.ID, "2030-01-01T10:00:00Z", models.ModeOnline, "", "https://x", "")
	require.NoError(t, err)
	_, err = meetings.Create(b.ID, bc.ID, "2030-02-01T10:00:00Z", models.ModeOffline, "咖啡馆", "", "")
	require.NoError(t, err)

	forA, err := meetings.List(a.ID)
	require.NoError(t, err)
	require.Len(t, forA, 1)
	assert.Equal(t, ab.ID, forA[0].InviteID)

	forB, err := meetings.List(b.ID)
	require.NoError(t, err)
	assert.Len(t, forB, 2)

	forC, err := meetings.List(c.ID)
	require.NoError(t, err)
	assert.Len(t, forC, 1)
}

func TestUpdateMeetingCancelCascades(t *testing.T) {
	db, _, _, _, meetings := newServices(t)
	inviter := createUser(t, db, "小明", "xiaoming", "xiaoming@example.com")
	invitee := createUser(t, db, "小红", "xiaohong", "xiaohong@example.com")
	invite := seedInvite(t, db, inviter.ID, invitee.ID, models.InviteStatusAccepted)

	meeting, err := meetings.Create(inviter.ID, invite.ID, "2030-01-01T10:00:00Z", models.ModeOnline, "", "https://x", "")
	require.NoError(t, err)
	before := countNotifications(t, db)

	cancelled := models.MeetingStatusCancelled
	newTime := "2030-06-01T10:00:00Z"
	updated, err := meetings.Update(invitee.ID, meeting.ID, MeetingPatch{
		Status: &cancelled,
		// a simultaneous reschedule must not produce a change notification
		FinalDatetime: &newTime,
	})
	require.NoError(t, err)

	assert.Equal(t, models.MeetingStatusCancelled, updated.Status)

	var storedInvite models.Invite
	require.NoError(t, db.First(&storedInvite, invite.ID).Error)
	assert.Equal(t, models.InviteStatusCancelled, storedInvite.Status)

	// one cancellation notification per party, nothing else
	assert.Equal(t, before+2, countNotifications(t, db))
	got := notificationsFor(t, db, inviter.ID)
	last := got[len(got)-1]
	assert.Contains(t, last.Content, "已取消")
	// mentions the originally scheduled time, not the attempted reschedule
	assert.Contains(t, last.Content, formatDatetime("2030-01-01T10:00:00Z"))
	assert.NotContains(t, last.Content, formatDatetime(newTime))
}

func TestUpdateMeetingRescheduleNotifiesChanges(t *testing.T) {
	db, _, _, _, meetings := newServices(t)
	inviter := createUser(t, db, "小明", "xiaoming", "xiaoming@example.com")
	invitee := createUser(t, db, "小红", "xiaohong", "xiaohong@example.com")
	invite := seedInvite(t, db, inviter.ID, invitee.ID, models.InviteStatusAccepted)

	meeting, err := meetings.Create(inviter.ID, invite.ID, "2030-01-01T10:00:00Z", models.ModeOnline, "", "https://x", "")
	require.NoError(t, err)
	before := countNotifications(t, db)

	newTime := "2030-02-01T10:00:00Z"
	newURL := "https://y"
	updated, err := meetings.Update(inviter.ID, meeting.ID, MeetingPatch{
		FinalDatetime: &newTime,
		MeetingURL:    &newURL,
	})
	require.NoError(t, err)

	assert.Equal(t, newTime, updated.FinalDatetime)
	assert.Equal(t, newURL, updated.MeetingURL)

	// one merged summary per party
	assert.Equal(t, before+2, countNotifications(t, db))
	got := notificationsFor(t, db, invitee.ID)
	last := got[len(got)-1]
	assert.Contains(t, last.Content, "时间改为")
	assert.Contains(t, last.Content, "会议链接改为 https://y")
}

func TestUpdateMeetingNoChangesNoNotification(t *testing.T) {
	db, _, _, _, meetings := newServices(t)
	inviter := createUser(t, db, "小明", "xiaoming", "xiaoming@example.com")
	invitee := createUser(t, db, "小红", "xiaohong", "xiaohong@example.com")
	invite := seedInvite(t, db, inviter.ID, invitee.ID, models.InviteStatusAccepted)

	meeting, err := meetings.Create(inviter.ID, invite.ID, "2030-01-01T10:00:00Z", models.ModeOnline, "", "https://x", "")
	require.NoError(t, err)
	before := countNotifications(t, db)

	// same values and a notes edit: nothing to announce
	sameURL := "https://x"
	notes := "带上白板笔"
	_, err = meetings.Update(inviter.ID, meeting.ID, MeetingPatch{MeetingURL: &sameURL, Notes: &notes})
	require.NoError(t, err)

	assert.Equal(t, before, countNotifications(t, db))
}

func TestUpdateMeetingComplete(t *testing.T) {
	db, _, _, _, meetings := newServices(t)
	inviter := createUser(t, db, "小明", "xiaoming", "xiaoming@example.com")
	invitee := createUser(t, db, "小红", "xiaohong", "xiaohong@example.com")
	invite := seedInvite(t, db, inviter.ID, invitee.ID, models.InviteStatusAccepted)

	meeting, err := meetings.Create(inviter.ID, invite.ID, "2030-01-01T10:00:00Z", models.ModeOnline, "", "https://x", "")
	require.NoError(t, err)
	before := countNotifications(t, db)

	completed := models.MeetingStatusCompleted
	updated, err := meetings.Update(invitee.ID, meeting.ID, MeetingPatch{Status: &completed})
	require.NoError(t, err)

	assert.Equal(t, models.MeetingStatusCompleted, updated.Status)
	assert.Equal(t, before+2, countNotifications(t, db))

	// completing does not touch the parent invite
	var storedInvite models.Invite
	require.NoError(t, db.First(&storedInvite, invite.ID).Error)
	assert.Equal(t, models.InviteStatusAccepted, storedInvite.Status)
}

func TestUpdateMeetingRescheduleAndCompleteBothNotify(t *testing.T) {
	db, _, _, _, meetings := newServices(t)
	inviter := createUser(t, db, "小明", "xiaoming", "xiaoming@example.com")
	invitee := createUser(t, db, "小红", "xiaohong", "xiaohong@example.com")
	invite := seedInvite(t, db, inviter.ID, invitee.ID, models.InviteStatusAccepted)

	meeting, err := meetings.Create(inviter.ID, invite.ID, "2030-01-01T10:00:00Z", models.ModeOnline, "", "https://x", "")
	require.NoError(t, err)
	before := countNotifications(t, db)

	newTime := "2030-02-01T10:00:00Z"
	completed := models.MeetingStatusCompleted
	_, err = meetings.Update(inviter.ID, meeting.ID, MeetingPatch{
		FinalDatetime: &newTime,
		Status:        &completed,
	})
	require.NoError(t, err)

	// change summary and completion both fan out to both parties
	assert.Equal(t, before+4, countNotifications(t, db))
}

func TestUpdateMeetingNonParticipant(t *testing.T) {
	db, _, _, _, meetings := newServices(t)
	inviter := createUser(t, db, "小明", "xiaoming", "xiaoming@example.com")
	invitee := createUser(t, db, "小红", "xiaohong", "xiaohong@example.com")
	outsider := createUser(t, db, "路人", "luren", "luren@example.com")
	invite := seedInvite(t, db, inviter.ID, invitee.ID, models.InviteStatusAccepted)

	meeting, err := meetings.Create(inviter.ID, invite.ID, "2030-01-01T10:00:00Z", models.ModeOnline, "", "https://x", "")
	require.NoError(t, err)
	before := countNotifications(t, db)

	completed := models.MeetingStatusCompleted
	_, err = meetings.Update(outsider.ID, meeting.ID, MeetingPatch{Status: &completed})
	require.ErrorIs(t, err, ErrForbidden)

	var stored models.Meeting
	require.NoError(t, db.First(&stored, meeting.ID).Error)
	assert.Equal(t, models.MeetingStatusScheduled, stored.Status)
	assert.Equal(t, before, countNotifications(t, db))
}

func TestUpdateMeetingValidation(t *testing.T) {
	db, _, _, _, meetings := newServices(t)
	inviter := createUser(t, db, "小明", "xiaoming", "xiaoming@example.com")
	invitee := createUser(t, db, "小红", "xiaohong", "xiaohong@example.com")
	invite := seedInvite(t, db, inviter.ID, invitee.ID, models.InviteStatusAccepted)

	meeting, err := meetings.Create(inviter.ID, invite.ID, "2030-01-01T10:00:00Z", models.ModeOnline, "", "https://x", "")
	require.NoError(t, err)

	past := "2020-01-01T10:00:00Z"
	_, err = meetings.Update(inviter.ID, meeting.ID, MeetingPatch{FinalDatetime: &past})
	require.ErrorIs(t, err, ErrValidation)

	badMode := "hologram"
	_, err = meetings.Update(inviter.ID, meeting.ID, MeetingPatch{Mode: &badMode})
	require.ErrorIs(t, err, ErrValidation)

	badStatus := "postponed"
	_, err = meetings.Update(inviter.ID, meeting.ID, MeetingPatch{Status: &badStatus})
	require.ErrorIs(t, err, ErrValidation)

	var stored models.Meeting
	require.NoError(t, db.First(&stored, meeting.ID).Error)
	assert.Equal(t, "2030-01-01T10:00:00Z", stored.FinalDatetime)
	assert.Equal(t, models.ModeOnline, stored.Mode)
}

func TestUpdateMeetingNotFound(t *testing.T) {
	db, _, _, _, meetings := newServices(t)
	user := createUser(t, db, "小明", "xiaoming", "xiaoming@example.com")

	completed := models.MeetingStatusCompleted
	_, err := meetings.Update(user.ID, 999, MeetingPatch{Status: &completed})
	require.ErrorIs(t, err, ErrNotFound)
}
