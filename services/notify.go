package services

import (
	"strings"
	"time"

	"github.com/sparklink/connect_backend/models"
)

// NotificationKind is one of the closed set of events that produce a
// notification. Rendering to user-facing text is kept separate from the
// fan-out so each kind can be tested on its own.
type NotificationKind interface {
	Render() (title, content, path string)
}

const connectionsPath = "/connections"

// InviteReceived is sent to the invitee when a new invite is created.
type InviteReceived struct {
	InviterName string
	Slots       []models.Slot
}

func (k InviteReceived) Render() (string, string, string) {
	var b strings.Builder
	b.WriteString(k.InviterName)
	b.WriteString(" 向你发起了一对一见面邀请，候选时间：")

	shown := k.Slots
	if len(shown) > 3 {
		shown = shown[:3]
	}
	parts := make([]string, 0, len(shown))
	for _, s := range shown {
		parts = append(parts, formatSlot(s))
	}
	b.WriteString(strings.Join(parts, "、"))
	if len(k.Slots) > 3 {
		b.WriteString(" 等……")
	}

	return "收到新的见面邀请", b.String(), connectionsPath
}

// InviteAccepted is sent to both parties when an invite is accepted. The
// inviter copy mentions the generated meeting record.
type InviteAccepted struct {
	ForInviter bool
	Selected   *models.Slot
}

func (k InviteAccepted) Render() (string, string, string) {
	var content string
	if k.ForInviter {
		content = "对方已接受你的见面邀请，系统已生成会面记录"
	} else {
		content = "你已接受这次见面邀请"
	}
	if k.Selected != nil {
		content += "，时间：" + formatSlot(*k.Selected)
	}

	return "邀请已接受", content, connectionsPath
}

// InviteDeclined is sent to the inviter only.
type InviteDeclined struct{}

func (InviteDeclined) Render() (string, string, string) {
	return "邀请已婉拒", "对方婉拒了你的见面邀请", connectionsPath
}

// InviteCancelled is sent to the party that did not cancel.
type InviteCancelled struct{}

func (InviteCancelled) Render() (string, string, string) {
	return "邀请已取消", "对方取消了这次见面邀请", connectionsPath
}

// MeetingScheduled is sent to both parties when a meeting is created.
type MeetingScheduled struct {
	Datetime     string
	Mode         string
	MeetingURL   string
	LocationText string
}

func (k MeetingScheduled) Render() (string, string, string) {
	var where string
	if k.Mode == models.ModeOnline {
		if k.MeetingURL != "" {
			where = "线上会议：" + k.MeetingURL
		} else {
			where = "线上会议：链接未提供"
		}
	} else {
		if k.LocationText != "" {
			where = "线下见面：" + k.LocationText
		} else {
			where = "线下见面：地点未提供"
		}
	}

	return "会面已安排", "会面已确定，时间：" + formatDatetime(k.Datetime) + "，" + where, connectionsPath
}

// MeetingUpdated is sent to both parties when schedule fields change.
type MeetingUpdated struct {
	Changes []string
}

func (k MeetingUpdated) Render() (string, string, string) {
	return "会面信息有变更", strings.Join(k.Changes, "；"), connectionsPath
}

// MeetingCancelled carries the originally scheduled time for context.
type MeetingCancelled struct {
	Datetime string
}

func (k MeetingCancelled) Render() (string, string, string) {
	return "会面已取消", "原定于 " + formatDatetime(k.Datetime) + " 的会面已取消", connectionsPath
}

// MeetingCompleted is sent to both parties.
type MeetingCompleted struct{}

func (MeetingCompleted) Render() (string, string, string) {
	return "会面已完成", "这次会面已标记为完成", connectionsPath
}

func modeLabel(mode string) string {
	if mode == models.ModeOnline {
		return "线上"
	}
	return "线下"
}

func formatSlot(s models.Slot) string {
	return formatDatetime(s.Datetime) + " " + modeLabel(s.Mode)
}

// formatDatetime renders an RFC3339 timestamp as a local date/time. An
// unparseable value is shown as-is.
func formatDatetime(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Local().Format("2006-01-02 15:04")
}
