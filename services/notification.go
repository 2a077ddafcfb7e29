package services

import (
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/sparklink/connect_backend/mail"
	"github.com/sparklink/connect_backend/models"
)

// NotificationService persists in-app notifications and mirrors them to
// email on a best-effort basis. Failures on either channel are logged and
// never propagated, so a notification can never fail the business operation
// that triggered it.
type NotificationService struct {
	db      *gorm.DB
	sender  mail.Sender
	baseURL string
	logger  *slog.Logger
}

func NewNotificationService(db *gorm.DB, sender mail.Sender, baseURL string) *NotificationService {
	return &NotificationService{
		db:      db,
		sender:  sender,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  slog.With("logger", "notifications"),
	}
}

// Notify stores an unread notification for userID and attempts email
// delivery. Best-effort only.
func (s *NotificationService) Notify(userID uint, kind NotificationKind) {
	title, content, path := kind.Render()

	n := models.Notification{
		UserID:  userID,
		Title:   title,
		Content: content,
		Path:    path,
		Status:  models.NotificationStatusUnread,
	}

	if err := s.db.Create(&n).Error; err != nil {
		s.logger.Error("notification insert failed", slog.Any("error", err), slog.Uint64("user", uint64(userID)))
		return
	}

	s.deliverEmail(userID, title, content, path)
}

func (s *NotificationService) deliverEmail(userID uint, title, content, path string) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		s.logger.Warn("email skipped, user lookup failed", slog.Any("error", err), slog.Uint64("user", uint64(userID)))
		return
	}

	if user.Email == "" {
		return
	}

	var b strings.Builder
	b.WriteString(displayName(user))
	b.WriteString("，你好：\n\n")
	b.WriteString(content)
	b.WriteString("\n")
	if path != "" {
		b.WriteString("\n查看详情：")
		b.WriteString(s.baseURL)
		b.WriteString(path)
		b.WriteString("\n")
	}
	b.WriteString("\n此邮件由系统自动发送，请勿直接回复。\n")

	if err := s.sender.Send(user.Email, title, b.String()); err != nil {
		s.logger.Warn("email delivery failed", slog.Any("error", err), slog.Uint64("user", uint64(userID)))
	}
}

// List returns the user's notifications, newest first. A status filter is
// optional; limit <= 0 means no limit.
func (s *NotificationService) List(userID uint, status string, limit, offset int) ([]models.Notification, error) {
	q := s.db.Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	var notifications []models.Notification
	if err := q.Order("created_at DESC, id DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}

	return notifications, nil
}

// MarkRead marks one of the caller's notifications read. A mismatched owner
// updates zero rows and is not an error.
func (s *NotificationService) MarkRead(userID, id uint) error {
	return s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", models.NotificationStatusRead).Error
}

// MarkAllRead marks every notification of the caller read.
func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Update("status", models.NotificationStatusRead).Error
}

// displayName picks the friendliest available form of address.
func displayName(u models.User) string {
	if u.Name != "" {
		return u.Name
	}
	if u.Username != "" {
		return "@" + u.Username
	}
	return "朋友"
}
