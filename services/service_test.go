package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sparklink/connect_backend/models"
)

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// captureSender records outgoing mail, optionally failing every send.
type captureSender struct {
	sent []sentMail
	fail bool
}

func (s *captureSender) Send(to, subject, body string) error {
	if s.fail {
		return fmt.Errorf("smtp unavailable")
	}
	s.sent = append(s.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func prepare(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Invite{},
		&models.Meeting{},
		&models.Notification{},
	))

	return db
}

func newServices(t *testing.T) (*gorm.DB, *captureSender, *NotificationService, *InviteService, *MeetingService) {
	t.Helper()

	db := prepare(t)
	sender := &captureSender{}
	notifications := NewNotificationService(db, sender, "http://localhost:3000")
	invites := NewInviteService(db, notifications)
	meetings := NewMeetingService(db, notifications)

	return db, sender, notifications, invites, meetings
}

func createUser(t *testing.T, db *gorm.DB, name, username, email string) models.User {
	t.Helper()

	user := models.User{
		Name:     name,
		Username: username,
		Email:    email,
		Password: "password123",
	}
	require.NoError(t, db.Create(&user).Error)

	return user
}

func notificationsFor(t *testing.T, db *gorm.DB, userID uint) []models.Notification {
	t.Helper()

	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", userID).Order("id").Find(&notifications).Error)

	return notifications
}

func countNotifications(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)

	return count
}
