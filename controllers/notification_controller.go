package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sparklink/connect_backend/services"
)

type NotificationController struct {
	notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

type MarkReadInput struct {
	ID uint `json:"id"`
}

// ListNotifications godoc
// @Summary List the authenticated user's notifications
// @Description Returns notifications newest first with offset pagination
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param status query string false "unread or read"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset"
// @Success 200 {object} map[string]interface{} "List of notifications"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /api/notifications [get]
func (ctl *NotificationController) ListNotifications(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		offset = 0
	}

	notifications, err := ctl.notifications.List(userID, c.Query("status"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": notifications})
}

// MarkNotificationsRead godoc
// @Summary Mark one or all notifications read
// @Description Marks the notification given by ?id= (or body id), or every notification with ?all=true
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id query int false "Notification ID"
// @Param all query bool false "Mark all read"
// @Success 200 {object} map[string]interface{} "Marked read"
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /api/notifications [put]
func (ctl *NotificationController) MarkNotificationsRead(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	if c.Query("all") == "true" {
		if err := ctl.notifications.MarkAllRead(userID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	var input MarkReadInput
	// Body is optional when the id comes from the query string.
	_ = c.ShouldBindJSON(&input)

	id, ok := idFromRequest(c, input.ID)
	if !ok {
		return
	}

	if err := ctl.notifications.MarkRead(userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
