package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparklink/connect_backend/services"
)

type MeetingController struct {
	meetings *services.MeetingService
}

func NewMeetingController(meetings *services.MeetingService) *MeetingController {
	return &MeetingController{meetings: meetings}
}

type CreateMeetingInput struct {
	InviteID      uint   `json:"invite_id" binding:"required" example:"1"`
	FinalDatetime string `json:"final_datetime_iso" binding:"required" example:"2030-01-01T10:00:00Z"`
	Mode          string `json:"mode" binding:"required" example:"online"`
	LocationText  string `json:"location_text"`
	MeetingURL    string `json:"meeting_url"`
	Notes         string `json:"notes"`
}

type UpdateMeetingInput struct {
	ID            uint    `json:"id"`
	FinalDatetime *string `json:"final_datetime_iso"`
	Mode          *string `json:"mode"`
	LocationText  *string `json:"location_text"`
	MeetingURL    *string `json:"meeting_url"`
	Notes         *string `json:"notes"`
	Status        *string `json:"status"`
}

// CreateMeeting godoc
// @Summary Schedule a meeting from an accepted invite
// @Description Creates a meeting record and marks the parent invite accepted
// @Tags meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param meeting body CreateMeetingInput true "Meeting Creation"
// @Success 200 {object} map[string]interface{} "Meeting created"
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 403 {object} map[string]interface{} "Forbidden"
// @Failure 404 {object} map[string]interface{} "Invite not found"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /api/meetings [post]
func (ctl *MeetingController) CreateMeeting(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateMeetingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	meeting, err := ctl.meetings.Create(userID, input.InviteID,
		input.FinalDatetime, input.Mode, input.LocationText, input.MeetingURL, input.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "meeting": meeting})
}

// ListMeetings godoc
// @Summary List the authenticated user's meetings
// @Description Returns meetings whose parent invite involves the user
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "List of meetings"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /api/meetings [get]
func (ctl *MeetingController) ListMeetings(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	meetings, err := ctl.meetings.List(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "meetings": meetings})
}

// UpdateMeeting godoc
// @Summary Reschedule, cancel or complete a meeting
// @Description Applies a partial update; cancelling cascades to the parent invite
// @Tags meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id query int false "Meeting ID (alternative to body id)"
// @Param meeting body UpdateMeetingInput true "Meeting Update"
// @Success 200 {object} map[string]interface{} "Updated meeting"
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 403 {object} map[string]interface{} "Forbidden"
// @Failure 404 {object} map[string]interface{} "Meeting not found"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /api/meetings [put]
func (ctl *MeetingController) UpdateMeeting(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input UpdateMeetingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	id, ok := idFromRequest(c, input.ID)
	if !ok {
		return
	}

	meeting, err := ctl.meetings.Update(userID, id, services.MeetingPatch{
		FinalDatetime: input.FinalDatetime,
		Mode:          input.Mode,
		LocationText:  input.LocationText,
		MeetingURL:    input.MeetingURL,
		Notes:         input.Notes,
		Status:        input.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "meeting": meeting})
}
