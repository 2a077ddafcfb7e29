package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sparklink/connect_backend/models"
	"github.com/sparklink/connect_backend/services"
)

type InviteController struct {
	invites *services.InviteService
}

func NewInviteController(invites *services.InviteService) *InviteController {
	return &InviteController{invites: invites}
}

type CreateInviteInput struct {
	InviteeID     uint          `json:"invitee_id" binding:"required" example:"2"`
	Message       string        `json:"message" example:"来聊聊灵感卡片吧"`
	ProposedSlots []models.Slot `json:"proposed_slots"`
}

type UpdateInviteInput struct {
	ID           uint         `json:"id"`
	Status       string       `json:"status" binding:"required" example:"accepted"`
	SelectedSlot *models.Slot `json:"selected_slot"`
}

// CreateInvite godoc
// @Summary Send a one-on-one meeting invite
// @Description Proposes candidate time slots to another user
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param invite body CreateInviteInput true "Invite Creation"
// @Success 200 {object} map[string]interface{} "Invite created"
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /api/invites [post]
func (ctl *InviteController) CreateInvite(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateInviteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	invite, err := ctl.invites.Create(userID, input.InviteeID, input.Message, input.ProposedSlots)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "invite": invite})
}

// ListInvites godoc
// @Summary List the authenticated user's invites
// @Description Returns invites where the user is invitee (default) or inviter
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param role query string false "inviter or invitee"
// @Param status query string false "Status filter"
// @Success 200 {object} map[string]interface{} "List of invites"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /api/invites [get]
func (ctl *InviteController) ListInvites(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	invites, err := ctl.invites.List(userID, c.Query("role"), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "invites": invites})
}

// UpdateInvite godoc
// @Summary Respond to or cancel an invite
// @Description Moves an invite to a new status; selected_slot is stored on acceptance
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id query int false "Invite ID (alternative to body id)"
// @Param invite body UpdateInviteInput true "Invite Update"
// @Success 200 {object} map[string]interface{} "Updated invite"
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 403 {object} map[string]interface{} "Forbidden"
// @Failure 404 {object} map[string]interface{} "Invite not found"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /api/invites [put]
func (ctl *InviteController) UpdateInvite(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input UpdateInviteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	id, ok := idFromRequest(c, input.ID)
	if !ok {
		return
	}

	invite, err := ctl.invites.Update(userID, id, input.Status, input.SelectedSlot)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "invite": invite})
}

// idFromRequest resolves the target id from the query string or the body,
// with the query taking precedence. Responds 400 itself when neither is set.
func idFromRequest(c *gin.Context, bodyID uint) (uint, bool) {
	if idStr := c.Query("id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid id"})
			return 0, false
		}
		return uint(id), true
	}

	if bodyID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "id is required"})
		return 0, false
	}

	return bodyID, true
}
