package api

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PartnerHandler serves workout partner invites and partner progress.
type PartnerHandler struct {
	partnerService service.PartnerService
}

func NewPartnerHandler(partnerService service.PartnerService) *PartnerHandler {
	return &PartnerHandler{partnerService: partnerService}
}

type SendInviteRequest struct {
	TargetID string `json:"targetId" binding:"required"`
}

type RespondInviteRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected"`
}

// ListPartners godoc
// @Summary List sent and received partner links
// @Tags Partners
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Partners
// @Router /partners [get]
func (h *PartnerHandler) ListPartners(c *gin.Context) {
	partners, err := h.partnerService.ListPartners(c.Request.Context(), getUserIDFromContext(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, partners)
}

// SendInvite godoc
// @Summary Invite a user to become a workout partner
// @Tags Partners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SendInviteRequest true "Target user"
// @Success 201 {object} domain.PartnerLink
// @Failure 404 {object} gin.H "Target user not found"
// @Failure 409 {object} gin.H "A partnership or invite already exists"
// @Router /partners/invites [post]
func (h *PartnerHandler) SendInvite(c *gin.Context) {
	var req SendInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// Call the PartnerService to create the pending link
	link, err := h.partnerService.SendInvite(c.Request.Context(), getUserIDFromContext(c), req.TargetID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

// RespondToInvite godoc
// @Summary Accept or reject a received invite
// @Tags Partners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invite ID"
// @Param request body RespondInviteRequest true "New status"
// @Success 200 {object} domain.PartnerLink
// @Failure 404 {object} gin.H "Invite not found"
// @Failure 409 {object} gin.H "Invite is no longer pending"
// @Router /partners/invites/{id} [put]
func (h *PartnerHandler) RespondToInvite(c *gin.Context) {
	var req RespondInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// Only the invited user may answer, and only while the invite is pending
	link, err := h.partnerService.RespondToInvite(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), domain.PartnerStatus(req.Status))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// CancelInvite godoc
// @Summary Cancel an invite or dissolve a partnership
// @Tags Partners
// @Security BearerAuth
// @Param id path string true "Invite ID"
// @Success 204
// @Router /partners/invites/{id} [delete]
func (h *PartnerHandler) CancelInvite(c *gin.Context) {
	// Either side may delete the link, whatever its status
	if err := h.partnerService.CancelInvite(c.Request.Context(), getUserIDFromContext(c), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPartnerWeek godoc
// @Summary Latest weekly workout of an accepted partner
// @Tags Partners
// @Produce json
// @Security BearerAuth
// @Param partnerId path string true "Partner user ID"
// @Success 200 {object} domain.WeeklyWorkout
// @Failure 404 {object} gin.H "Not partners, or no weekly workout yet"
// @Router /partners/{partnerId}/week [get]
func (h *PartnerHandler) GetPartnerWeek(c *gin.Context) {
	week, err := h.partnerService.GetPartnerWeek(c.Request.Context(), getUserIDFromContext(c), c.Param("partnerId"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, week)
}

// SearchUsers godoc
// @Summary Find users to invite
// @Tags Partners
// @Produce json
// @Security BearerAuth
// @Param q query string true "Name, username or email fragment"
// @Success 200 {array} domain.PublicProfile
// @Router /users/search [get]
func (h *PartnerHandler) SearchUsers(c *gin.Context) {
	// An empty query returns an empty list rather than every user
	users, err := h.partnerService.SearchUsers(c.Request.Context(), getUserIDFromContext(c), c.Query("q"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	if users == nil {
		users = []domain.PublicProfile{}
	}
	c.JSON(http.StatusOK, users)
}
