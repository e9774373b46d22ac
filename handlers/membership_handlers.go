package handlers

import (
	"net/http"

	"gymdesk/models"
	"gymdesk/services"

	"github.com/gin-gonic/gin"
)

type CreateMembershipRequest struct {
	MemberID   uint   `json:"member_id" binding:"required"`
	PlanID     *uint  `json:"plan_id"`
	StartDate  string `json:"start_date" binding:"required"`
	PriceCents int64  `json:"price_cents" binding:"gte=0"`
	Status     string `json:"status" binding:"omitempty,oneof=PENDING ACTIVE"`
	Notes      string `json:"notes"`
}

func (s *Server) CreateMembership(c *gin.Context) {
	var req CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
		return
	}

	membership, err := s.memberships.Create(c.Request.Context(), tenantID(c), userID(c), services.CreateMembershipInput{
		MemberID:   req.MemberID,
		PlanID:     req.PlanID,
		StartDate:  startDate,
		PriceCents: req.PriceCents,
		Status:     models.MembershipStatus(req.Status),
		Notes:      req.Notes,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, membership)
}

func (s *Server) GetMembership(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid membership ID"})
		return
	}

	membership, err := s.memberships.Get(c.Request.Context(), id, tenantID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, membership)
}

func (s *Server) ListMemberships(c *gin.Context) {
	memberships, err := s.memberships.ListByTenant(c.Request.Context(), tenantID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, memberships)
}

func (s *Server) ListMemberMemberships(c *gin.Context) {
	memberID, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member ID"})
		return
	}

	memberships, err := s.memberships.ListByMember(c.Request.Context(), memberID, tenantID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, memberships)
}

type UpdateMembershipRequest struct {
	PlanID     *uint   `json:"plan_id"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	PriceCents *int64  `json:"price_cents" binding:"omitempty,gte=0"`
	Status     *string `json:"status" binding:"omitempty,oneof=PENDING ACTIVE EXPIRED CANCELLED"`
	Notes      *string `json:"notes"`
}

func (s *Server) UpdateMembership(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid membership ID"})
		return
	}

	var req UpdateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := services.UpdateMembershipInput{
		PlanID:     req.PlanID,
		PriceCents: req.PriceCents,
		Notes:      req.Notes,
	}
	if req.StartDate != nil {
		parsed, err := parseDate(*req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
			return
		}
		in.StartDate = &parsed
	}
	if req.EndDate != nil {
		parsed, err := parseDate(*req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, expected YYYY-MM-DD"})
			return
		}
		in.EndDate = &parsed
	}
	if req.Status != nil {
		status := models.MembershipStatus(*req.Status)
		in.Status = &status
	}

	membership, err := s.memberships.Update(c.Request.Context(), id, tenantID(c), in)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, membership)
}

func (s *Server) DeleteMembership(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid membership ID"})
		return
	}

	deleted, err := s.memberships.Delete(c.Request.Context(), id, tenantID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "membership not found or already deleted"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "membership deleted"})
}
