package handlers

import (
	"net/http"
	"time"

	"gymdesk/models"
	"gymdesk/services"

	"github.com/gin-gonic/gin"
)

type CreateMemberRequest struct {
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"omitempty,email"`
	Phone            string `json:"phone"`
	DOB              string `json:"dob"`
	EmergencyContact string `json:"emergency_contact"`
	MedicalNotes     string `json:"medical_notes"`
	PhotoURL         string `json:"photo_url"`
	Status           string `json:"status" binding:"omitempty,oneof=ACTIVE EXPIRED SUSPENDED"`
}

func (s *Server) CreateMember(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var dob *time.Time
	if req.DOB != "" {
		parsed, err := parseDate(req.DOB)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dob, expected YYYY-MM-DD"})
			return
		}
		dob = &parsed
	}

	member, err := s.members.Create(c.Request.Context(), tenantID(c), services.CreateMemberInput{
		FullName:         req.FullName,
		Email:            req.Email,
		Phone:            req.Phone,
		DOB:              dob,
		EmergencyContact: req.EmergencyContact,
		MedicalNotes:     req.MedicalNotes,
		PhotoURL:         req.PhotoURL,
		Status:           models.MemberStatus(req.Status),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

func (s *Server) GetMember(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member ID"})
		return
	}

	member, err := s.members.Get(c.Request.Context(), id, tenantID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

func (s *Server) ListMembers(c *gin.Context) {
	members, err := s.members.List(c.Request.Context(), tenantID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

func (s *Server) GetMemberDetails(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member ID"})
		return
	}

	details, err := s.members.Details(c.Request.Context(), id, tenantID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

type UpdateMemberRequest struct {
	FullName         *string `json:"full_name"`
	Email            *string `json:"email" binding:"omitempty,email"`
	Phone            *string `json:"phone"`
	DOB              *string `json:"dob"`
	EmergencyContact *string `json:"emergency_contact"`
	MedicalNotes     *string `json:"medical_notes"`
	PhotoURL         *string `json:"photo_url"`
	Status           *string `json:"status" binding:"omitempty,oneof=ACTIVE EXPIRED SUSPENDED"`
}

func (s *Server) UpdateMember(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member ID"})
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := services.UpdateMemberInput{
		FullName:         req.FullName,
		Email:            req.Email,
		Phone:            req.Phone,
		EmergencyContact: req.EmergencyContact,
		MedicalNotes:     req.MedicalNotes,
		PhotoURL:         req.PhotoURL,
	}
	if req.DOB != nil {
		parsed, err := parseDate(*req.DOB)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dob, expected YYYY-MM-DD"})
			return
		}
		in.DOB = &parsed
	}
	if req.Status != nil {
		status := models.MemberStatus(*req.Status)
		in.Status = &status
	}

	member, err := s.members.Update(c.Request.Context(), id, tenantID(c), in)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

func (s *Server) DeleteMember(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member ID"})
		return
	}

	deleted, err := s.members.Delete(c.Request.Context(), id, tenantID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "member not found or already deleted"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "member deleted"})
}
