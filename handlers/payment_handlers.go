package handlers

import (
	"net/http"

	"gymdesk/models"
	"gymdesk/services"

	"github.com/gin-gonic/gin"
)

type RecordPaymentRequest struct {
	MembershipID uint   `json:"membership_id" binding:"required"`
	AmountCents  int64  `json:"amount_cents" binding:"required,gt=0"`
	Method       string `json:"method" binding:"omitempty,oneof=CASH CARD"`
	Status       string `json:"status" binding:"omitempty,oneof=PAID VOID"`
	Notes        string `json:"notes"`
}

func (s *Server) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := s.payments.Record(c.Request.Context(), tenantID(c), userID(c), services.RecordPaymentInput{
		MembershipID: req.MembershipID,
		AmountCents:  req.AmountCents,
		Method:       models.PaymentMethod(req.Method),
		Status:       models.PaymentStatus(req.Status),
		Notes:        req.Notes,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

func (s *Server) GetPayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment ID"})
		return
	}

	payment, err := s.payments.Get(c.Request.Context(), id, tenantID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

func (s *Server) ListPayments(c *gin.Context) {
	payments, err := s.payments.ListByTenant(c.Request.Context(), tenantID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}

func (s *Server) ListMembershipPayments(c *gin.Context) {
	membershipID, ok := paramID(c, "membership_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid membership ID"})
		return
	}

	payments, err := s.payments.ListByMembership(c.Request.Context(), membershipID, tenantID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PAID VOID"`
}

func (s *Server) UpdatePaymentStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment ID"})
		return
	}

	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := s.payments.UpdateStatus(c.Request.Context(), id, tenantID(c), models.PaymentStatus(req.Status))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

func (s *Server) DeletePayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment ID"})
		return
	}

	deleted, err := s.payments.Delete(c.Request.Context(), id, tenantID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found or already deleted"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "payment deleted"})
}
