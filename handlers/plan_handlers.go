package handlers

import (
	"net/http"

	"gymdesk/services"

	"github.com/gin-gonic/gin"
)

type CreatePlanRequest struct {
	Name         string `json:"name" binding:"required"`
	DurationDays int    `json:"duration_days" binding:"required,gt=0"`
	PriceCents   int64  `json:"price_cents" binding:"required,gte=0"`
	VisitLimit   int    `json:"visit_limit" binding:"gte=0"`
	Active       *bool  `json:"active"`
}

func (s *Server) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := s.plans.Create(c.Request.Context(), tenantID(c), services.CreatePlanInput{
		Name:         req.Name,
		DurationDays: req.DurationDays,
		PriceCents:   req.PriceCents,
		VisitLimit:   req.VisitLimit,
		Active:       req.Active,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (s *Server) GetPlan(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan ID"})
		return
	}

	plan, err := s.plans.Get(c.Request.Context(), id, tenantID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (s *Server) ListPlans(c *gin.Context) {
	plans, err := s.plans.List(c.Request.Context(), tenantID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, plans)
}

type UpdatePlanRequest struct {
	Name         *string `json:"name"`
	DurationDays *int    `json:"duration_days" binding:"omitempty,gt=0"`
	PriceCents   *int64  `json:"price_cents" binding:"omitempty,gte=0"`
	VisitLimit   *int    `json:"visit_limit" binding:"omitempty,gte=0"`
	Active       *bool   `json:"active"`
}

func (s *Server) UpdatePlan(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan ID"})
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := s.plans.Update(c.Request.Context(), id, tenantID(c), services.UpdatePlanInput{
		Name:         req.Name,
		DurationDays: req.DurationDays,
		PriceCents:   req.PriceCents,
		VisitLimit:   req.VisitLimit,
		Active:       req.Active,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (s *Server) DeletePlan(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan ID"})
		return
	}

	deleted, err := s.plans.Delete(c.Request.Context(), id, tenantID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found or already deleted"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "plan deleted"})
}
