package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) DashboardSummary(c *gin.Context) {
	summary, err := s.dashboard.Summary(c.Request.Context(), tenantID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (s *Server) TotalRevenue(c *gin.Context) {
	revenue, err := s.payments.TotalRevenue(c.Request.Context(), tenantID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_revenue": revenue})
}
