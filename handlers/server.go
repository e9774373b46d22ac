package handlers

import (
	"errors"
	"net/http"

	"gymdesk/billing"
	"gymdesk/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server holds the wired services behind the HTTP surface.
type Server struct {
	log         *zap.Logger
	auth        *services.AuthService
	members     *services.MemberService
	plans       *services.PlanService
	memberships *services.MembershipService
	payments    *services.PaymentService
	dashboard   *services.DashboardService
}

func NewServer(
	log *zap.Logger,
	auth *services.AuthService,
	members *services.MemberService,
	plans *services.PlanService,
	memberships *services.MembershipService,
	payments *services.PaymentService,
	dashboard *services.DashboardService,
) *Server {
	return &Server{
		log:         log.Named("http"),
		auth:        auth,
		members:     members,
		plans:       plans,
		memberships: memberships,
		payments:    payments,
		dashboard:   dashboard,
	}
}

// Routes registers the full API surface on the engine.
func (s *Server) Routes(r *gin.Engine) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	v1 := r.Group("/api/v1")

	v1.POST("/tenants", s.CreateTenant)
	v1.POST("/auth/register", s.Register)
	v1.POST("/auth/login", s.Login)

	authed := v1.Group("/")
	authed.Use(s.RequireAuth())
	{
		authed.POST("/members", s.CreateMember)
		authed.GET("/members", s.ListMembers)
		authed.GET("/members/:id", s.GetMember)
		authed.GET("/members/:id/details", s.GetMemberDetails)
		authed.GET("/members/:id/memberships", s.ListMemberMemberships)
		authed.PUT("/members/:id", s.UpdateMember)
		authed.DELETE("/members/:id", s.DeleteMember)

		authed.POST("/plans", s.CreatePlan)
		authed.GET("/plans", s.ListPlans)
		authed.GET("/plans/:id", s.GetPlan)
		authed.PUT("/plans/:id", s.UpdatePlan)
		authed.DELETE("/plans/:id", s.DeletePlan)

		authed.POST("/memberships", s.CreateMembership)
		authed.GET("/memberships", s.ListMemberships)
		authed.GET("/memberships/:id", s.GetMembership)
		authed.PUT("/memberships/:id", s.UpdateMembership)
		authed.DELETE("/memberships/:id", s.DeleteMembership)

		authed.POST("/payments", s.RecordPayment)
		authed.GET("/payments", s.ListPayments)
		authed.GET("/payments/:id", s.GetPayment)
		authed.GET("/payments/membership/:membership_id", s.ListMembershipPayments)
		authed.PATCH("/payments/:id/status", s.UpdatePaymentStatus)

		authed.GET("/dashboard/summary", s.DashboardSummary)
		authed.GET("/dashboard/revenue", s.TotalRevenue)

		admin := authed.Group("/")
		admin.Use(s.RequireAdmin())
		{
			admin.DELETE("/payments/:id", s.DeletePayment)
		}
	}
}

// respondError maps business errors onto status codes; anything
// unrecognized is a store fault and surfaces as a generic 500.
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateActiveMembership),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrTenantExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidMembershipState),
		errors.Is(err, services.ErrPaymentExceedsBalance),
		errors.Is(err, services.ErrInvalidStatusTransition),
		errors.Is(err, billing.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
