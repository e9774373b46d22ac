package handlers

import (
	"net/http"
	"strings"

	"gymdesk/services"

	"github.com/gin-gonic/gin"
)

const (
	ctxTenantID = "tenantID"
	ctxUserID   = "userID"
	ctxRoleID   = "roleID"
)

// RequireAuth validates the bearer token and injects the tenant, user and
// role ids into the request context. Everything downstream treats them as
// trusted scope.
func (s *Server) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		claims, err := s.auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ctxTenantID, claims.TenantID)
		c.Set(ctxUserID, claims.UserID())
		c.Set(ctxRoleID, claims.RoleID)
		c.Next()
	}
}

// RequireAdmin guards destructive routes behind the admin role.
func (s *Server) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetUint(ctxRoleID) != services.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func tenantID(c *gin.Context) uint { return c.GetUint(ctxTenantID) }
func userID(c *gin.Context) uint   { return c.GetUint(ctxUserID) }
