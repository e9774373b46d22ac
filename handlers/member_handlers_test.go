package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"gymdesk/models"
	"gymdesk/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMemberValidation(t *testing.T) {
	ts := setupServer(t)

	// full_name is required.
	w := ts.do(t, http.MethodPost, "/api/v1/members", ts.adminToken, gin.H{"email": "ada@test.gym"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/members", ts.adminToken, gin.H{
		"full_name": "Ada Lovelace",
		"dob":       "12-10-1815",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid dob")
}

func TestMemberLifecycle(t *testing.T) {
	ts := setupServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/members", ts.adminToken, gin.H{
		"full_name": "Ada Lovelace",
		"email":     "ada@test.gym",
		"dob":       "1990-10-12",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var member models.Member
	decode(t, w, &member)
	assert.Equal(t, models.MemberActive, member.Status)
	require.NotNil(t, member.DOB)

	w = ts.do(t, http.MethodGet, fmt.Sprintf("/api/v1/members/%d", member.ID), ts.adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPut, fmt.Sprintf("/api/v1/members/%d", member.ID), ts.adminToken, gin.H{
		"status": "SUSPENDED",
	})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &member)
	assert.Equal(t, models.MemberSuspended, member.Status)
	assert.Equal(t, "Ada Lovelace", member.FullName)

	w = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/members/%d", member.ID), ts.adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// A second delete finds nothing.
	w = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/members/%d", member.ID), ts.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMemberNotFound(t *testing.T) {
	ts := setupServer(t)

	w := ts.do(t, http.MethodGet, "/api/v1/members/999", ts.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/members/abc", ts.adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMemberDetailsRoute(t *testing.T) {
	ts := setupServer(t)
	memberID := ts.createMember(t, "Ada Lovelace")
	membershipID := ts.createMembership(t, memberID, 10000)

	w := ts.do(t, http.MethodPost, "/api/v1/payments", ts.adminToken, gin.H{
		"membership_id": membershipID,
		"amount_cents":  6000,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodGet, fmt.Sprintf("/api/v1/members/%d/details", memberID), ts.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var details services.MemberDetails
	decode(t, w, &details)
	require.Len(t, details.Memberships, 1)
	assert.InDelta(t, 60.0, details.Stats.TotalPaid, 1e-9)
	assert.InDelta(t, 40.0, details.Stats.TotalRemaining, 1e-9)
}

func TestListMembersWithBalance(t *testing.T) {
	ts := setupServer(t)
	memberID := ts.createMember(t, "Ada Lovelace")
	membershipID := ts.createMembership(t, memberID, 10000)

	w := ts.do(t, http.MethodPost, "/api/v1/payments", ts.adminToken, gin.H{
		"membership_id": membershipID,
		"amount_cents":  2500,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/members", ts.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var members []services.MemberWithBalance
	decode(t, w, &members)
	require.Len(t, members, 1)
	assert.InDelta(t, 75.0, members[0].RemainingAmount, 1e-9)
}
