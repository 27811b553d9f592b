package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goride/internal/service"
)

// AdminHandler handles HTTP requests for account moderation.
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListUsers handles GET /v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]UserResponse, 0, len(users))
	for _, user := range users {
		response = append(response, toUserResponse(user))
	}
	respondJSON(c, http.StatusOK, response)
}

// BlockUser handles POST /v1/admin/users/:id/block
func (h *AdminHandler) BlockUser(c *gin.Context) {
	h.setBlocked(c, true)
}

// UnblockUser handles POST /v1/admin/users/:id/unblock
func (h *AdminHandler) UnblockUser(c *gin.Context) {
	h.setBlocked(c, false)
}

func (h *AdminHandler) setBlocked(c *gin.Context, blocked bool) {
	user, err := h.adminService.SetUserBlocked(c.Request.Context(), c.Param("id"), blocked)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toUserResponse(user))
}

// ApproveDriver handles POST /v1/admin/drivers/:id/approve
func (h *AdminHandler) ApproveDriver(c *gin.Context) {
	user, err := h.adminService.SetDriverApproved(c.Request.Context(), c.Param("id"), true)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toUserResponse(user))
}

// SuspendDriver handles POST /v1/admin/drivers/:id/suspend
func (h *AdminHandler) SuspendDriver(c *gin.Context) {
	h.setSuspended(c, true)
}

// ReinstateDriver handles POST /v1/admin/drivers/:id/reinstate
func (h *AdminHandler) ReinstateDriver(c *gin.Context) {
	h.setSuspended(c, false)
}

func (h *AdminHandler) setSuspended(c *gin.Context, suspended bool) {
	user, err := h.adminService.SetDriverSuspended(c.Request.Context(), c.Param("id"), suspended)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toUserResponse(user))
}
