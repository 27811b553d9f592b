package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goride/internal/domain"
	"goride/internal/middleware"
	"goride/internal/service"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest is the HTTP request body for creating an account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"` // RIDER (default) or DRIVER
}

// LoginRequest is the HTTP request body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the HTTP response for a successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the HTTP representation of a user.
type UserResponse struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	Email          string                  `json:"email"`
	Role           string                  `json:"role"`
	IsBlocked      bool                    `json:"is_blocked"`
	IsVerified     bool                    `json:"is_verified"`
	DriverApproval *DriverApprovalResponse `json:"driver_approval,omitempty"`
}

// DriverApprovalResponse is the HTTP representation of driver approval state.
type DriverApprovalResponse struct {
	IsApproved  bool `json:"is_approved"`
	IsSuspended bool `json:"is_suspended"`
}

func toUserResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       string(user.Role),
		IsBlocked:  user.IsBlocked,
		IsVerified: user.IsVerified,
	}
	if user.DriverApproval != nil {
		resp.DriverApproval = &DriverApprovalResponse{
			IsApproved:  user.DriverApproval.IsApproved,
			IsSuspended: user.DriverApproval.IsSuspended,
		}
	}
	return resp
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toUserResponse(user))
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

// Me handles GET /v1/auth/me
// The route is behind the access gate, so a resolved user is guaranteed.
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}
	respondJSON(c, http.StatusOK, toUserResponse(user))
}
