package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"goride/internal/domain"
	"goride/internal/fare"
	"goride/internal/middleware"
	"goride/internal/observability"
	"goride/internal/service"
)

// RideHandler handles HTTP requests for ride requests.
type RideHandler struct {
	rideService *service.RideService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// LocationRequest is the HTTP representation of a selected place.
type LocationRequest struct {
	Name        string            `json:"name"`
	Address     string            `json:"address"`
	Coordinates domain.Coordinate `json:"coordinates"`
}

// RequestRideRequest is the HTTP request body for creating a ride request.
// Pickup and destination are optional at the wire level; validation reports
// their absence alongside any other violation instead of rejecting the
// body outright.
type RequestRideRequest struct {
	Pickup        *LocationRequest `json:"pickup"`
	Destination   *LocationRequest `json:"destination"`
	PaymentMethod string           `json:"payment_method,omitempty"` // cash (default) or card
}

// CancelRideRequest is the HTTP request body for cancelling a ride.
type CancelRideRequest struct {
	Reason string `json:"reason,omitempty"`
}

// RideResponse is the HTTP representation of a ride.
type RideResponse struct {
	ID            string           `json:"id"`
	RiderID       string           `json:"rider_id"`
	Pickup        domain.Location  `json:"pickup"`
	Destination   domain.Location  `json:"destination"`
	DistanceKm    float64          `json:"distance_km"`
	Fare          int              `json:"fare"`
	Status        string           `json:"status"`
	PaymentMethod string           `json:"payment_method"`
	CancelledAt   string           `json:"cancelled_at,omitempty"`
	CancelReason  string           `json:"cancel_reason,omitempty"`
}

// ViolationsResponse is the HTTP response for an inadmissible ride request.
type ViolationsResponse struct {
	Error      string           `json:"error"`
	Violations []fare.Violation `json:"violations"`
}

func toRideResponse(ride *domain.Ride) RideResponse {
	resp := RideResponse{
		ID:            ride.ID,
		RiderID:       ride.RiderID,
		Pickup:        ride.Pickup,
		Destination:   ride.Destination,
		DistanceKm:    ride.DistanceKm,
		Fare:          ride.Fare,
		Status:        string(ride.Status),
		PaymentMethod: string(ride.PaymentMethod),
	}
	if !ride.CancelledAt.IsZero() {
		resp.CancelledAt = ride.CancelledAt.Format("2006-01-02T15:04:05Z07:00")
		resp.CancelReason = ride.CancelReason
	}
	return resp
}

func toLocation(req *LocationRequest) *domain.Location {
	if req == nil {
		return nil
	}
	return &domain.Location{
		Name:        req.Name,
		Address:     req.Address,
		Coordinates: req.Coordinates,
	}
}

// RequestRide handles POST /v1/rides
func (h *RideHandler) RequestRide(c *gin.Context) {
	var req RequestRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	rider := middleware.CurrentUser(c)
	if rider == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	ride, violations, err := h.rideService.RequestRide(c.Request.Context(), service.RequestRideInput{
		RiderID:       rider.ID,
		Pickup:        toLocation(req.Pickup),
		Destination:   toLocation(req.Destination),
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if len(violations) > 0 {
		observability.RideRequestsRejectedTotal.Inc()
		c.JSON(http.StatusUnprocessableEntity, ViolationsResponse{
			Error:      "ride request not admissible",
			Violations: violations,
		})
		return
	}

	observability.RidesRequestedTotal.Inc()
	respondJSON(c, http.StatusCreated, toRideResponse(ride))
}

// GetRide handles GET /v1/rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	ride, err := h.rideService.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if user.Role != domain.RoleAdmin && ride.RiderID != user.ID {
		respondError(c, service.ErrNotRideOwner)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// ListRides handles GET /v1/rides
// Admins see every ride; riders see their own.
func (h *RideHandler) ListRides(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	var rides []*domain.Ride
	var err error
	if user.Role == domain.RoleAdmin {
		rides, err = h.rideService.ListAllRides(c.Request.Context())
	} else {
		rides, err = h.rideService.ListRiderRides(c.Request.Context(), user.ID)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RideResponse, 0, len(rides))
	for _, ride := range rides {
		response = append(response, toRideResponse(ride))
	}
	respondJSON(c, http.StatusOK, response)
}

// CancelRide handles POST /v1/rides/:id/cancel
// The body is optional; an absent body cancels without a reason.
func (h *RideHandler) CancelRide(c *gin.Context) {
	var req CancelRideRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	requestedBy := user.ID
	if user.Role == domain.RoleAdmin {
		requestedBy = "" // Admins may cancel any ride.
	}

	ride, err := h.rideService.CancelRide(c.Request.Context(), service.CancelRideInput{
		RideID:      c.Param("id"),
		RequestedBy: requestedBy,
		Reason:      req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}
